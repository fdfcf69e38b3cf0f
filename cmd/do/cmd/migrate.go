package cmd

import (
	"fmt"

	"github.com/mindsync/wellness/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations and print their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func runMigrate() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if a.DB == nil {
		fmt.Println("DB_DRIVER is mongo, nothing to migrate")
		return nil
	}

	return db.MigrationStatus(a.DB.DB, a.Cfg.DBDriver)
}
