package cmd

import (
	"fmt"

	"github.com/mindsync/wellness/internal/service"
	"github.com/spf13/cobra"
)

func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(userCreateCmd())
	cmd.AddCommand(userShowCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var in service.SignupInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account the same way signup does",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, token, err := a.AuthService.Signup(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Println("id:   ", user.ID)
			fmt.Println("email:", user.Email)
			fmt.Println("token:", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func userShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <email>",
		Short: "Print a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return showUser(cmd.Context(), a.UserRepository, a.ProfileService, args[0])
		},
	}
}
