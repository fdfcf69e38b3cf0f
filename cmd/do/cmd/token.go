package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mindsync/wellness/internal/repository"
	"github.com/mindsync/wellness/internal/service"
	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect bearer tokens",
	}

	cmd.AddCommand(tokenIssueCmd())
	cmd.AddCommand(tokenVerifyCmd())
	return cmd
}

func tokenIssueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issue <email>",
		Short: "Issue a token for an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.UserRepository.ByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}

			token, err := a.AuthService.IssueToken(user.ID)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}

func tokenVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Check a token and print the account it belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			userID, err := a.AuthService.VerifyToken(args[0])
			if err != nil {
				return err
			}

			user, err := a.UserService.ByID(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return showUser(cmd.Context(), a.UserRepository, a.ProfileService, user.Email)
		},
	}
}

func showUser(ctx context.Context, users repository.UserRepository, profiles *service.ProfileService, email string) error {
	user, err := users.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	user = user.Public()

	age := "-"
	if user.Age != nil {
		age = fmt.Sprint(*user.Age)
	}

	fmt.Println("id:      ", user.ID)
	fmt.Println("name:    ", user.Name)
	fmt.Println("email:   ", user.Email)
	fmt.Println("age:     ", age)
	fmt.Println("gender:  ", user.Gender)
	fmt.Println("phone:   ", user.Phone)
	fmt.Println("location:", user.Location)
	fmt.Println("goal:    ", user.Goal)
	fmt.Println("photo:   ", profiles.PhotoURL(user))
	fmt.Println("created: ", user.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
