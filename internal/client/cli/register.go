package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) registerCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.io.Println("=== Register ===")
			a.io.Println()

			username, err := a.ask(username, "Username: ")
			if err != nil {
				return err
			}
			email, err := a.ask(email, "Email: ")
			if err != nil {
				return err
			}

			password, err := a.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			confirm, err := a.io.ReadPassword("Confirm password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			user, err := a.session.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}

			a.io.Println()
			a.io.Printf("✓ Welcome, %s! Your account has been created and you are logged in.\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (letters, digits, underscore)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}
