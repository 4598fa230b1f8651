package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.io.Println("=== Login ===")
			a.io.Println()

			email, err := a.ask(email, "Email: ")
			if err != nil {
				return err
			}
			password, err := a.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			a.io.Println()
			a.io.Printf("✓ Welcome back, %s!\n", user.Username)
			a.io.Printf("You have %d prompt(s).\n", a.prompts.Stats().Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}
