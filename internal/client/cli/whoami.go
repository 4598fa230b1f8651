package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd, args); err != nil {
				return err
			}

			user, err := a.session.Refresh(cmd.Context())
			if err != nil {
				return a.authFailed(cmd, args, err)
			}

			a.io.Printf("Username:     %s\n", user.Username)
			a.io.Printf("Email:        %s\n", user.Email)
			a.io.Printf("ID:           %s\n", user.ID)
			a.io.Printf("Member since: %s\n", user.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
}
