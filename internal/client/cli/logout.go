package cli

import "github.com/spf13/cobra"

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.session.Token() == "" {
				a.io.Println("Not logged in.")
				return nil
			}
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			a.io.Println("✓ Logged out.")
			return nil
		},
	}
}
