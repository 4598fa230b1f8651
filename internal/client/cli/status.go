package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the server and show the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.io.Printf("Server:   %s\n", a.api.BaseURL())

			if user := a.session.User(); user != nil {
				a.io.Printf("Session:  logged in as %s\n", user.Username)
			} else {
				a.io.Println("Session:  not logged in")
			}

			health, err := a.api.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("server is not healthy: %w", err)
			}

			uptime := time.Duration(health.Uptime * float64(time.Second)).Round(time.Second)
			a.io.Printf("Status:   %s\n", health.Status)
			a.io.Printf("Version:  %s (%s)\n", health.Version, health.Env)
			a.io.Printf("Database: %s\n", health.Database)
			a.io.Printf("Uptime:   %s\n", uptime)
			return nil
		},
	}
}
