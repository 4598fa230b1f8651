package cli

import "github.com/spf13/cobra"

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count your prompts by visibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd, args); err != nil {
				return err
			}
			if err := a.reload(cmd, args); err != nil {
				return err
			}

			st := a.prompts.Stats()
			if user := a.session.User(); user != nil {
				a.io.Printf("=== Dashboard: %s ===\n", user.Username)
			}
			a.io.Println()
			a.io.Printf("Total prompts:   %d\n", st.Total)
			a.io.Printf("Public prompts:  %d\n", st.Public)
			a.io.Printf("Private prompts: %d\n", st.Private)
			return nil
		},
	}
}
