package cli

import "github.com/spf13/cobra"

func (a *App) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Switch a prompt between public and private",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd, args); err != nil {
				return err
			}

			updated, err := a.prompts.Toggle(cmd.Context(), args[0])
			if err != nil {
				return a.authFailed(cmd, args, err)
			}

			a.io.Printf("✓ Prompt is now %s\n", visibility(*updated))
			return nil
		},
	}
}
