package cli

import "github.com/spf13/cobra"

func (a *App) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete your prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd, args); err != nil {
				return err
			}

			if !yes {
				ok, err := a.confirm("Delete prompt " + args[0] + "?")
				if err != nil {
					return err
				}
				if !ok {
					a.io.Println("Cancelled.")
					return nil
				}
			}

			if err := a.prompts.Delete(cmd.Context(), args[0]); err != nil {
				return a.authFailed(cmd, args, err)
			}

			a.io.Println("✓ Prompt deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
