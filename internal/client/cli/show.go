package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a prompt: one of yours or a public one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.reload(cmd, args); err != nil {
				return err
			}

			p, ok := a.prompts.Find(args[0])
			if !ok {
				if err := a.requireLogin(cmd, args); err != nil {
					return err
				}
				return errors.New("prompt not found")
			}
			return a.printPrompt(p)
		},
	}
}
