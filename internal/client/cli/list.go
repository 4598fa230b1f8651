package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/internal/client/prompts"
	"github.com/iudanet/promptpal/pkg/api"
)

func (a *App) listCmd() *cobra.Command {
	var (
		public   bool
		search   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your prompts or, with --public, everyone's public prompts",
		Example: `  promptpal list
  promptpal list --public --search email --category marketing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkCategory(category, true); err != nil {
				return err
			}
			if !public {
				if err := a.requireLogin(cmd, args); err != nil {
					return err
				}
			}
			if err := a.reload(cmd, args); err != nil {
				return err
			}

			var items []api.Prompt
			if public {
				a.io.Println("=== Public Prompts ===")
				items = a.prompts.FilterPublic(search, category)
			} else {
				a.io.Println("=== My Prompts ===")
				items = prompts.Filter(a.prompts.Mine(), search, category)
			}
			a.io.Println()

			if len(items) == 0 {
				a.io.Println("No prompts found.")
				if !public && search == "" && category == "" {
					a.io.Println()
					a.io.Println("Use 'promptpal add' to create your first prompt.")
				}
				return nil
			}

			a.io.Printf("Found %d prompt(s):\n", len(items))
			a.io.Println()
			a.printList(items, public)
			return nil
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "list public prompts of all users")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text to find in title, content or tags")
	cmd.Flags().StringVar(&category, "category", "", "category filter, 'all' for any")
	return cmd
}
