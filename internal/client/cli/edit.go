package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/pkg/api"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title, content, category string
		tags                     []string
		public                   bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of your prompt; omitted flags keep current values",
		Example: `  promptpal edit 3f0c... --title "Better title"
  promptpal edit 3f0c... --tags "" --public=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd, args); err != nil {
				return err
			}

			var req api.UpdatePromptRequest
			f := cmd.Flags()
			if f.Changed("title") {
				req.Title = &title
			}
			if f.Changed("content") {
				req.Content = &content
			}
			if f.Changed("category") {
				if err := checkCategory(category, false); err != nil {
					return err
				}
				req.Category = &category
			}
			if f.Changed("tags") {
				if tags == nil {
					tags = []string{}
				}
				req.Tags = &tags
			}
			if f.Changed("public") {
				req.IsPublic = &public
			}
			if req == (api.UpdatePromptRequest{}) {
				return errors.New("nothing to update: pass at least one of --title, --content, --category, --tags, --public")
			}

			updated, err := a.prompts.Update(cmd.Context(), args[0], req)
			if err != nil {
				return a.authFailed(cmd, args, err)
			}

			a.io.Println("✓ Prompt updated")
			return a.printPrompt(*updated)
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "new title")
	f.StringVar(&content, "content", "", "new text")
	f.StringVar(&category, "category", "", "new category")
	f.StringSliceVar(&tags, "tags", nil, "new comma-separated tags, empty to clear")
	f.BoolVar(&public, "public", false, "make the prompt public or private")
	return cmd
}
