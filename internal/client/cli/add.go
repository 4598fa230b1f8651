package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/internal/models"
	"github.com/iudanet/promptpal/pkg/api"
)

func (a *App) addCmd() *cobra.Command {
	var req api.CreatePromptRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a prompt",
		Example: `  promptpal add
  promptpal add --title "Code review" --category programming --tags go,review --public \
    --content "Review this Go code for readability and error handling"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(cmd, args); err != nil {
				return err
			}

			a.io.Println("=== Add Prompt ===")
			a.io.Println()

			var err error
			if req.Title, err = a.ask(req.Title, "Title: "); err != nil {
				return err
			}
			if req.Content, err = a.ask(req.Content, "Content: "); err != nil {
				return err
			}
			categoryPrompt := fmt.Sprintf("Category (%s): ", strings.Join(models.Categories(), ", "))
			if req.Category, err = a.ask(req.Category, categoryPrompt); err != nil {
				return err
			}
			if err := checkCategory(req.Category, false); err != nil {
				return err
			}

			created, err := a.prompts.Create(cmd.Context(), req)
			if err != nil {
				return a.authFailed(cmd, args, err)
			}

			a.io.Println()
			a.io.Printf("✓ Prompt created (%s)\n", visibility(*created))
			a.io.Printf("ID: %s\n", created.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Title, "title", "", "prompt title")
	f.StringVar(&req.Content, "content", "", "prompt text")
	f.StringVar(&req.Category, "category", "", "one of: "+strings.Join(models.Categories(), ", "))
	f.StringSliceVar(&req.Tags, "tags", nil, "comma-separated tags")
	f.BoolVar(&req.IsPublic, "public", false, "share the prompt publicly")
	return cmd
}
