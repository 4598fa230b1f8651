package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/internal/client/suggest"
	"github.com/iudanet/promptpal/pkg/api"
)

func (a *App) suggestCmd() *cobra.Command {
	var (
		text  string
		tags  []string
		apply string
		pick  int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the suggestion service for better versions of a prompt",
		Example: `  promptpal suggest --text "write a blog post" --tags blog,seo
  promptpal suggest --apply 3f0c... --pick 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if apply != "" {
				if err := a.requireLogin(cmd, args); err != nil {
					return err
				}
				if err := a.reload(cmd, args); err != nil {
					return err
				}
				p, ok := a.prompts.Find(apply)
				if !ok {
					return errors.New("prompt not found")
				}
				if text == "" {
					text = p.Content
				}
				if !cmd.Flags().Changed("tags") {
					tags = p.Tags
				}
			}

			var err error
			if text, err = a.ask(text, "Prompt text: "); err != nil {
				return err
			}

			a.io.Println("Getting suggestions...")
			suggestions, err := a.suggest.Suggest(ctx, text, tags)
			if err != nil {
				return fmt.Errorf("failed to get suggestions: %w", err)
			}
			if len(suggestions) == 0 {
				a.io.Println("No suggestions.")
				return nil
			}

			a.io.Println()
			for i, s := range suggestions {
				a.io.Printf("%d. %s\n", i+1, suggest.CleanSuggestion(s))
			}

			if apply == "" {
				return nil
			}
			if pick < 1 || pick > len(suggestions) {
				return fmt.Errorf("--pick must be between 1 and %d", len(suggestions))
			}

			content := suggest.CleanSuggestion(suggestions[pick-1])
			if _, err := a.prompts.Update(ctx, apply, api.UpdatePromptRequest{Content: &content}); err != nil {
				return a.authFailed(cmd, args, err)
			}

			a.io.Println()
			a.io.Println("✓ Suggestion applied successfully!")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&text, "text", "", "prompt text to improve")
	f.StringSliceVar(&tags, "tags", nil, "comma-separated tags giving context")
	f.StringVar(&apply, "apply", "", "id of your prompt whose content is replaced by the picked suggestion")
	f.IntVar(&pick, "pick", 1, "which suggestion to apply, starting at 1")
	return cmd
}
