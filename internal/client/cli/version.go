package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/promptpal/internal/version"
)

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			a.io.Printf("PromptPal %s\n", version.Version)
			a.io.Printf("  Go:     %s\n", version.GoVersion())
			a.io.Printf("  Commit: %s\n", version.GitCommit)
			a.io.Printf("  Date:   %s\n", version.BuildDate)
		},
	}
}
