package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/iudanet/promptpal/pkg/api"
)

const promptTemplate = `
=== {{.Title}} ===

ID:       {{.ID}}
Category: {{.Category}}
Visible:  {{if .IsPublic}}public{{else}}private{{end}}
Owner:    {{.Owner.Username}}
{{- if .Tags}}
Tags:     {{join .Tags ", "}}
{{- end}}
Created:  {{.CreatedAt.Format "2006-01-02 15:04"}}
Updated:  {{.UpdatedAt.Format "2006-01-02 15:04"}}

Content:
---
{{.Content}}
---
`

var promptTmpl = template.Must(template.New("prompt").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(promptTemplate))

// printPrompt полная карточка промпта
func (a *App) printPrompt(p api.Prompt) error {
	if err := promptTmpl.Execute(a.io, p); err != nil {
		return fmt.Errorf("failed to render prompt: %w", err)
	}
	return nil
}
