package tui

import (
	"fmt"
	"strings"

	"github.com/katian28/ai-bootcamp/internal/rewrite"
)

// actionLabel names a request the way the result screen titles it.
func actionLabel(req rewrite.Request) string {
	switch req.Action {
	case rewrite.ActionShorten:
		return "Shortened"
	case rewrite.ActionLengthen:
		return "Elaborated"
	case rewrite.ActionTone:
		return fmt.Sprintf("Tone: %s", req.Tone)
	default:
		return req.Action.String()
	}
}

func (a *App) renderProcessing() string {
	var b strings.Builder
	s := a.state

	b.WriteString(a.title("Processing"))
	b.WriteString("\n\n")

	if s.email != nil {
		b.WriteString(a.center(styleSubtitle.Render(truncate(s.email.Preview(60), 60))))
		b.WriteString("\n\n")
	}

	line := fmt.Sprintf("%s Generating %s with %s...",
		a.spinner.View(), strings.ToLower(actionLabel(s.request)), s.model)

	box := styleBox.Copy().
		Width(a.boxWidth(60)).
		BorderForeground(colorSecondary).
		Render(line)
	b.WriteString(a.center(box))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Cancel")))

	return a.centerVertically(b.String())
}
