package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/katian28/ai-bootcamp/internal/config"
	"github.com/katian28/ai-bootcamp/internal/dataset"
	"github.com/katian28/ai-bootcamp/internal/prompts"
)

func (a *App) renderError() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	errMsg := "Unknown error"
	if a.state.err != nil {
		errMsg = a.state.err.Error()
	}

	errBox := styleBox.Copy().
		Width(a.boxWidth(60)).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(a.center(errBox))
	b.WriteString("\n\n")

	if suggestions := suggest(a.state.err); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(a.boxWidth(60)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(a.center(suggBox))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[Esc] Back  [Ctrl+C] Quit")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}

func suggest(err error) []string {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return []string{
			"Check the datasets directory (--datasets or MAILEDIT_DATASETS)",
			"Files are named shorten.jsonl, lengthen.jsonl and tone.jsonl",
		}
	case errors.Is(err, prompts.ErrMissingPlaceholder),
		errors.Is(err, prompts.ErrTemplateNotFound),
		errors.Is(err, prompts.ErrMalformedTemplate):
		return []string{
			"Check your prompt templates",
			"Run: mailedit templates --check",
		}
	case errors.Is(err, config.ErrMissingCredential), errors.Is(err, config.ErrMissingEndpoint):
		return []string{
			"Set OPENAI_API_BASE and OPENAI_API_KEY in .env",
		}
	}

	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "connection") || strings.Contains(errLower, "timeout") {
		return []string{"Check your network connection and endpoint"}
	}
	return nil
}
