package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderEmail() string {
	var b strings.Builder
	s := a.state
	e := s.email

	b.WriteString(a.title(fmt.Sprintf("Email %s", e.ID)))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render(fmt.Sprintf("%s  %d/%d",
		s.dataset.Name, s.emailCursor+1, s.dataset.Len()))))
	b.WriteString("\n\n")

	var header []string
	if e.Sender != "" {
		header = append(header, styleLabel.Render("From:    ")+e.Sender)
	}
	if e.Subject != "" {
		header = append(header, styleLabel.Render("Subject: ")+e.Subject)
	}

	body := a.viewport.View()
	if len(header) > 0 {
		body = strings.Join(header, "\n") + "\n\n" + body
	}

	bodyStyle := styleBox.Copy().Width(a.boxWidth(80))
	if !e.HasContent() {
		bodyStyle = bodyStyle.BorderForeground(colorWarning)
	}
	b.WriteString(a.center(bodyStyle.Render(body)))
	b.WriteString("\n")

	if e.HasContent() {
		stats := fmt.Sprintf("%d words  ~%d tokens", wordCount(e.Content), estimateTokens(e.Content))
		b.WriteString(a.center(styleSubtitle.Render(stats)))
	} else {
		b.WriteString(a.center(styleSubtitle.Render("No content field, showing the raw record")))
	}
	b.WriteString("\n\n")

	settings := lipgloss.JoinHorizontal(lipgloss.Top,
		styleSubtitle.Render("Model: "), styleSelected.Render(s.currentModel()),
		styleSubtitle.Render("  [m]     Tone: "), styleSelected.Render(s.currentTone()),
		styleSubtitle.Render("  [t]"),
	)
	b.WriteString(a.center(settings))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[s] Shorten  [l] Lengthen  [T] Change tone  [Esc] Back  [?] Help")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}
