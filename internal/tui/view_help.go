package tui

import (
	"strings"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.title("Help"))
	b.WriteString("\n\n")

	actions := []string{
		"  s              Shorten the email",
		"  l              Lengthen (elaborate) the email",
		"  T              Rewrite in the selected tone",
		"  t, Tab         Cycle tone (friendly, sympathetic, professional)",
		"  m              Cycle generation model",
		"  r              Regenerate (on a result)",
	}

	actionsBox := styleBox.Copy().
		Width(a.boxWidth(64)).
		Render(strings.Join(actions, "\n"))
	b.WriteString(a.center(actionsBox))
	b.WriteString("\n\n")

	shortcuts := []string{
		"  j/k, Up/Down   Navigate and scroll",
		"  Enter          Open",
		"  Esc            Go back / Cancel",
		"  ,              Settings",
		"  q, Ctrl+C      Quit",
	}

	b.WriteString(a.center(styleSubtitle.Render("Keyboard Shortcuts")))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(a.boxWidth(64)).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(a.center(shortcutsBox))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleSubtitle.Render("Every result is judged on faithfulness, completeness and conciseness.")))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(a.center(instructions))

	return a.centerVertically(b.String())
}
