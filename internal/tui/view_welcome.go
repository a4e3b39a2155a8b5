package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
                 _ _          _ _ _
  _ __ ___   __ _(_) | ___  __| (_) |_
 | '_ ` + "`" + ` _ \ / _` + "`" + ` | | |/ _ \/ _` + "`" + ` | | __|
 | | | | | | (_| | | |  __/ (_| | | |_
 |_| |_| |_|\__,_|_|_|\___|\__,_|_|\__|
`

// renderDatasets is the start screen: logo and dataset picker.
func (a *App) renderDatasets() string {
	logoRendered := styleLogo.Render(logo)
	subtitle := styleSubtitle.Render("Email rewriting and judging")

	var list string
	if len(a.state.datasetNames) == 0 {
		list = styleSubtitle.Render(fmt.Sprintf("\nNo datasets found in %s", a.state.config.Datasets))
	} else {
		var lines []string
		for i, name := range a.state.datasetNames {
			if i == a.state.datasetCursor {
				lines = append(lines, styleSelected.Render(fmt.Sprintf("> %s", name)))
			} else {
				lines = append(lines, styleSubtitle.Render(fmt.Sprintf("  %s", name)))
			}
		}
		list = styleBox.Copy().
			Width(30).
			Render("Choose a dataset\n\n" + strings.Join(lines, "\n"))
	}

	statusBar := styleStatusBar.Render("[j/k] Navigate  [Enter] Open  [,] Settings  [?] Help  [q] Quit")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		"",
		list,
	)

	// Center content on screen (leave room for status bar)
	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}
