package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderEmails() string {
	var b strings.Builder
	ds := a.state.dataset

	b.WriteString(a.title(fmt.Sprintf("Dataset: %s", ds.Name)))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render(fmt.Sprintf("%d emails", ds.Len()))))
	b.WriteString("\n\n")

	width := a.boxWidth(76)

	var lines []string
	if ds.Len() == 0 {
		lines = append(lines, styleSubtitle.Render("This dataset is empty."))
	} else {
		start, end := window(a.state.emailCursor, ds.Len(), max(5, a.height-10))
		for i := start; i < end; i++ {
			e := ds.Emails[i]
			label := fmt.Sprintf("%-6s %s", truncate(e.ID, 6), e.Preview(width-12))
			if i == a.state.emailCursor {
				lines = append(lines, styleSelected.Render("> "+label))
			} else {
				lines = append(lines, "  "+label)
			}
		}
	}

	listBox := styleBox.Copy().
		Width(width).
		Render(strings.Join(lines, "\n"))
	b.WriteString(a.center(listBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[j/k] Navigate  [Enter] Open  [Esc] Datasets  [?] Help")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}

// window returns the [start, end) range of a list of n items that keeps
// cursor visible in size rows.
func window(cursor, n, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(0, min(start, n-size))
	return start, start + size
}
