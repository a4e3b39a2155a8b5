package tui

import (
	"fmt"
	"strings"

	"github.com/katian28/ai-bootcamp/internal/rewrite"
)

var metricLabels = map[rewrite.Metric]string{
	rewrite.MetricFaithfulness: "Faithfulness",
	rewrite.MetricCompleteness: "Completeness",
	rewrite.MetricConciseness:  "Conciseness",
}

func (a *App) renderResult() string {
	var b strings.Builder
	s := a.state

	b.WriteString(a.title(actionLabel(s.request)))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render(fmt.Sprintf("Email %s  model %s", s.email.ID, s.model))))
	b.WriteString("\n\n")

	resultStyle := styleBox.Copy().
		Width(a.boxWidth(80)).
		BorderForeground(colorPrimary)
	if !s.resultOK {
		resultStyle = resultStyle.BorderForeground(colorError)
	}
	b.WriteString(a.center(resultStyle.Render(a.viewport.View())))
	b.WriteString("\n\n")

	if s.resultOK {
		b.WriteString(a.center(a.renderScorecard()))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[r] Regenerate  [j/k] Scroll  [Esc] Back to email")
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}

func (a *App) renderScorecard() string {
	s := a.state
	width := a.boxWidth(80)

	var lines []string
	switch {
	case s.scoring:
		lines = append(lines, fmt.Sprintf("%s Judging...", a.spinner.View()))
	case s.scoreErr != nil:
		lines = append(lines, styleSubtitle.Render("Judging failed: "+s.scoreErr.Error()))
	default:
		for i, m := range rewrite.Metrics {
			var j *rewrite.Judgment
			if i < len(s.scorecard) {
				j = s.scorecard[i]
			}
			lines = append(lines, scoreLine(metricLabels[m], j, width-4))
		}
	}

	return styleBox.Copy().
		Width(width).
		Render(styleLabel.Render("Scorecard") + "\n\n" + strings.Join(lines, "\n"))
}

func scoreLine(label string, j *rewrite.Judgment, width int) string {
	head := fmt.Sprintf("%-13s ", label)
	switch {
	case j == nil:
		return head + styleSubtitle.Render("unavailable")
	case j.Structured():
		rating := ratingStyle(j.Verdict.Rating).Render(fmt.Sprintf("%g/5", j.Verdict.Rating))
		return head + rating + "  " + truncate(j.Verdict.Explanation, max(10, width-len(head)-6))
	default:
		raw := strings.Join(strings.Fields(j.Raw), " ")
		return head + styleSubtitle.Render(truncate(raw, max(10, width-len(head))))
	}
}
