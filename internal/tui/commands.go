package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/katian28/ai-bootcamp/internal/dataset"
	"github.com/katian28/ai-bootcamp/internal/rewrite"
)

type datasetsMsg struct {
	names []string
	err   error
}

type datasetLoadedMsg struct {
	dataset *dataset.Dataset
	err     error
}

type generatedMsg struct {
	seq  int
	text string
	ok   bool
	err  error
}

type scoredMsg struct {
	seq  int
	card []*rewrite.Judgment
	err  error
}

func listDatasets(dir string) tea.Cmd {
	return func() tea.Msg {
		names, err := dataset.Available(dir)
		return datasetsMsg{names: names, err: err}
	}
}

func loadDataset(dir, name string) tea.Cmd {
	return func() tea.Msg {
		ds, err := dataset.Load(dir, name)
		return datasetLoadedMsg{dataset: ds, err: err}
	}
}

func generate(ctx context.Context, rw Rewriter, seq int, req rewrite.Request) tea.Cmd {
	return func() tea.Msg {
		text, ok, err := rw.Generate(ctx, req)
		return generatedMsg{seq: seq, text: text, ok: ok, err: err}
	}
}

func score(ctx context.Context, rw Rewriter, seq int, original, candidate string) tea.Cmd {
	return func() tea.Msg {
		card, err := rw.Scorecard(ctx, original, candidate)
		return scoredMsg{seq: seq, card: card, err: err}
	}
}
