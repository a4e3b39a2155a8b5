package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/katian28/ai-bootcamp/internal/config"
	"github.com/katian28/ai-bootcamp/internal/logging"
	"github.com/katian28/ai-bootcamp/internal/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRewriter struct {
	mu      sync.Mutex
	model   string
	text    string
	ok      bool
	err     error
	card    []*rewrite.Judgment
	lastReq rewrite.Request
}

func (f *fakeRewriter) Generate(_ context.Context, req rewrite.Request) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	return f.text, f.ok, f.err
}

func (f *fakeRewriter) Scorecard(context.Context, string, string) ([]*rewrite.Judgment, error) {
	return f.card, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and any batched commands, feeding every resulting message
// except spinner ticks back into the app.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()

	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, a, c)
		}
	case nil, spinner.TickMsg:
	default:
		_, next := a.Update(msg)
		if _, quit := msg.(tea.QuitMsg); !quit {
			run(t, a, next)
		}
	}
}

func newTestApp(t *testing.T, rw *fakeRewriter) (*App, map[string]int) {
	t.Helper()

	dir := t.TempDir()
	data := `{"id": 1, "sender": "ana@example.com", "subject": "Notes", "content": "Hi, just checking in on the meeting notes."}
{"id": 2, "subject": "Report", "content": "Please send the report."}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shorten.jsonl"), []byte(data), 0o600))

	cfg := config.DefaultConfig()
	cfg.Datasets = dir

	built := map[string]int{}
	a := NewApp(cfg, func(model string) (Rewriter, error) {
		built[model]++
		rw.model = model
		return rw, nil
	}, logging.Discard())

	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	run(t, a, listDatasets(dir))
	require.Equal(t, []string{"shorten"}, a.state.datasetNames)

	return a, built
}

func open(t *testing.T, a *App) {
	t.Helper()

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, a, cmd)
	require.Equal(t, viewEmails, a.view)

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyDown})
	run(t, a, cmd)
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, a, cmd)
	require.Equal(t, viewEmail, a.view)
	require.Equal(t, "2", a.state.email.ID)
}

func TestGenerateAndScore(t *testing.T) {
	rw := &fakeRewriter{
		text: "Send the report, please.",
		ok:   true,
		card: []*rewrite.Judgment{
			{Metric: rewrite.MetricFaithfulness, Verdict: &rewrite.Verdict{Rating: 5, Explanation: "Same meaning."}},
			nil,
			{Metric: rewrite.MetricConciseness, Raw: "short enough"},
		},
	}
	a, built := newTestApp(t, rw)
	open(t, a)

	_, cmd := a.Update(runes("s"))
	assert.Equal(t, viewProcessing, a.view)
	assert.Contains(t, a.View(), "Generating shortened")
	run(t, a, cmd)

	assert.Equal(t, viewResult, a.view)
	assert.Equal(t, rewrite.Request{Action: rewrite.ActionShorten, Text: "Please send the report."}, rw.lastReq)
	assert.Equal(t, "Send the report, please.", a.state.result)
	assert.False(t, a.state.scoring)
	require.Len(t, a.state.scorecard, 3)

	out := a.View()
	assert.Contains(t, out, "Send the report, please.")
	assert.Contains(t, out, "5/5")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "short enough")

	assert.Equal(t, map[string]int{"gpt-4.1": 1}, built)
}

func TestToneAndModelSelection(t *testing.T) {
	rw := &fakeRewriter{text: "Hey! Could you send the report?", ok: true}
	a, built := newTestApp(t, rw)
	open(t, a)

	a.Update(runes("t"))
	a.Update(runes("m"))
	assert.Equal(t, "sympathetic", a.state.currentTone())
	assert.Equal(t, "gpt-4o-mini", a.state.currentModel())

	_, cmd := a.Update(runes("T"))
	run(t, a, cmd)

	assert.Equal(t, rewrite.ActionTone, rw.lastReq.Action)
	assert.Equal(t, "sympathetic", rw.lastReq.Tone)
	assert.Equal(t, "gpt-4o-mini", a.state.model)
	assert.Equal(t, map[string]int{"gpt-4o-mini": 1}, built)

	// Regenerate reuses the cached rewriter.
	_, cmd = a.Update(runes("r"))
	run(t, a, cmd)
	assert.Equal(t, map[string]int{"gpt-4o-mini": 1}, built)
}

func TestGenerateFailureIsGraceful(t *testing.T) {
	rw := &fakeRewriter{ok: false}
	a, _ := newTestApp(t, rw)
	open(t, a)

	_, cmd := a.Update(runes("l"))
	run(t, a, cmd)

	assert.Equal(t, viewResult, a.view)
	assert.False(t, a.state.resultOK)
	assert.Nil(t, a.state.scorecard)
	assert.Contains(t, a.View(), "Failed to generate")
}

func TestTemplateErrorShowsErrorView(t *testing.T) {
	rw := &fakeRewriter{err: errors.New("prompts: user template for \"shorten\" needs values for: audience")}
	a, _ := newTestApp(t, rw)
	open(t, a)

	_, cmd := a.Update(runes("s"))
	run(t, a, cmd)

	assert.Equal(t, viewError, a.view)
	assert.Contains(t, a.View(), "audience")

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewEmail, a.view)
}

func TestCancelDropsLateResult(t *testing.T) {
	rw := &fakeRewriter{text: "late", ok: true}
	a, _ := newTestApp(t, rw)
	open(t, a)

	_, cmd := a.Update(runes("s"))
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewEmail, a.view)

	run(t, a, cmd)
	assert.Equal(t, viewEmail, a.view)
	assert.Empty(t, a.state.result)
}

func TestMissingDatasetDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Datasets = filepath.Join(t.TempDir(), "nope")

	a := NewApp(cfg, nil, logging.Discard())
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	run(t, a, listDatasets(cfg.Datasets))

	assert.Equal(t, viewError, a.view)
	assert.Contains(t, a.View(), "datasets directory")
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cursor, n, size int
		start, end      int
	}{
		{cursor: 0, n: 3, size: 10, start: 0, end: 3},
		{cursor: 0, n: 20, size: 5, start: 0, end: 5},
		{cursor: 10, n: 20, size: 5, start: 8, end: 13},
		{cursor: 19, n: 20, size: 5, start: 15, end: 20},
	}

	for _, tt := range tests {
		start, end := window(tt.cursor, tt.n, tt.size)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}
