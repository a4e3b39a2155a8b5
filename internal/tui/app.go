package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/katian28/ai-bootcamp/internal/config"
	"github.com/katian28/ai-bootcamp/internal/dataset"
	"github.com/katian28/ai-bootcamp/internal/rewrite"
)

type view int

const (
	viewDatasets view = iota
	viewEmails
	viewEmail
	viewProcessing
	viewResult
	viewSettings
	viewHelp
	viewError
)

// Rewriter is what the browser needs from the orchestrator.
type Rewriter interface {
	Generate(ctx context.Context, req rewrite.Request) (string, bool, error)
	Scorecard(ctx context.Context, original, candidate string) ([]*rewrite.Judgment, error)
}

// RewriterFactory returns a rewriter that generates with model.
type RewriterFactory func(model string) (Rewriter, error)

type App struct {
	width    int
	height   int
	view     view
	prevView view
	state    *state
	quitting bool

	newRewriter RewriterFactory
	rewriters   map[string]Rewriter
	logger      *slog.Logger

	spinner  spinner.Model
	viewport viewport.Model
}

func NewApp(cfg *config.Config, newRewriter RewriterFactory, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleSpinner

	return &App{
		view:        viewDatasets,
		state:       newState(cfg),
		newRewriter: newRewriter,
		rewriters:   make(map[string]Rewriter),
		logger:      logger,
		spinner:     sp,
		viewport:    viewport.New(70, 12),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		listDatasets(a.state.config.Datasets),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = max(20, min(76, a.width-6))
		a.viewport.Height = max(5, a.height-18)
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case datasetsMsg:
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.state.datasetNames = msg.names
		a.state.datasetCursor = 0
		return a, nil

	case datasetLoadedMsg:
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.state.dataset = msg.dataset
		a.state.emailCursor = 0
		a.view = viewEmails
		if msg.dataset.Skipped > 0 {
			a.logger.Warn("skipped malformed dataset lines",
				"dataset", msg.dataset.Name,
				"skipped", msg.dataset.Skipped,
			)
		}
		return a, nil

	case generatedMsg:
		return a, a.handleGenerated(msg)

	case scoredMsg:
		if msg.seq != a.state.seq {
			return a, nil
		}
		a.state.scoring = false
		a.state.scorecard = msg.card
		a.state.scoreErr = msg.err
		if a.state.cancel != nil {
			a.state.cancel()
			a.state.cancel = nil
		}
		return a, nil
	}

	return a, nil
}

func (a *App) busy() bool {
	return a.view == viewProcessing || a.state.scoring
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		a.state.abort()
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewHelp, viewSettings, viewError:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Quit) {
			a.view = a.prevView
		}
		return nil

	case viewProcessing:
		if key.Matches(msg, keys.Back) {
			a.state.abort()
			a.view = viewEmail
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Help):
		a.prevView = a.view
		a.view = viewHelp
		return nil
	case key.Matches(msg, keys.Settings):
		a.prevView = a.view
		a.view = viewSettings
		return nil
	}

	switch a.view {
	case viewDatasets:
		return a.handleDatasetsKey(msg)
	case viewEmails:
		return a.handleEmailsKey(msg)
	case viewEmail:
		return a.handleEmailKey(msg)
	case viewResult:
		return a.handleResultKey(msg)
	}

	return nil
}

func (a *App) handleDatasetsKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Up):
		if s.datasetCursor > 0 {
			s.datasetCursor--
		}
	case key.Matches(msg, keys.Down):
		if s.datasetCursor < len(s.datasetNames)-1 {
			s.datasetCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(s.datasetNames) == 0 {
			return nil
		}
		return loadDataset(s.config.Datasets, s.datasetNames[s.datasetCursor])
	}
	return nil
}

func (a *App) handleEmailsKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Back):
		a.view = viewDatasets
	case key.Matches(msg, keys.Up):
		if s.emailCursor > 0 {
			s.emailCursor--
		}
	case key.Matches(msg, keys.Down):
		if s.emailCursor < s.dataset.Len()-1 {
			s.emailCursor++
		}
	case key.Matches(msg, keys.Enter):
		if s.dataset.Len() == 0 {
			return nil
		}
		a.openEmail(&s.dataset.Emails[s.emailCursor])
	}
	return nil
}

func (a *App) openEmail(email *dataset.Email) {
	a.state.email = email
	a.view = viewEmail

	body := email.Content
	if !email.HasContent() {
		body = email.JSON()
	}
	a.viewport.SetContent(wrap(body, a.viewport.Width))
	a.viewport.GotoTop()
}

func (a *App) handleEmailKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Back):
		a.view = viewEmails
	case key.Matches(msg, keys.NextTone):
		s.toneIndex = (s.toneIndex + 1) % len(rewrite.Tones)
	case key.Matches(msg, keys.Model):
		if len(s.models) > 0 {
			s.modelIndex = (s.modelIndex + 1) % len(s.models)
		}
	case key.Matches(msg, keys.Shorten):
		return a.startGenerate(rewrite.ActionShorten)
	case key.Matches(msg, keys.Lengthen):
		return a.startGenerate(rewrite.ActionLengthen)
	case key.Matches(msg, keys.Tone):
		return a.startGenerate(rewrite.ActionTone)
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		a.state.abort()
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Back):
		a.state.abort()
		a.openEmail(a.state.email)
	case key.Matches(msg, keys.Retry):
		return a.startGenerate(a.state.request.Action)
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) rewriter(model string) (Rewriter, error) {
	if rw, ok := a.rewriters[model]; ok {
		return rw, nil
	}
	rw, err := a.newRewriter(model)
	if err != nil {
		return nil, err
	}
	a.rewriters[model] = rw
	return rw, nil
}

func (a *App) startGenerate(action rewrite.Action) tea.Cmd {
	s := a.state
	if s.email == nil || !s.email.HasContent() {
		return nil
	}

	model := s.currentModel()
	rw, err := a.rewriter(model)
	if err != nil {
		return a.fail(err)
	}

	req := rewrite.Request{Action: action, Text: s.email.Content}
	if action == rewrite.ActionTone {
		req.Tone = s.currentTone()
	}

	ctx, seq := s.begin(req, model)
	a.view = viewProcessing

	return tea.Batch(a.spinner.Tick, generate(ctx, rw, seq, req))
}

func (a *App) handleGenerated(msg generatedMsg) tea.Cmd {
	s := a.state
	if msg.seq != s.seq {
		return nil
	}
	if msg.err != nil {
		s.abort()
		return a.fail(msg.err)
	}

	s.result = msg.text
	s.resultOK = msg.ok
	a.view = viewResult

	content := msg.text
	if !msg.ok {
		content = "Failed to generate a response. Check the log and try again."
	}
	a.viewport.SetContent(wrap(content, a.viewport.Width))
	a.viewport.GotoTop()

	if !msg.ok {
		s.abort()
		return nil
	}

	rw, err := a.rewriter(s.model)
	if err != nil {
		s.abort()
		return a.fail(err)
	}

	// Scoring shares the request context so esc cancels it too.
	s.scoring = true
	return tea.Batch(a.spinner.Tick, score(s.ctx, rw, s.seq, s.email.Content, msg.text))
}

func (a *App) fail(err error) tea.Cmd {
	a.logger.Error("browser action failed", "error", err)
	a.state.err = err
	switch a.view {
	case viewError:
	case viewProcessing, viewResult:
		a.prevView = viewEmail
	default:
		a.prevView = a.view
	}
	a.view = viewError
	return nil
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewDatasets:
		return a.renderDatasets()
	case viewEmails:
		return a.renderEmails()
	case viewEmail:
		return a.renderEmail()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderDatasets()
	}
}
