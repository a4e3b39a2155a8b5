package tui

import (
	"context"

	"github.com/katian28/ai-bootcamp/internal/config"
	"github.com/katian28/ai-bootcamp/internal/dataset"
	"github.com/katian28/ai-bootcamp/internal/rewrite"
)

type state struct {
	// Config
	config     *config.Config
	models     []string
	modelIndex int
	toneIndex  int

	// Browsing
	datasetNames  []string
	datasetCursor int
	dataset       *dataset.Dataset
	emailCursor   int
	email         *dataset.Email

	// Current request. seq increments per request so replies to an
	// abandoned one are dropped.
	seq     int
	ctx     context.Context
	cancel  context.CancelFunc
	request rewrite.Request
	model   string

	// Result
	result    string
	resultOK  bool
	scoring   bool
	scorecard []*rewrite.Judgment
	scoreErr  error

	// Errors
	err error
}

func newState(cfg *config.Config) *state {
	return &state{
		config: cfg,
		models: cfg.ModelChoices(),
	}
}

func (s *state) currentModel() string {
	if len(s.models) == 0 {
		return s.config.Model
	}
	return s.models[s.modelIndex%len(s.models)]
}

func (s *state) currentTone() string {
	return rewrite.Tones[s.toneIndex%len(rewrite.Tones)]
}

// begin cancels any running request and starts a new one.
func (s *state) begin(req rewrite.Request, model string) (context.Context, int) {
	s.abort()

	ctx, cancel := context.WithCancel(context.Background())
	s.seq++
	s.ctx = ctx
	s.cancel = cancel
	s.request = req
	s.model = model
	s.result = ""
	s.resultOK = false
	s.scoring = false
	s.scorecard = nil
	s.scoreErr = nil

	return ctx, s.seq
}

func (s *state) abort() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.scoring = false
}
