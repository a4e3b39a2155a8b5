package rewrite

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/katian28/ai-bootcamp/internal/llm"
	"github.com/katian28/ai-bootcamp/internal/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	System string
	User   string
}

// recorder is a scripted Exchanger that remembers every exchange.
type recorder struct {
	mu    sync.Mutex
	calls []call
	reply func(system, user string) (string, error)
}

func reply(text string) *recorder {
	return &recorder{reply: func(string, string) (string, error) { return text, nil }}
}

func failing(err error) *recorder {
	return &recorder{reply: func(string, string) (string, error) { return "", err }}
}

func (r *recorder) Exchange(_ context.Context, system, user string) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, call{System: system, User: user})
	r.mu.Unlock()
	return r.reply(system, user)
}

func (r *recorder) last(t *testing.T) call {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.calls, "no exchange recorded")
	return r.calls[len(r.calls)-1]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrchestrator(t *testing.T, generator, judge llm.Exchanger) *Orchestrator {
	t.Helper()

	templates, err := prompts.Default()
	require.NoError(t, err)

	o, err := New(templates, generator, judge, quietLogger())
	require.NoError(t, err)
	return o
}

func TestNew(t *testing.T) {
	templates, err := prompts.Default()
	require.NoError(t, err)

	_, err = New(nil, reply("x"), nil, nil)
	assert.Error(t, err)

	_, err = New(templates, nil, nil, nil)
	assert.Error(t, err)

	partial, err := prompts.New(map[string]prompts.Template{
		"shorten": {System: "s", User: "{selected_text}"},
	})
	require.NoError(t, err)

	_, err = New(partial, reply("x"), nil, nil)
	require.ErrorIs(t, err, prompts.ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "conciseness_judge")
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		req         Request
		wantUserHas []string
		wantUserNot []string
	}{
		{
			name:        "shorten",
			req:         Request{Action: ActionShorten, Text: "Hi, just checking in on the meeting notes."},
			wantUserHas: []string{"Hi, just checking in on the meeting notes."},
			wantUserNot: []string{"{selected_text}"},
		},
		{
			name:        "lengthen",
			req:         Request{Action: ActionLengthen, Text: "Send report."},
			wantUserHas: []string{"Send report."},
		},
		{
			name:        "tone",
			req:         Request{Action: ActionTone, Text: "Please send the report.", Tone: "friendly"},
			wantUserHas: []string{"friendly", "Please send the report."},
			wantUserNot: []string{"{tone}"},
		},
		{
			name:        "tone outside the offered set passes through",
			req:         Request{Action: ActionTone, Text: "Please send the report.", Tone: "pirate"},
			wantUserHas: []string{"pirate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := reply("Checking in on meeting notes.")
			o := newOrchestrator(t, ex, nil)

			text, ok, err := o.Generate(context.Background(), tt.req)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Checking in on meeting notes.", text)

			got := ex.last(t)
			assert.NotEmpty(t, got.System)
			for _, s := range tt.wantUserHas {
				assert.Contains(t, got.User, s)
			}
			for _, s := range tt.wantUserNot {
				assert.NotContains(t, got.User, s)
			}
		})
	}
}

func TestGenerateReturnsModelTextVerbatim(t *testing.T) {
	answer := "  Line one.\n\nLine two with {braces} and ```fences```\n"
	o := newOrchestrator(t, reply(answer), nil)

	text, ok, err := o.Generate(context.Background(), Request{Action: ActionShorten, Text: "x"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, answer, text)
}

func TestGenerateUnsupportedAction(t *testing.T) {
	var logs bytes.Buffer
	ex := reply("should not be called")

	templates, err := prompts.Default()
	require.NoError(t, err)
	o, err := New(templates, ex, nil, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	for _, action := range []Action{"summarize", "", "SHORTEN", "faithfulness_judge"} {
		text, ok, err := o.Generate(context.Background(), Request{Action: action, Text: "hello"})
		assert.NoError(t, err, action)
		assert.False(t, ok, action)
		assert.Empty(t, text, action)
	}

	assert.Empty(t, ex.calls)
	assert.Contains(t, logs.String(), "unsupported action")
}

func TestGenerateExchangeFailure(t *testing.T) {
	var logs bytes.Buffer
	cause := errors.New("dial tcp: connection refused")

	templates, err := prompts.Default()
	require.NoError(t, err)
	o, err := New(templates, failing(cause), nil, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	for _, action := range Actions {
		text, ok, err := o.Generate(context.Background(), Request{Action: action, Text: "hello", Tone: "friendly"})
		assert.NoError(t, err, action)
		assert.False(t, ok, action)
		assert.Empty(t, text, action)
	}

	assert.Contains(t, logs.String(), "exchange failed")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestCanceledExchangeIsAbsent(t *testing.T) {
	blocking := llm.ExchangerFunc(func(ctx context.Context, _, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	o := newOrchestrator(t, blocking, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text, ok, err := o.Generate(ctx, Request{Action: ActionShorten, Text: "hello"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)

	j, err := o.Judge(ctx, MetricConciseness, "hello", "hi")
	require.NoError(t, err)
	assert.Nil(t, j)
}

func TestGenerateTemplateErrorsSurface(t *testing.T) {
	templates, err := prompts.New(map[string]prompts.Template{
		"shorten":            {System: "s", User: "{selected_text} for {audience}"},
		"lengthen":           {System: "s", User: "{selected_text}"},
		"tone":               {System: "s", User: "{selected_text} {tone}"},
		"faithfulness_judge": {System: "s", User: "{selected_text} {model_response}"},
		"completeness_judge": {System: "s", User: "{selected_text} {model_response}"},
		"conciseness_judge":  {System: "s", User: "{selected_text} {model_response}"},
	})
	require.NoError(t, err)

	ex := reply("unused")
	o, err := New(templates, ex, nil, quietLogger())
	require.NoError(t, err)

	_, ok, err := o.Generate(context.Background(), Request{Action: ActionShorten, Text: "hi"})
	assert.False(t, ok)

	var missing *prompts.MissingPlaceholderError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"audience"}, missing.Names)
	assert.Empty(t, ex.calls)
}

func TestJudge(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		wantVerdict *Verdict
	}{
		{
			name:        "json object",
			answer:      `{"rating": 4, "explanation": "Mostly faithful."}`,
			wantVerdict: &Verdict{Rating: 4, Explanation: "Mostly faithful."},
		},
		{
			name:        "fenced json",
			answer:      "```json\n{\"rating\": 5, \"explanation\": \"Complete.\"}\n```",
			wantVerdict: &Verdict{Rating: 5, Explanation: "Complete."},
		},
		{
			name:        "rating as string",
			answer:      `{"rating": " 3 ", "explanation": "ok"}`,
			wantVerdict: &Verdict{Rating: 3, Explanation: "ok"},
		},
		{
			name:        "explanation optional",
			answer:      `{"rating": 2.5}`,
			wantVerdict: &Verdict{Rating: 2.5},
		},
		{
			name:   "plain text",
			answer: "The edited email is quite faithful, I would say 4 out of 5.",
		},
		{
			name:   "json without rating",
			answer: `{"score": 4, "explanation": "x"}`,
		},
		{
			name:   "non numeric rating",
			answer: `{"rating": "high", "explanation": "x"}`,
		},
		{
			name:   "json array",
			answer: `[4, "fine"]`,
		},
		{
			name:   "truncated json",
			answer: `{"rating": 4, "explanation": "Mostly`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := reply("generator must not judge")
			judge := reply(tt.answer)
			o := newOrchestrator(t, gen, judge)

			j, err := o.Judge(context.Background(), MetricFaithfulness, "original email", "edited email")
			require.NoError(t, err)
			require.NotNil(t, j)

			assert.Equal(t, MetricFaithfulness, j.Metric)
			assert.Equal(t, tt.answer, j.Raw, "raw answer is kept unmodified")
			assert.Equal(t, tt.wantVerdict, j.Verdict)
			assert.Equal(t, tt.wantVerdict != nil, j.Structured())

			assert.Empty(t, gen.calls)
			got := judge.last(t)
			assert.Contains(t, got.User, "original email")
			assert.Contains(t, got.User, "edited email")
			assert.Contains(t, got.System, `{"rating"`)
		})
	}
}

func TestJudgeUsesMetricTemplate(t *testing.T) {
	for _, m := range Metrics {
		t.Run(string(m), func(t *testing.T) {
			ex := reply(`{"rating": 1, "explanation": "x"}`)
			o := newOrchestrator(t, ex, nil)

			_, err := o.Judge(context.Background(), m, "a", "b")
			require.NoError(t, err)
			assert.Contains(t, ex.last(t).System, string(m))
		})
	}
}

func TestJudgeUnsupportedMetric(t *testing.T) {
	ex := reply("unused")
	o := newOrchestrator(t, ex, nil)

	for _, m := range []Metric{"fluency", "", "faithfulness_judge", "Faithfulness"} {
		j, err := o.Judge(context.Background(), m, "a", "b")
		assert.Nil(t, j)

		var unsupported *UnsupportedMetricError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, string(m), unsupported.Metric)
		assert.ErrorIs(t, err, ErrUnsupportedMetric)
	}
	assert.Empty(t, ex.calls)
}

func TestJudgeExchangeFailure(t *testing.T) {
	for _, cause := range []error{
		errors.New("timeout"),
		llm.ErrUnauthorized,
		llm.ErrEmptyCompletion,
		context.DeadlineExceeded,
	} {
		o := newOrchestrator(t, reply("unused"), failing(cause))

		for _, m := range Metrics {
			j, err := o.Judge(context.Background(), m, "a", "b")
			assert.NoError(t, err)
			assert.Nil(t, j)
		}
	}
}

func TestScorecard(t *testing.T) {
	judge := &recorder{reply: func(system, _ string) (string, error) {
		switch {
		case strings.Contains(system, "faithfulness"):
			return `{"rating": 5, "explanation": "faithful"}`, nil
		case strings.Contains(system, "completeness"):
			return "", errors.New("rate limited")
		default:
			return "concise enough", nil
		}
	}}
	o := newOrchestrator(t, reply("unused"), judge)

	card, err := o.Scorecard(context.Background(), "original", "candidate")
	require.NoError(t, err)
	require.Len(t, card, len(Metrics))

	require.NotNil(t, card[0])
	assert.Equal(t, MetricFaithfulness, card[0].Metric)
	assert.Equal(t, &Verdict{Rating: 5, Explanation: "faithful"}, card[0].Verdict)

	assert.Nil(t, card[1], "failed exchange is absent")

	require.NotNil(t, card[2])
	assert.Equal(t, MetricConciseness, card[2].Metric)
	assert.Nil(t, card[2].Verdict)
	assert.Equal(t, "concise enough", card[2].Raw)

	assert.Len(t, judge.calls, len(Metrics))
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "  {\"a\":1}\n", want: `{"a":1}`},
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```\n", want: `{"a":1}`},
		{in: "text ```json\n{}\n```", want: "text ```json\n{}\n```"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripFences(tt.in), tt.in)
	}
}

func TestOperationsMatchDefaultTemplates(t *testing.T) {
	templates, err := prompts.Default()
	require.NoError(t, err)

	assert.NoError(t, templates.Require(Operations()...))
	assert.ElementsMatch(t, templates.Operations(), Operations())
}
