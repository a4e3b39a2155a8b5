package rewrite

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Verdict is a parsed judge answer.
type Verdict struct {
	Rating      float64 `json:"rating"`
	Explanation string  `json:"explanation"`
}

// Judgment is the outcome of one judge exchange. Verdict is nil when the
// model's answer could not be parsed; Raw always holds the answer verbatim.
type Judgment struct {
	Metric  Metric   `json:"metric"`
	Verdict *Verdict `json:"verdict,omitempty"`
	Raw     string   `json:"raw"`
}

// Structured reports whether the answer parsed into a verdict.
func (j *Judgment) Structured() bool {
	return j != nil && j.Verdict != nil
}

// Judge scores candidate against original on metric. It returns a nil
// Judgment and nil error when the exchange failed.
func (o *Orchestrator) Judge(ctx context.Context, metric Metric, original, candidate string) (*Judgment, error) {
	if !metric.Valid() {
		return nil, &UnsupportedMetricError{Metric: string(metric)}
	}

	raw, ok, err := o.exchange(ctx, o.judge, metric.Operation(), map[string]any{
		keyText:     original,
		keyResponse: candidate,
	})
	if err != nil || !ok {
		return nil, err
	}

	verdict := parseVerdict(raw)
	if verdict == nil {
		o.logger.Warn("judge answer not structured, keeping raw text",
			"metric", string(metric),
		)
	}

	return &Judgment{
		Metric:  metric,
		Verdict: verdict,
		Raw:     raw,
	}, nil
}

// Scorecard judges candidate on every metric concurrently. Results follow
// the order of Metrics; a nil entry means that exchange failed.
func (o *Orchestrator) Scorecard(ctx context.Context, original, candidate string) ([]*Judgment, error) {
	results := make([]*Judgment, len(Metrics))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range Metrics {
		g.Go(func() error {
			j, err := o.Judge(gctx, m, original, candidate)
			if err != nil {
				return fmt.Errorf("%s: %w", m, err)
			}
			results[i] = j
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseVerdict decodes a JSON object with a numeric rating, tolerating a
// surrounding markdown code fence. It returns nil for anything else.
func parseVerdict(raw string) *Verdict {
	content := stripFences(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err != nil || obj == nil {
		return nil
	}

	rating, ok := toRating(obj["rating"])
	if !ok {
		return nil
	}

	var explanation string
	switch e := obj["explanation"].(type) {
	case nil:
	case string:
		explanation = e
	default:
		explanation = fmt.Sprint(e)
	}

	return &Verdict{Rating: rating, Explanation: explanation}
}

func toRating(v any) (float64, bool) {
	var f float64
	switch r := v.(type) {
	case float64:
		f = r
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stripFences removes a markdown code fence (```json ... ```) around s.
func stripFences(s string) string {
	content := strings.TrimSpace(s)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	var body []string
	in := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			in = !in
			continue
		}
		if in {
			body = append(body, line)
		}
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}
