package rewrite

// Action is a generation operation applied to an email.
type Action string

const (
	ActionShorten  Action = "shorten"
	ActionLengthen Action = "lengthen"
	ActionTone     Action = "tone"
)

// Actions lists the supported generation actions in display order.
var Actions = []Action{ActionShorten, ActionLengthen, ActionTone}

// Valid reports whether a is a supported action.
func (a Action) Valid() bool {
	switch a {
	case ActionShorten, ActionLengthen, ActionTone:
		return true
	}
	return false
}

// Operation is the template operation name for a.
func (a Action) Operation() string {
	return string(a)
}

func (a Action) String() string {
	switch a {
	case ActionShorten:
		return "Shorten"
	case ActionLengthen:
		return "Lengthen"
	case ActionTone:
		return "Change tone"
	default:
		return string(a)
	}
}

// Metric is a quality dimension a judge scores.
type Metric string

const (
	MetricFaithfulness Metric = "faithfulness"
	MetricCompleteness Metric = "completeness"
	MetricConciseness  Metric = "conciseness"
)

// Metrics lists the supported metrics in scorecard order.
var Metrics = []Metric{MetricFaithfulness, MetricCompleteness, MetricConciseness}

func (m Metric) Valid() bool {
	switch m {
	case MetricFaithfulness, MetricCompleteness, MetricConciseness:
		return true
	}
	return false
}

// Operation is the judge template operation name for m.
func (m Metric) Operation() string {
	return string(m) + "_judge"
}

// Tones offered by the interactive callers. Generate accepts any tone.
var Tones = []string{"friendly", "sympathetic", "professional"}

// Operations returns every template operation the orchestrator resolves.
func Operations() []string {
	ops := make([]string, 0, len(Actions)+len(Metrics))
	for _, a := range Actions {
		ops = append(ops, a.Operation())
	}
	for _, m := range Metrics {
		ops = append(ops, m.Operation())
	}
	return ops
}

// Template placeholder keys.
const (
	keyText     = "selected_text"
	keyTone     = "tone"
	keyResponse = "model_response"
)
