package rewrite

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrUnsupportedMetric = errors.New("unsupported metric")
)

// UnsupportedActionError names an action outside Actions. Generate logs it
// and returns no result.
type UnsupportedActionError struct {
	Action string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action %q", e.Action)
}

func (e *UnsupportedActionError) Unwrap() error { return ErrUnsupportedAction }

// UnsupportedMetricError names a metric outside Metrics.
type UnsupportedMetricError struct {
	Metric string
}

func (e *UnsupportedMetricError) Error() string {
	return fmt.Sprintf("unsupported metric %q", e.Metric)
}

func (e *UnsupportedMetricError) Unwrap() error { return ErrUnsupportedMetric }
