package governance

import (
	"context"
	"log/slog"

	"github.com/driftlab/genograph/internal/logging"
)

// Reporter receives governance observations. Implementations must be cheap;
// the evolution loop calls Report synchronously after every acquisition.
type Reporter interface {
	Report(ctx context.Context, obs Observation)
}

// NopReporter discards observations.
type NopReporter struct{}

func (NopReporter) Report(context.Context, Observation) {}

// SlogReporter writes observations to a structured logger.
type SlogReporter struct {
	Logger *slog.Logger
}

func (r SlogReporter) Report(ctx context.Context, obs Observation) {
	if r.Logger == nil {
		return
	}
	r.Logger.InfoContext(ctx, "governance observation",
		"strain", obs.StrainID,
		"resistance", obs.Resistance,
		"level", string(obs.Level),
		"last_acquired", obs.LastAcquired,
	)
}

// EventReporter appends observations to the JSONL governance trace.
type EventReporter struct {
	Events *logging.EventLogger
}

func (r EventReporter) Report(ctx context.Context, obs Observation) {
	r.Events.Log(map[string]any{
		"event":         "observation",
		"strain":        obs.StrainID,
		"resistance":    obs.Resistance,
		"level":         string(obs.Level),
		"acquired":      obs.Acquired,
		"last_acquired": obs.LastAcquired,
	})
}

// MultiReporter fans an observation out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, obs Observation) {
	for _, r := range m {
		r.Report(ctx, obs)
	}
}
