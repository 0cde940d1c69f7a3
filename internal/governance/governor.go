// Package governance implements the active observer that watches strain
// evolution for dangerous state changes. The governor never interferes with
// evolution; it classifies resistance scores, reports observations through an
// injected Reporter, and triggers a containment callback when a strain goes
// critical.
package governance

import (
	"context"
	"time"

	"github.com/driftlab/genograph/internal/constants"
	"github.com/driftlab/genograph/internal/models"
)

// Observation is one governance record for a strain state change.
type Observation struct {
	Timestamp    time.Time          `json:"timestamp"`
	StrainID     string             `json:"strain_id"`
	Resistance   float64            `json:"resistance"`
	Level        models.ThreatLevel `json:"level"`
	Acquired     []string           `json:"acquired,omitempty"`      // genome at observation time
	LastAcquired string             `json:"last_acquired,omitempty"` // gene that triggered the observation
}

// ContainmentFunc is invoked when a strain breaches containment parameters.
// It receives the strain, its resistance score, and the gene whose
// acquisition triggered the breach. Implementations must not block.
type ContainmentFunc func(strainID string, resistance float64, lastAcquired string)

// Config holds governor tuning.
type Config struct {
	// AlertThreshold is currently informational; classification uses the
	// resistance thresholds in constants. Kept for config compatibility with
	// deployments that tune the governor per environment.
	AlertThreshold float64

	// PandemicStrainCount is the number of distinct critical strains after
	// which further criticals are escalated to PANDEMIC.
	PandemicStrainCount int
}

// DefaultConfig returns the default governor configuration.
func DefaultConfig() Config {
	return Config{
		AlertThreshold:      constants.DefaultAlertThreshold,
		PandemicStrainCount: constants.PandemicStrainCount,
	}
}

// Governor observes strain evolution. It holds no reference to the graph and
// cannot mutate strains; it only calculates state and flags entropy.
type Governor struct {
	cfg         Config
	reporter    Reporter
	containment ContainmentFunc

	criticalStrains map[string]bool // strains seen at CRITICAL or above
}

// NewGovernor creates a governor reporting through r. A nil reporter is
// replaced with a no-op reporter; containment may be nil when no alert sink
// exists.
func NewGovernor(cfg Config, r Reporter, containment ContainmentFunc) *Governor {
	if r == nil {
		r = NopReporter{}
	}
	if cfg.PandemicStrainCount <= 0 {
		cfg.PandemicStrainCount = constants.PandemicStrainCount
	}
	return &Governor{
		cfg:             cfg,
		reporter:        r,
		containment:     containment,
		criticalStrains: make(map[string]bool),
	}
}

// Observe records one strain state change. It classifies the resistance
// score, escalates to PANDEMIC when enough distinct strains have gone
// critical, reports the observation, and fires containment for CRITICAL or
// worse.
func (g *Governor) Observe(ctx context.Context, strain *models.Strain) Observation {
	level := models.ClassifyResistance(strain.Resistance)

	if level == models.ThreatCritical {
		g.criticalStrains[strain.ID] = true
		if len(g.criticalStrains) >= g.cfg.PandemicStrainCount {
			level = models.ThreatPandemic
		}
	}

	obs := Observation{
		Timestamp:    time.Now().UTC(),
		StrainID:     strain.ID,
		Resistance:   strain.Resistance,
		Level:        level,
		Acquired:     strain.Genome.IDs(),
		LastAcquired: strain.LastAcquired(),
	}

	g.reporter.Report(ctx, obs)

	if level.Severity() >= models.ThreatCritical.Severity() && g.containment != nil {
		g.containment(strain.ID, strain.Resistance, strain.LastAcquired())
	}

	return obs
}

// CriticalStrainCount returns the number of distinct strains the governor has
// seen at CRITICAL or above.
func (g *Governor) CriticalStrainCount() int {
	return len(g.criticalStrains)
}
