// Package evolution drives strain evolution: it feeds candidate genes through
// the resolver, mutates the strain genome on success, and notifies the
// governor after every acquisition.
package evolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/governance"
	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/resolver"
	"github.com/driftlab/genograph/internal/store"
)

// Outcome records the result of one evolution step.
type Outcome struct {
	GeneID   string                  `json:"gene_id"`
	Acquired bool                    `json:"acquired"`
	Reason   string                  `json:"reason,omitempty"` // set when not acquired
	Level    models.ThreatLevel      `json:"level,omitempty"`  // set when acquired
	Observed *governance.Observation `json:"observed,omitempty"`
}

// Loop drives one strain through a sequence of candidate genes. A loop owns
// its strain; nothing else may mutate the genome while the loop runs.
type Loop struct {
	catalog  *catalog.Catalog
	strain   *models.Strain
	governor *governance.Governor
	logger   *slog.Logger

	// persist, when non-nil, records acquisitions in a store.
	persist store.GeneStore

	// interval is the delay between steps; zero means no delay.
	interval time.Duration
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval sets the delay between evolution steps.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) { l.interval = d }
}

// WithStore persists acquisitions to the given store as they happen.
func WithStore(s store.GeneStore) Option {
	return func(l *Loop) { l.persist = s }
}

// WithLogger sets the operational logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// NewLoop creates an evolution loop for the given strain.
func NewLoop(cat *catalog.Catalog, strain *models.Strain, gov *governance.Governor, opts ...Option) *Loop {
	l := &Loop{
		catalog:  cat,
		strain:   strain,
		governor: gov,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run feeds the candidate genes through the resolver in order. Genes whose
// prerequisites are unmet (or which are unknown) are recorded and skipped;
// only acquisition failures against the persistence layer abort the run.
// Run honors ctx cancellation between steps.
func (l *Loop) Run(ctx context.Context, candidates []string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(candidates))

	for i, geneID := range candidates {
		if i > 0 && l.interval > 0 {
			if err := sleepCtx(ctx, l.interval); err != nil {
				return outcomes, err
			}
		} else if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome, err := l.step(ctx, geneID)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// step attempts to acquire a single candidate gene.
func (l *Loop) step(ctx context.Context, geneID string) (Outcome, error) {
	ok, err := resolver.CanActivate(l.catalog, l.strain.Genome, geneID)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownGene) {
			l.logger.Warn("candidate gene not in catalog", "strain", l.strain.ID, "gene", geneID)
			return Outcome{GeneID: geneID, Reason: "unknown gene"}, nil
		}
		return Outcome{}, err
	}
	if !ok {
		ex, exErr := resolver.Explain(l.catalog, l.strain.Genome, geneID)
		reason := "prerequisites missing"
		if exErr == nil {
			reason = ex.Reason
		}
		l.logger.Info("acquisition blocked",
			"strain", l.strain.ID, "gene", geneID, "reason", reason)
		return Outcome{GeneID: geneID, Reason: reason}, nil
	}

	gene, _ := l.catalog.Get(geneID)
	l.strain.Acquire(gene.ID, gene.Resistance)

	if l.persist != nil {
		if err := l.persist.AcquireGene(ctx, l.strain.ID, gene.ID, gene.Resistance); err != nil {
			return Outcome{}, fmt.Errorf("persisting acquisition of %s: %w", gene.ID, err)
		}
	}

	l.logger.Info("gene acquired",
		"strain", l.strain.ID, "gene", gene.ID, "resistance", gene.Resistance)

	obs := l.governor.Observe(ctx, l.strain)
	return Outcome{GeneID: gene.ID, Acquired: true, Level: obs.Level, Observed: &obs}, nil
}

// sleepCtx sleeps for d or returns early with the context's error.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
