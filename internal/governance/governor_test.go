package governance

import (
	"context"
	"testing"

	"github.com/driftlab/genograph/internal/models"
)

// recordingReporter captures observations for assertions.
type recordingReporter struct {
	observations []Observation
}

func (r *recordingReporter) Report(_ context.Context, obs Observation) {
	r.observations = append(r.observations, obs)
}

func strainWithResistance(id string, resistance float64, genes ...string) *models.Strain {
	s := models.NewStrain(id)
	for _, g := range genes {
		s.Acquire(g, resistance)
	}
	s.Resistance = resistance
	return s
}

func TestGovernor_Classification(t *testing.T) {
	tests := []struct {
		name       string
		resistance float64
		want       models.ThreatLevel
	}{
		{"safe strain", 0.1, models.ThreatSafe},
		{"monitored strain", 0.5, models.ThreatMonitored},
		{"critical strain", 0.95, models.ThreatCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &recordingReporter{}
			gov := NewGovernor(DefaultConfig(), rep, nil)

			obs := gov.Observe(context.Background(), strainWithResistance("STAPH_V1", tt.resistance, "g01"))
			if obs.Level != tt.want {
				t.Errorf("level = %s, want %s", obs.Level, tt.want)
			}
			if len(rep.observations) != 1 {
				t.Fatalf("expected 1 reported observation, got %d", len(rep.observations))
			}
			if rep.observations[0].StrainID != "STAPH_V1" {
				t.Errorf("reported strain = %s", rep.observations[0].StrainID)
			}
		})
	}
}

func TestGovernor_ContainmentTrigger(t *testing.T) {
	var contained []string
	containment := func(strainID string, resistance float64, lastAcquired string) {
		contained = append(contained, strainID+":"+lastAcquired)
	}

	gov := NewGovernor(DefaultConfig(), nil, containment)
	ctx := context.Background()

	gov.Observe(ctx, strainWithResistance("SAFE_V1", 0.2, "g01"))
	if len(contained) != 0 {
		t.Fatal("containment must not fire for safe strains")
	}

	gov.Observe(ctx, strainWithResistance("STAPH_V1", 0.95, "g01", "g02", "mecA"))
	if len(contained) != 1 {
		t.Fatalf("containment should fire once, got %d", len(contained))
	}
	if contained[0] != "STAPH_V1:mecA" {
		t.Errorf("containment context = %s, want STAPH_V1:mecA", contained[0])
	}
}

func TestGovernor_PandemicEscalation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PandemicStrainCount = 2

	rep := &recordingReporter{}
	gov := NewGovernor(cfg, rep, nil)
	ctx := context.Background()

	first := gov.Observe(ctx, strainWithResistance("V1", 0.9, "mecA"))
	if first.Level != models.ThreatCritical {
		t.Errorf("first critical strain: level = %s, want CRITICAL", first.Level)
	}

	second := gov.Observe(ctx, strainWithResistance("V2", 0.9, "mecA"))
	if second.Level != models.ThreatPandemic {
		t.Errorf("second critical strain: level = %s, want PANDEMIC", second.Level)
	}

	if gov.CriticalStrainCount() != 2 {
		t.Errorf("CriticalStrainCount() = %d, want 2", gov.CriticalStrainCount())
	}

	// The same strain going critical again does not inflate the count.
	gov.Observe(ctx, strainWithResistance("V1", 0.95, "mecA"))
	if gov.CriticalStrainCount() != 2 {
		t.Errorf("repeat strain inflated count to %d", gov.CriticalStrainCount())
	}
}

func TestGovernor_NilReporter(t *testing.T) {
	gov := NewGovernor(DefaultConfig(), nil, nil)
	obs := gov.Observe(context.Background(), strainWithResistance("V1", 0.5, "g01"))
	if obs.Level != models.ThreatMonitored {
		t.Errorf("level = %s, want MONITORED", obs.Level)
	}
}

func TestMultiReporter(t *testing.T) {
	a := &recordingReporter{}
	b := &recordingReporter{}
	gov := NewGovernor(DefaultConfig(), MultiReporter{a, b}, nil)

	gov.Observe(context.Background(), strainWithResistance("V1", 0.5, "g01"))
	if len(a.observations) != 1 || len(b.observations) != 1 {
		t.Errorf("both reporters should observe: a=%d b=%d", len(a.observations), len(b.observations))
	}
}
