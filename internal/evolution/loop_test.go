package evolution

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/governance"
	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/store"
)

func mrsaCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Build([]models.Gene{
		{ID: "g01", Name: "CellWall_Synthesis", Resistance: 0.1},
		{ID: "g02", Name: "Beta-Lactamase_Production", Resistance: 0.3, Requires: []string{"g01"}},
		{ID: "mecA", Name: "PBP2a_Alteration", Resistance: 0.95, Requires: []string{"g02"}},
	})
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}
	return c
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoop_FullEvolution(t *testing.T) {
	cat := mrsaCatalog(t)
	strain := models.NewStrain("STAPH_V1")

	var contained int
	gov := governance.NewGovernor(governance.DefaultConfig(), nil,
		func(string, float64, string) { contained++ })

	loop := NewLoop(cat, strain, gov, WithLogger(quietLogger()))
	outcomes, err := loop.Run(context.Background(), []string{"g01", "g02", "mecA"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if !o.Acquired {
			t.Errorf("gene %s not acquired: %s", o.GeneID, o.Reason)
		}
	}

	if !strain.Genome.Has("mecA") {
		t.Error("strain should have acquired mecA")
	}
	if outcomes[2].Level != models.ThreatCritical {
		t.Errorf("mecA acquisition level = %s, want CRITICAL", outcomes[2].Level)
	}
	if contained != 1 {
		t.Errorf("containment fired %d times, want 1", contained)
	}
}

func TestLoop_BlockedOutOfOrder(t *testing.T) {
	cat := mrsaCatalog(t)
	strain := models.NewStrain("STAPH_V2")
	gov := governance.NewGovernor(governance.DefaultConfig(), nil, nil)

	loop := NewLoop(cat, strain, gov, WithLogger(quietLogger()))
	outcomes, err := loop.Run(context.Background(), []string{"mecA", "g01", "mecA"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if outcomes[0].Acquired {
		t.Error("mecA must be blocked before its prerequisites")
	}
	if outcomes[0].Reason == "" {
		t.Error("blocked outcome should carry a reason")
	}
	if !outcomes[1].Acquired {
		t.Error("g01 has no prerequisites and should be acquired")
	}
	if outcomes[2].Acquired {
		t.Error("mecA still lacks g02 and must stay blocked")
	}
}

func TestLoop_UnknownGene(t *testing.T) {
	cat := mrsaCatalog(t)
	strain := models.NewStrain("STAPH_V3")
	gov := governance.NewGovernor(governance.DefaultConfig(), nil, nil)

	loop := NewLoop(cat, strain, gov, WithLogger(quietLogger()))
	outcomes, err := loop.Run(context.Background(), []string{"ghost", "g01"})
	if err != nil {
		t.Fatalf("unknown genes must not abort the run: %v", err)
	}

	if outcomes[0].Acquired || outcomes[0].Reason != "unknown gene" {
		t.Errorf("outcome for ghost = %+v", outcomes[0])
	}
	if !outcomes[1].Acquired {
		t.Error("g01 should still be acquired after a skipped candidate")
	}
}

func TestLoop_Persistence(t *testing.T) {
	cat := mrsaCatalog(t)
	strain := models.NewStrain("STAPH_V4")
	gov := governance.NewGovernor(governance.DefaultConfig(), nil, nil)

	ctx := context.Background()
	st := store.NewMemoryStore()
	if err := st.PutStrain(ctx, strain); err != nil {
		t.Fatalf("PutStrain: %v", err)
	}

	loop := NewLoop(cat, strain, gov, WithStore(st), WithLogger(quietLogger()))
	if _, err := loop.Run(ctx, []string{"g01", "g02"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	persisted, err := st.GetStrain(ctx, "STAPH_V4")
	if err != nil {
		t.Fatalf("GetStrain: %v", err)
	}
	if !persisted.Genome.Has("g01") || !persisted.Genome.Has("g02") {
		t.Errorf("persisted genome = %v", persisted.Genome.IDs())
	}
}

func TestLoop_Cancellation(t *testing.T) {
	cat := mrsaCatalog(t)
	strain := models.NewStrain("STAPH_V5")
	gov := governance.NewGovernor(governance.DefaultConfig(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := NewLoop(cat, strain, gov, WithInterval(time.Hour), WithLogger(quietLogger()))
	outcomes, err := loop.Run(ctx, []string{"g01", "g02"})
	if err == nil {
		t.Fatal("cancelled run should return an error")
	}
	if len(outcomes) > 1 {
		t.Errorf("cancelled run completed %d steps", len(outcomes))
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte("strain: STAPH_V1\nsteps: [g01, g02, mecA]\ninterval: 10ms\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing scenario: %v", err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Strain != "STAPH_V1" || len(sc.Steps) != 3 || sc.Interval != 10*time.Millisecond {
		t.Errorf("scenario = %+v", sc)
	}
}

func TestLoadScenario_NoSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte("strain: x\nsteps: []\n"), 0644); err != nil {
		t.Fatalf("writing scenario: %v", err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("LoadScenario should reject a scenario with no steps")
	}
}
