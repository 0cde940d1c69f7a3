package resolver

import (
	"errors"
	"testing"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Build([]models.Gene{
		{ID: "g01", Name: "CellWall_Synthesis", Resistance: 0.1},
		{ID: "g02", Name: "Beta-Lactamase_Production", Resistance: 0.3, Requires: []string{"g01"}},
		{ID: "mecA", Name: "PBP2a_Alteration", Resistance: 0.95, Requires: []string{"g02"}},
		{ID: "dual", Name: "Dual_Requirement", Resistance: 0.5, Requires: []string{"g01", "g02"}},
	})
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}
	return c
}

func genomeOf(ids ...string) models.Genome {
	g := models.NewGenome()
	for _, id := range ids {
		g.Add(id)
	}
	return g
}

func TestCanActivate(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name   string
		genome models.Genome
		target string
		want   bool
	}{
		{"no prerequisites", genomeOf(), "g01", true},
		{"prerequisite missing", genomeOf(), "g02", false},
		{"prerequisite present", genomeOf("g01"), "g02", true},
		{"chained prerequisite not transitive", genomeOf("g01"), "mecA", false},
		{"chained prerequisite satisfied", genomeOf("g01", "g02"), "mecA", true},
		{"one of two prerequisites", genomeOf("g01"), "dual", false},
		{"both prerequisites", genomeOf("g01", "g02"), "dual", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanActivate(cat, tt.genome, tt.target)
			if err != nil {
				t.Fatalf("CanActivate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CanActivate(%s) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestCanActivate_UnknownGene(t *testing.T) {
	cat := testCatalog(t)

	ok, err := CanActivate(cat, genomeOf("g01"), "nonexistent")
	if ok {
		t.Error("unknown gene must not be activatable")
	}
	if !errors.Is(err, catalog.ErrUnknownGene) {
		t.Errorf("error = %v, want ErrUnknownGene", err)
	}
}

func TestCanActivate_Subset(t *testing.T) {
	// Eligibility is exactly: requires ⊆ genome. Extra acquired genes never
	// hurt.
	cat := testCatalog(t)

	ok, err := CanActivate(cat, genomeOf("g01", "g02", "mecA"), "dual")
	if err != nil || !ok {
		t.Errorf("superset genome should satisfy dual: ok=%v err=%v", ok, err)
	}
}

func TestCanActivate_EvolutionOrder(t *testing.T) {
	// Walk the mecA chain the way the evolution loop does: each acquisition
	// unlocks the next gene.
	cat := testCatalog(t)
	genome := models.NewGenome()

	if ok, _ := CanActivate(cat, genome, "mecA"); ok {
		t.Fatal("mecA must not be eligible for an empty genome")
	}

	for _, step := range []string{"g01", "g02", "mecA"} {
		ok, err := CanActivate(cat, genome, step)
		if err != nil {
			t.Fatalf("CanActivate(%s) error = %v", step, err)
		}
		if !ok {
			t.Fatalf("%s should be eligible at this step", step)
		}
		genome.Add(step)
	}
}

func TestExplain(t *testing.T) {
	cat := testCatalog(t)

	ex, err := Explain(cat, genomeOf("g01"), "dual")
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if ex.Eligible {
		t.Error("dual should be ineligible with only g01")
	}
	if len(ex.Checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(ex.Checks))
	}

	byID := map[string]bool{}
	for _, ch := range ex.Checks {
		byID[ch.GeneID] = ch.Acquired
	}
	if !byID["g01"] {
		t.Error("g01 should be reported acquired")
	}
	if byID["g02"] {
		t.Error("g02 should be reported missing")
	}
}

func TestExplain_NoPrerequisites(t *testing.T) {
	cat := testCatalog(t)

	ex, err := Explain(cat, genomeOf(), "g01")
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if !ex.Eligible {
		t.Error("g01 has no prerequisites and should always be eligible")
	}
	if len(ex.Checks) != 0 {
		t.Errorf("expected no checks, got %v", ex.Checks)
	}
}

func TestExplain_UnknownGene(t *testing.T) {
	cat := testCatalog(t)
	if _, err := Explain(cat, genomeOf(), "nonexistent"); !errors.Is(err, catalog.ErrUnknownGene) {
		t.Errorf("error = %v, want ErrUnknownGene", err)
	}
}
