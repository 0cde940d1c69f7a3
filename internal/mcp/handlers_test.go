package mcp

import (
	"context"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/ratelimit"
	"github.com/driftlab/genograph/internal/store"
)

// setupTestServer builds a server over an in-memory store seeded with a
// small resistance catalog.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	geneStore := store.NewMemoryStore()
	ctx := context.Background()
	genes := []models.Gene{
		{ID: "g01", Name: "efflux pump", Resistance: 0.2},
		{ID: "g02", Name: "porin loss", Resistance: 0.5, Requires: []string{"g01"}},
		{ID: "mecA", Name: "PBP2a", Resistance: 0.9, Requires: []string{"g01", "g02"}},
	}
	for _, g := range genes {
		if err := geneStore.PutGene(ctx, g); err != nil {
			t.Fatalf("PutGene(%s) failed: %v", g.ID, err)
		}
	}

	s := &Server{store: geneStore}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHandleResolve(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	// Unknown strain resolves against an empty genome.
	_, out, err := server.handleResolve(ctx, req, ResolveInput{Strain: "STAPH_V1", Gene: "g01"})
	if err != nil {
		t.Fatalf("handleResolve failed: %v", err)
	}
	if !out.Eligible {
		t.Errorf("g01 has no prerequisites, expected eligible, got reason %q", out.Reason)
	}

	_, out, err = server.handleResolve(ctx, req, ResolveInput{Strain: "STAPH_V1", Gene: "mecA"})
	if err != nil {
		t.Fatalf("handleResolve failed: %v", err)
	}
	if out.Eligible {
		t.Error("mecA should be blocked for an empty genome")
	}
	if len(out.Checks) != 2 {
		t.Errorf("expected 2 prerequisite checks, got %d", len(out.Checks))
	}

	if _, _, err := server.handleResolve(ctx, req, ResolveInput{Strain: "STAPH_V1", Gene: "ghost"}); err == nil {
		t.Error("expected error for unknown gene")
	}

	if _, _, err := server.handleResolve(ctx, req, ResolveInput{}); err == nil {
		t.Error("expected error for missing arguments")
	}
}

func TestHandleAcquire(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	// Blocked without prerequisites.
	_, out, err := server.handleAcquire(ctx, req, AcquireInput{Strain: "STAPH_V1", Gene: "mecA"})
	if err != nil {
		t.Fatalf("handleAcquire failed: %v", err)
	}
	if out.Acquired {
		t.Error("mecA should not be acquirable by a fresh strain")
	}

	// Walk the chain in dependency order.
	for _, gene := range []string{"g01", "g02", "mecA"} {
		_, out, err := server.handleAcquire(ctx, req, AcquireInput{Strain: "STAPH_V1", Gene: gene})
		if err != nil {
			t.Fatalf("handleAcquire(%s) failed: %v", gene, err)
		}
		if !out.Acquired {
			t.Fatalf("expected %s to be acquired, got message %q", gene, out.Message)
		}
	}

	_, status, err := server.handleStatus(ctx, req, StatusInput{Strain: "STAPH_V1"})
	if err != nil {
		t.Fatalf("handleStatus failed: %v", err)
	}
	if status.Resistance != 0.9 {
		t.Errorf("expected resistance 0.9 after mecA, got %v", status.Resistance)
	}
	if status.Level != string(models.ThreatCritical) {
		t.Errorf("expected CRITICAL level, got %s", status.Level)
	}
	if len(status.Genome) != 3 || status.Genome[2] != "mecA" {
		t.Errorf("unexpected genome %v", status.Genome)
	}

	// Unknown gene reports a message rather than acquiring.
	_, out, err = server.handleAcquire(ctx, req, AcquireInput{Strain: "STAPH_V1", Gene: "ghost"})
	if err != nil {
		t.Fatalf("handleAcquire failed: %v", err)
	}
	if out.Acquired {
		t.Error("unknown gene must not be acquired")
	}
}

func TestHandleStatus_UnknownStrain(t *testing.T) {
	server := setupTestServer(t)

	_, _, err := server.handleStatus(context.Background(), &sdk.CallToolRequest{}, StatusInput{Strain: "nope"})
	if err == nil {
		t.Fatal("expected error for unknown strain")
	}
}

func TestHandleEncodeDecode(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	freqs := []FrequencyEntry{
		{Trait: "virulent", Frequency: 5},
		{Trait: "dormant", Frequency: 9},
		{Trait: "mobile", Frequency: 45},
	}
	traits := []string{"mobile", "virulent", "mobile", "dormant"}

	_, enc, err := server.handleEncode(ctx, req, EncodeInput{Frequencies: freqs, Traits: traits})
	if err != nil {
		t.Fatalf("handleEncode failed: %v", err)
	}
	if enc.Bits == "" {
		t.Fatal("expected non-empty bit string")
	}
	if len(enc.Codes) != 3 {
		t.Errorf("expected 3 codes, got %d", len(enc.Codes))
	}

	_, dec, err := server.handleDecode(ctx, req, DecodeInput{Frequencies: freqs, Bits: enc.Bits})
	if err != nil {
		t.Fatalf("handleDecode failed: %v", err)
	}
	if len(dec.Traits) != len(traits) {
		t.Fatalf("round trip length mismatch: got %v, want %v", dec.Traits, traits)
	}
	for i := range traits {
		if dec.Traits[i] != traits[i] {
			t.Errorf("round trip mismatch at %d: got %s, want %s", i, dec.Traits[i], traits[i])
		}
	}

	// Unknown trait in the sequence.
	_, _, err = server.handleEncode(ctx, req, EncodeInput{Frequencies: freqs, Traits: []string{"ghost"}})
	if err == nil {
		t.Error("expected error for unknown trait")
	}

	// Malformed bits.
	_, _, err = server.handleDecode(ctx, req, DecodeInput{Frequencies: freqs, Bits: "012"})
	if err == nil {
		t.Error("expected error for malformed bit string")
	}
}

func TestHandleValidate(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	_, out, err := server.handleValidate(ctx, req, ValidateInput{})
	if err != nil {
		t.Fatalf("handleValidate failed: %v", err)
	}
	if !out.Valid {
		t.Errorf("seeded catalog should be valid, got issues %v", out.Issues)
	}

	// Introduce a dangling reference.
	bad := models.Gene{ID: "vanA", Name: "vanA cluster", Resistance: 0.95, Requires: []string{"missing"}}
	if err := server.store.PutGene(ctx, bad); err != nil {
		t.Fatalf("PutGene failed: %v", err)
	}

	_, out, err = server.handleValidate(ctx, req, ValidateInput{})
	if err != nil {
		t.Fatalf("handleValidate failed: %v", err)
	}
	if out.Valid {
		t.Fatal("expected validation failure for dangling reference")
	}
	found := false
	for _, issue := range out.Issues {
		if issue.Gene == "vanA" && issue.Ref == "missing" && issue.Issue == "dangling" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected dangling issue for vanA, got %v", out.Issues)
	}
}

func TestHandlerRateLimit(t *testing.T) {
	server := setupTestServer(t)
	server.toolLimiters = ratelimit.ToolLimiters{
		"genograph_validate": ratelimit.NewLimiter(0.001, 1),
	}
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	if _, _, err := server.handleValidate(ctx, req, ValidateInput{}); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	if _, _, err := server.handleValidate(ctx, req, ValidateInput{}); err == nil {
		t.Fatal("second call should be rate limited")
	}

	// Tools without limiters stay unlimited.
	if _, _, err := server.handleStatus(ctx, req, StatusInput{Strain: "x"}); err == nil {
		t.Fatal("expected unknown strain error, not a rate limit pass-through success")
	}
}

func TestHandleGraph(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	// Default format is DOT.
	_, out, err := server.handleGraph(ctx, req, GraphInput{})
	if err != nil {
		t.Fatalf("handleGraph failed: %v", err)
	}
	if out.Format != "dot" {
		t.Errorf("expected dot format, got %s", out.Format)
	}
	if !strings.Contains(out.Content, "digraph genograph") {
		t.Error("DOT output missing digraph header")
	}
	if !strings.Contains(out.Content, `"mecA" -> "g01"`) {
		t.Error("DOT output missing requires edge")
	}

	_, out, err = server.handleGraph(ctx, req, GraphInput{Format: "json"})
	if err != nil {
		t.Fatalf("handleGraph(json) failed: %v", err)
	}
	if !strings.Contains(out.Content, `"node_count": 3`) {
		t.Errorf("JSON output missing node count: %s", out.Content)
	}

	if _, _, err := server.handleGraph(ctx, req, GraphInput{Format: "html"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
