package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/phenocode"
	"github.com/driftlab/genograph/internal/ratelimit"
	"github.com/driftlab/genograph/internal/resolver"
	"github.com/driftlab/genograph/internal/store"
	"github.com/driftlab/genograph/internal/visualization"
)

// handleResolve checks whether a strain's genome satisfies the prerequisites
// for a target gene.
func (s *Server) handleResolve(ctx context.Context, req *sdk.CallToolRequest, args ResolveInput) (*sdk.CallToolResult, ResolveOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "genograph_resolve"); err != nil {
		return nil, ResolveOutput{}, err
	}

	if args.Strain == "" || args.Gene == "" {
		return nil, ResolveOutput{}, fmt.Errorf("strain and gene are required")
	}

	cat, err := store.LoadCatalog(ctx, s.store)
	if err != nil {
		return nil, ResolveOutput{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	genome := models.NewGenome()
	strain, err := s.store.GetStrain(ctx, args.Strain)
	if err != nil {
		return nil, ResolveOutput{}, fmt.Errorf("failed to get strain: %w", err)
	}
	if strain != nil {
		genome = strain.Genome
	}

	ex, err := resolver.Explain(cat, genome, args.Gene)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	out := ResolveOutput{
		Eligible: ex.Eligible,
		Reason:   ex.Reason,
	}
	for _, c := range ex.Checks {
		out.Checks = append(out.Checks, PrerequisiteStatus{Gene: c.GeneID, Acquired: c.Acquired})
	}
	return nil, out, nil
}

// handleAcquire acquires a gene for a strain after verifying prerequisites.
// The strain is created on first acquisition.
func (s *Server) handleAcquire(ctx context.Context, req *sdk.CallToolRequest, args AcquireInput) (*sdk.CallToolResult, AcquireOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "genograph_acquire"); err != nil {
		return nil, AcquireOutput{}, err
	}

	if args.Strain == "" || args.Gene == "" {
		return nil, AcquireOutput{}, fmt.Errorf("strain and gene are required")
	}

	cat, err := store.LoadCatalog(ctx, s.store)
	if err != nil {
		return nil, AcquireOutput{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	strain, err := s.store.GetStrain(ctx, args.Strain)
	if err != nil {
		return nil, AcquireOutput{}, fmt.Errorf("failed to get strain: %w", err)
	}
	if strain == nil {
		strain = models.NewStrain(args.Strain)
		if err := s.store.PutStrain(ctx, strain); err != nil {
			return nil, AcquireOutput{}, fmt.Errorf("failed to create strain: %w", err)
		}
	}

	ok, err := resolver.CanActivate(cat, strain.Genome, args.Gene)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownGene) {
			return nil, AcquireOutput{
				Message: fmt.Sprintf("Gene %s is not in the catalog", args.Gene),
			}, nil
		}
		return nil, AcquireOutput{}, err
	}
	if !ok {
		ex, exErr := resolver.Explain(cat, strain.Genome, args.Gene)
		reason := "prerequisites missing"
		if exErr == nil {
			reason = ex.Reason
		}
		return nil, AcquireOutput{
			Message: fmt.Sprintf("Acquisition blocked: %s", reason),
		}, nil
	}

	gene, _ := cat.Get(args.Gene)
	if err := s.store.AcquireGene(ctx, strain.ID, gene.ID, gene.Resistance); err != nil {
		return nil, AcquireOutput{}, fmt.Errorf("failed to record acquisition: %w", err)
	}

	level := models.ClassifyResistance(gene.Resistance)
	return nil, AcquireOutput{
		Acquired:   true,
		Resistance: gene.Resistance,
		Level:      string(level),
		Message:    fmt.Sprintf("Strain %s acquired %s (resistance %.2f, %s)", strain.ID, gene.ID, gene.Resistance, level),
	}, nil
}

// handleStatus returns a strain's genome, resistance, and threat level.
func (s *Server) handleStatus(ctx context.Context, req *sdk.CallToolRequest, args StatusInput) (*sdk.CallToolResult, StatusOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "genograph_status"); err != nil {
		return nil, StatusOutput{}, err
	}

	if args.Strain == "" {
		return nil, StatusOutput{}, fmt.Errorf("strain is required")
	}

	strain, err := s.store.GetStrain(ctx, args.Strain)
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("failed to get strain: %w", err)
	}
	if strain == nil {
		return nil, StatusOutput{}, fmt.Errorf("%w: %s", store.ErrStrainNotFound, args.Strain)
	}

	return nil, StatusOutput{
		Strain:     strain.ID,
		Resistance: strain.Resistance,
		Level:      string(models.ClassifyResistance(strain.Resistance)),
		Genome:     append([]string(nil), strain.Acquisitions...),
	}, nil
}

// buildFrequencyTable converts the wire representation into a frequency
// table, preserving entry order.
func buildFrequencyTable(entries []FrequencyEntry) (*phenocode.FrequencyTable, error) {
	table := phenocode.NewFrequencyTable()
	for _, e := range entries {
		if err := table.Set(e.Trait, e.Frequency); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// handleEncode builds a prefix code from the given frequencies and encodes
// the trait sequence.
func (s *Server) handleEncode(ctx context.Context, req *sdk.CallToolRequest, args EncodeInput) (*sdk.CallToolResult, EncodeOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "genograph_encode"); err != nil {
		return nil, EncodeOutput{}, err
	}

	table, err := buildFrequencyTable(args.Frequencies)
	if err != nil {
		return nil, EncodeOutput{}, err
	}

	tree, err := phenocode.Build(table)
	if err != nil {
		return nil, EncodeOutput{}, err
	}
	codes := tree.Codes()

	bits, err := phenocode.Encode(args.Traits, codes)
	if err != nil {
		return nil, EncodeOutput{}, err
	}

	return nil, EncodeOutput{Bits: bits, Codes: codes}, nil
}

// handleDecode rebuilds the prefix code from the given frequencies and
// decodes the bit string.
func (s *Server) handleDecode(ctx context.Context, req *sdk.CallToolRequest, args DecodeInput) (*sdk.CallToolResult, DecodeOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "genograph_decode"); err != nil {
		return nil, DecodeOutput{}, err
	}

	table, err := buildFrequencyTable(args.Frequencies)
	if err != nil {
		return nil, DecodeOutput{}, err
	}

	tree, err := phenocode.Build(table)
	if err != nil {
		return nil, DecodeOutput{}, err
	}

	traits, err := tree.Decode(args.Bits)
	if err != nil {
		return nil, DecodeOutput{}, err
	}

	return nil, DecodeOutput{Traits: traits}, nil
}

// handleValidate checks the stored gene catalog for dependency issues.
func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, args ValidateInput) (*sdk.CallToolResult, ValidateOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "genograph_validate"); err != nil {
		return nil, ValidateOutput{}, err
	}

	genes, err := s.store.ListGenes(ctx)
	if err != nil {
		return nil, ValidateOutput{}, fmt.Errorf("failed to list genes: %w", err)
	}

	var issues []ValidationIssue
	cat := catalog.New()
	for _, g := range genes {
		if err := cat.Add(g); err != nil {
			issues = append(issues, ValidationIssue{Gene: g.ID, Issue: err.Error()})
		}
	}
	for _, ve := range cat.Validate() {
		issues = append(issues, ValidationIssue{Gene: ve.GeneID, Ref: ve.RefID, Issue: ve.Issue})
	}

	out := ValidateOutput{
		Valid:  len(issues) == 0,
		Issues: issues,
	}
	if out.Valid {
		out.Message = fmt.Sprintf("Gene catalog is valid (%d genes, no issues found)", len(genes))
	} else {
		out.Message = fmt.Sprintf("Found %d issue(s) in the gene catalog", len(issues))
	}
	return nil, out, nil
}

// handleGraph renders the gene dependency graph.
func (s *Server) handleGraph(ctx context.Context, req *sdk.CallToolRequest, args GraphInput) (*sdk.CallToolResult, GraphOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "genograph_graph"); err != nil {
		return nil, GraphOutput{}, err
	}

	format := visualization.Format(args.Format)
	if format == "" {
		format = visualization.FormatDOT
	}

	switch format {
	case visualization.FormatDOT:
		content, err := visualization.RenderDOT(ctx, s.store)
		if err != nil {
			return nil, GraphOutput{}, fmt.Errorf("failed to render graph: %w", err)
		}
		return nil, GraphOutput{Format: string(format), Content: content}, nil

	case visualization.FormatJSON:
		graph, err := visualization.RenderJSON(ctx, s.store)
		if err != nil {
			return nil, GraphOutput{}, fmt.Errorf("failed to render graph: %w", err)
		}
		content, err := json.MarshalIndent(graph, "", "  ")
		if err != nil {
			return nil, GraphOutput{}, fmt.Errorf("failed to marshal graph: %w", err)
		}
		return nil, GraphOutput{Format: string(format), Content: string(content)}, nil

	default:
		return nil, GraphOutput{}, fmt.Errorf("unsupported format: %s (use dot or json)", format)
	}
}
