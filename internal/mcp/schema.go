// Package mcp provides an MCP (Model Context Protocol) server for genograph.
package mcp

// ResolveInput defines the input for the genograph_resolve tool.
type ResolveInput struct {
	Strain string `json:"strain" jsonschema:"description=Strain ID whose genome is checked,required"`
	Gene   string `json:"gene" jsonschema:"description=Target gene ID,required"`
}

// PrerequisiteStatus reports one prerequisite check.
type PrerequisiteStatus struct {
	Gene     string `json:"gene"`
	Acquired bool   `json:"acquired"`
}

// ResolveOutput defines the output for the genograph_resolve tool.
type ResolveOutput struct {
	Eligible bool                 `json:"eligible" jsonschema:"description=Whether all prerequisites are satisfied"`
	Reason   string               `json:"reason" jsonschema:"description=Human-readable eligibility explanation"`
	Checks   []PrerequisiteStatus `json:"checks,omitempty" jsonschema:"description=Per-prerequisite status"`
}

// AcquireInput defines the input for the genograph_acquire tool.
type AcquireInput struct {
	Strain string `json:"strain" jsonschema:"description=Strain ID (created if absent),required"`
	Gene   string `json:"gene" jsonschema:"description=Gene ID to acquire,required"`
}

// AcquireOutput defines the output for the genograph_acquire tool.
type AcquireOutput struct {
	Acquired   bool    `json:"acquired" jsonschema:"description=Whether the gene was acquired"`
	Resistance float64 `json:"resistance,omitempty" jsonschema:"description=Strain resistance after acquisition"`
	Level      string  `json:"level,omitempty" jsonschema:"description=Threat classification after acquisition"`
	Message    string  `json:"message" jsonschema:"description=Human-readable result message"`
}

// StatusInput defines the input for the genograph_status tool.
type StatusInput struct {
	Strain string `json:"strain" jsonschema:"description=Strain ID,required"`
}

// StatusOutput defines the output for the genograph_status tool.
type StatusOutput struct {
	Strain     string   `json:"strain"`
	Resistance float64  `json:"resistance"`
	Level      string   `json:"level"`
	Genome     []string `json:"genome,omitempty" jsonschema:"description=Acquired gene IDs in acquisition order"`
}

// FrequencyEntry is one trait/frequency pair for the codec tools.
// Entry order is the deterministic tie-break used during code construction.
type FrequencyEntry struct {
	Trait     string  `json:"trait" jsonschema:"required"`
	Frequency float64 `json:"frequency" jsonschema:"description=Positive frequency or probability,required"`
}

// EncodeInput defines the input for the genograph_encode tool.
type EncodeInput struct {
	Frequencies []FrequencyEntry `json:"frequencies" jsonschema:"description=Trait frequency table,required"`
	Traits      []string         `json:"traits" jsonschema:"description=Trait sequence to encode,required"`
}

// EncodeOutput defines the output for the genograph_encode tool.
type EncodeOutput struct {
	Bits  string            `json:"bits" jsonschema:"description=Encoded bit string"`
	Codes map[string]string `json:"codes" jsonschema:"description=Code table used for encoding"`
}

// DecodeInput defines the input for the genograph_decode tool.
type DecodeInput struct {
	Frequencies []FrequencyEntry `json:"frequencies" jsonschema:"description=Trait frequency table the bits were encoded with,required"`
	Bits        string           `json:"bits" jsonschema:"description=Bit string to decode,required"`
}

// DecodeOutput defines the output for the genograph_decode tool.
type DecodeOutput struct {
	Traits []string `json:"traits" jsonschema:"description=Decoded trait sequence"`
}

// ValidateInput defines the input for the genograph_validate tool.
type ValidateInput struct{}

// ValidationIssue describes one catalog validation problem.
type ValidationIssue struct {
	Gene  string `json:"gene"`
	Ref   string `json:"ref,omitempty"`
	Issue string `json:"issue"`
}

// ValidateOutput defines the output for the genograph_validate tool.
type ValidateOutput struct {
	Valid   bool              `json:"valid"`
	Issues  []ValidationIssue `json:"issues,omitempty"`
	Message string            `json:"message"`
}

// GraphInput defines the input for the genograph_graph tool.
type GraphInput struct {
	Format string `json:"format,omitempty" jsonschema:"description=Output format: dot (default) or json"`
}

// GraphOutput defines the output for the genograph_graph tool.
type GraphOutput struct {
	Format  string `json:"format"`
	Content string `json:"content" jsonschema:"description=Rendered graph"`
}
