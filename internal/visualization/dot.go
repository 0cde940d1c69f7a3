// Package visualization renders the gene dependency graph in various output
// formats.
package visualization

import (
	"context"
	"fmt"
	"strings"

	"github.com/driftlab/genograph/internal/constants"
	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/store"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// levelColors maps threat classification of a gene's resistance to DOT colors.
var levelColors = map[models.ThreatLevel]string{
	models.ThreatSafe:      "mediumseagreen",
	models.ThreatMonitored: "goldenrod",
	models.ThreatCritical:  "tomato",
}

// RenderDOT produces a Graphviz DOT representation of the gene dependency
// graph. Each requires edge points from a gene to its prerequisite.
func RenderDOT(ctx context.Context, gs store.GeneStore) (string, error) {
	genes, err := gs.ListGenes(ctx)
	if err != nil {
		return "", fmt.Errorf("list genes: %w", err)
	}

	var b strings.Builder
	b.WriteString("digraph genograph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, gene := range genes {
		color := levelColors[models.ClassifyResistance(gene.Resistance)]
		if color == "" {
			color = "lightgray"
		}

		label := gene.Name
		if label == "" {
			label = gene.ID
		}
		label = truncate(label, constants.MaxGeneNameLen)

		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q, tooltip=\"resistance=%.2f\"];\n",
			gene.ID, label, color, gene.Resistance))
	}
	b.WriteString("\n")

	for _, gene := range genes {
		for _, dep := range gene.Requires {
			b.WriteString(fmt.Sprintf("  %q -> %q [label=\"requires\"];\n", gene.ID, dep))
		}
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// RenderJSON produces a JSON graph representation with nodes and edges arrays.
func RenderJSON(ctx context.Context, gs store.GeneStore) (map[string]interface{}, error) {
	genes, err := gs.ListGenes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genes: %w", err)
	}

	jsonNodes := make([]map[string]interface{}, 0, len(genes))
	var jsonEdges []map[string]interface{}
	for _, gene := range genes {
		jsonNodes = append(jsonNodes, map[string]interface{}{
			"id":         gene.ID,
			"name":       gene.Name,
			"resistance": gene.Resistance,
			"level":      string(models.ClassifyResistance(gene.Resistance)),
		})
		for _, dep := range gene.Requires {
			jsonEdges = append(jsonEdges, map[string]interface{}{
				"source": gene.ID,
				"target": dep,
				"kind":   "requires",
			})
		}
	}

	return map[string]interface{}{
		"nodes":      jsonNodes,
		"edges":      jsonEdges,
		"node_count": len(jsonNodes),
		"edge_count": len(jsonEdges),
	}, nil
}

// truncate shortens s to max runes, appending an ellipsis when truncated.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
