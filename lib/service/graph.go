package service

import (
	"context"
	"fmt"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"golang.org/x/sync/errgroup"
)

type GraphNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Manifest string `json:"manifest,omitempty"`
	Missing  bool   `json:"missing,omitempty"`
	HasModel bool   `json:"has_model"`
}

type GraphEdge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Relation string  `json:"relation"`
	Chance   float64 `json:"chance,omitempty"`
}

type GraphStats struct {
	Nodes       int            `json:"nodes"`
	Edges       int            `json:"edges"`
	Missing     int            `json:"missing"`
	PerManifest map[string]int `json:"per_manifest"`
	PerRelation map[string]int `json:"per_relation"`
}

type RelationshipGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`
}

// BuildRelationshipGraph scans every manifest and links entries through
// their drop, sell, yield and recipe references. References to unknown
// ids become placeholder nodes flagged missing, the studio uses those
// to spot manifest inconsistencies.
func (svc *ForgeService) BuildRelationshipGraph(ctx context.Context) (*RelationshipGraph, error) {
	manifests := make([]*gameserver.Manifest, len(common.Manifests))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range common.Manifests {
		i, name := i, name
		g.Go(func() error {
			m, err := svc.ManifestClient.FetchManifest(gctx, name)
			if err != nil {
				return fmt.Errorf("fetching manifest %s: %w", name, err)
			}
			manifests[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := &RelationshipGraph{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
	index := map[string]bool{}
	for _, manifest := range manifests {
		for _, entry := range manifest.Entries {
			if entry.ID == "" || index[entry.ID] {
				continue
			}
			category := entry.Category
			if category == "" {
				category = common.CategoryForManifest(manifest.Name)
			}
			graph.Nodes = append(graph.Nodes, GraphNode{
				ID:       entry.ID,
				Name:     entry.Name,
				Category: category,
				Manifest: manifest.Name,
				HasModel: entry.ModelURL != "",
			})
			index[entry.ID] = true
		}
	}

	for _, manifest := range manifests {
		for _, entry := range manifest.Entries {
			for _, drop := range entry.Drops {
				graph.addEdge(index, GraphEdge{From: entry.ID, To: drop.ItemID, Relation: common.RelationDrops, Chance: drop.Chance})
			}
			for _, target := range entry.Sells {
				graph.addEdge(index, GraphEdge{From: entry.ID, To: target, Relation: common.RelationSells})
			}
			for _, target := range entry.Yields {
				graph.addEdge(index, GraphEdge{From: entry.ID, To: target, Relation: common.RelationYields})
			}
			for _, ingredient := range entry.CraftsFrom {
				graph.addEdge(index, GraphEdge{From: entry.ID, To: ingredient, Relation: common.RelationCraftsFrom})
			}
		}
	}

	graph.Stats = buildGraphStats(graph)
	return graph, nil
}

// addEdge appends the edge and materializes a placeholder node when the
// target id does not exist in any manifest.
func (graph *RelationshipGraph) addEdge(index map[string]bool, edge GraphEdge) {
	if edge.To == "" {
		return
	}
	if !index[edge.To] {
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:      edge.To,
			Name:    edge.To,
			Missing: true,
		})
		index[edge.To] = true
	}
	graph.Edges = append(graph.Edges, edge)
}

func buildGraphStats(graph *RelationshipGraph) GraphStats {
	stats := GraphStats{
		Nodes:       len(graph.Nodes),
		Edges:       len(graph.Edges),
		PerManifest: map[string]int{},
		PerRelation: map[string]int{},
	}
	for _, node := range graph.Nodes {
		if node.Missing {
			stats.Missing++
			continue
		}
		stats.PerManifest[node.Manifest]++
	}
	for _, edge := range graph.Edges {
		stats.PerRelation[edge.Relation]++
	}
	return stats
}
