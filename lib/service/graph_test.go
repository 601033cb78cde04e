package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/stretchr/testify/assert"
)

type staticManifestSource struct {
	manifests map[string]*gameserver.Manifest
}

func (s *staticManifestSource) Mode() string { return gameserver.LOCAL_CLIENT_TYPE }

func (s *staticManifestSource) ListManifests(ctx context.Context) ([]gameserver.ManifestInfo, error) {
	infos := []gameserver.ManifestInfo{}
	for name, m := range s.manifests {
		infos = append(infos, gameserver.ManifestInfo{Name: name, AssetCount: len(m.Entries)})
	}
	return infos, nil
}

func (s *staticManifestSource) FetchManifest(ctx context.Context, name string) (*gameserver.Manifest, error) {
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("manifest %s not found", name)
	}
	return m, nil
}

func (s *staticManifestSource) PushManifest(ctx context.Context, name string, m *gameserver.Manifest) error {
	s.manifests[name] = m
	return nil
}

func graphTestService() *ForgeService {
	return &ForgeService{
		ManifestClient: &staticManifestSource{manifests: map[string]*gameserver.Manifest{
			common.ManifestItems: {Name: common.ManifestItems, Entries: []gameserver.ManifestEntry{
				{
					ID:         "sword",
					Name:       "Iron Sword",
					Category:   common.CategoryWeapon,
					ModelURL:   "https://cdn.test/sword.glb",
					CraftsFrom: []string{"iron_ingot"},
				},
			}},
			common.ManifestNPCs: {Name: common.ManifestNPCs, Entries: []gameserver.ManifestEntry{
				{
					ID:    "wolf",
					Name:  "Gray Wolf",
					Drops: []gameserver.DropRef{{ItemID: "sword", Chance: 0.25}},
				},
			}},
			common.ManifestResources: {Name: common.ManifestResources, Entries: []gameserver.ManifestEntry{
				{
					ID:     "iron_ore",
					Name:   "Iron Ore",
					Yields: []string{"iron_ingot"},
				},
			}},
			common.ManifestBuildings: {Name: common.ManifestBuildings, Entries: []gameserver.ManifestEntry{
				{
					ID:    "forge_hut",
					Name:  "Forge Hut",
					Sells: []string{"sword"},
				},
				// duplicate id, the items manifest already owns it
				{
					ID:   "sword",
					Name: "Sword Stand",
				},
				// entries without an id cannot be linked
				{
					Name: "Nameless Ruin",
				},
			}},
		}},
	}
}

func TestBuildRelationshipGraph(t *testing.T) {
	svc := graphTestService()

	graph, err := svc.BuildRelationshipGraph(context.Background())
	assert.NoError(t, err)

	// sword, wolf, iron_ore, forge_hut plus the missing iron_ingot
	assert.Len(t, graph.Nodes, 5)
	assert.Len(t, graph.Edges, 4)

	nodes := map[string]GraphNode{}
	for _, n := range graph.Nodes {
		nodes[n.ID] = n
	}
	assert.Equal(t, "Iron Sword", nodes["sword"].Name)
	assert.Equal(t, common.ManifestItems, nodes["sword"].Manifest)
	assert.True(t, nodes["sword"].HasModel)

	// entries without a category fall back to the manifest's category
	assert.Equal(t, common.CategoryNPC, nodes["wolf"].Category)
	assert.False(t, nodes["wolf"].HasModel)

	assert.True(t, nodes["iron_ingot"].Missing)
	assert.Equal(t, "iron_ingot", nodes["iron_ingot"].Name)
}

func TestBuildRelationshipGraphEdges(t *testing.T) {
	svc := graphTestService()

	graph, err := svc.BuildRelationshipGraph(context.Background())
	assert.NoError(t, err)

	edges := map[string]GraphEdge{}
	for _, e := range graph.Edges {
		edges[e.From+">"+e.To] = e
	}
	assert.Equal(t, common.RelationDrops, edges["wolf>sword"].Relation)
	assert.Equal(t, 0.25, edges["wolf>sword"].Chance)
	assert.Equal(t, common.RelationCraftsFrom, edges["sword>iron_ingot"].Relation)
	assert.Equal(t, common.RelationYields, edges["iron_ore>iron_ingot"].Relation)
	assert.Equal(t, common.RelationSells, edges["forge_hut>sword"].Relation)
}

func TestBuildRelationshipGraphStats(t *testing.T) {
	svc := graphTestService()

	graph, err := svc.BuildRelationshipGraph(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 5, graph.Stats.Nodes)
	assert.Equal(t, 4, graph.Stats.Edges)
	assert.Equal(t, 1, graph.Stats.Missing)
	assert.Equal(t, 1, graph.Stats.PerManifest[common.ManifestItems])
	assert.Equal(t, 1, graph.Stats.PerManifest[common.ManifestNPCs])
	assert.Equal(t, 1, graph.Stats.PerRelation[common.RelationDrops])
	assert.Equal(t, 1, graph.Stats.PerRelation[common.RelationCraftsFrom])
}

func TestBuildRelationshipGraphFetchError(t *testing.T) {
	svc := &ForgeService{
		ManifestClient: &staticManifestSource{manifests: map[string]*gameserver.Manifest{
			// only one of the four manifests resolves
			common.ManifestItems: {Name: common.ManifestItems},
		}},
	}

	_, err := svc.BuildRelationshipGraph(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetching manifest")
}
