package service

import (
	"testing"

	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotHashIsStableAcrossKeyOrder(t *testing.T) {
	a := map[string]interface{}{
		"name":     "iron sword",
		"state":    "completed",
		"metadata": map[string]interface{}{"damage": 12, "rarity": "rare"},
	}
	b := map[string]interface{}{
		"metadata": map[string]interface{}{"rarity": "rare", "damage": 12},
		"state":    "completed",
		"name":     "iron sword",
	}

	hashA, err := SnapshotHash(a)
	assert.NoError(t, err)
	hashB, err := SnapshotHash(b)
	assert.NoError(t, err)
	assert.Equal(t, hashA, hashB)
}

func TestSnapshotHashChangesWithContent(t *testing.T) {
	snapshot := (&models.Asset{Name: "wolf", Category: "npc"}).SnapshotFields()
	hashBefore, err := SnapshotHash(snapshot)
	assert.NoError(t, err)

	snapshot["state"] = "preview"
	hashAfter, err := SnapshotHash(snapshot)
	assert.NoError(t, err)
	assert.NotEqual(t, hashBefore, hashAfter)
}

func TestDiffSnapshotsIdentical(t *testing.T) {
	snapshot := (&models.Asset{Name: "crate", Category: "prop"}).SnapshotFields()
	diff := DiffSnapshots(snapshot, snapshot)
	assert.Empty(t, diff)
}

func TestDiffSnapshotsAddedRemovedChanged(t *testing.T) {
	from := map[string]interface{}{
		"name":      "crate",
		"state":     "draft",
		"model_url": "https://cdn.test/crate.glb",
	}
	to := map[string]interface{}{
		"name":          "crate",
		"state":         "completed",
		"thumbnail_url": "https://cdn.test/crate.png",
	}

	diff := DiffSnapshots(from, to)
	assert.Len(t, diff, 3)

	byField := map[string]FieldDiff{}
	for _, d := range diff {
		byField[d.Field] = d
	}
	assert.Equal(t, DiffRemoved, byField["model_url"].Kind)
	assert.Equal(t, "https://cdn.test/crate.glb", byField["model_url"].From)
	assert.Equal(t, DiffAdded, byField["thumbnail_url"].Kind)
	assert.Equal(t, "https://cdn.test/crate.png", byField["thumbnail_url"].To)
	assert.Equal(t, DiffChanged, byField["state"].Kind)
	assert.Equal(t, "draft", byField["state"].From)
	assert.Equal(t, "completed", byField["state"].To)
}

func TestDiffSnapshotsComparesMetadataByValue(t *testing.T) {
	from := map[string]interface{}{
		"metadata": map[string]interface{}{"damage": 12, "rarity": "rare"},
	}
	same := map[string]interface{}{
		"metadata": map[string]interface{}{"rarity": "rare", "damage": 12},
	}
	changed := map[string]interface{}{
		"metadata": map[string]interface{}{"damage": 14, "rarity": "rare"},
	}

	assert.Empty(t, DiffSnapshots(from, same))

	diff := DiffSnapshots(from, changed)
	assert.Len(t, diff, 1)
	assert.Equal(t, "metadata", diff[0].Field)
	assert.Equal(t, DiffChanged, diff[0].Kind)
}

func TestDiffSnapshotsIsSortedByField(t *testing.T) {
	from := map[string]interface{}{"zeta": 1, "alpha": 1, "mid": 1}
	to := map[string]interface{}{"zeta": 2, "alpha": 2, "mid": 2}

	diff := DiffSnapshots(from, to)
	assert.Len(t, diff, 3)
	assert.Equal(t, "alpha", diff[0].Field)
	assert.Equal(t, "mid", diff[1].Field)
	assert.Equal(t, "zeta", diff[2].Field)
}

func TestApplySnapshotKeepsIdentityFields(t *testing.T) {
	asset := &models.Asset{
		PublicID: "hf_keep",
		Source:   "forge",
		Name:     "old name",
		State:    "completed",
	}
	asset.ApplySnapshot(map[string]interface{}{
		"public_id": "hf_other",
		"source":    "cdn",
		"name":      "new name",
		"state":     "preview",
	})

	assert.Equal(t, "hf_keep", asset.PublicID)
	assert.Equal(t, "forge", asset.Source)
	assert.Equal(t, "new name", asset.Name)
	assert.Equal(t, "preview", asset.State)
}
