package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperforge/hyperforge.go/common"
	"github.com/stretchr/testify/assert"
)

func TestLoadPresetsEmbeddedDefaults(t *testing.T) {
	presets, err := LoadPresets("")
	assert.NoError(t, err)

	// every category the forge accepts carries a preset
	for _, category := range common.Categories {
		preset := presets.For(category)
		assert.NotEmpty(t, preset.ArtStyle, category)
		assert.NotZero(t, preset.TargetPolycount, category)
	}

	npc := presets.For(common.CategoryNPC)
	assert.Equal(t, "quad", npc.Topology)
	assert.Equal(t, 30000, npc.TargetPolycount)
	assert.Contains(t, npc.PromptSuffix, "game character")
}

func TestLoadPresetsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	custom := []byte("weapon:\n  art_style: sculpture\n  target_polycount: 500\n")
	assert.NoError(t, os.WriteFile(path, custom, 0644))

	presets, err := LoadPresets(path)
	assert.NoError(t, err)
	assert.Equal(t, "sculpture", presets.For(common.CategoryWeapon).ArtStyle)
	assert.Equal(t, 500, presets.For(common.CategoryWeapon).TargetPolycount)
	// a custom table replaces the embedded one entirely
	assert.Equal(t, CategoryPreset{}, presets.For(common.CategoryNPC))
}

func TestLoadPresetsMissingFile(t *testing.T) {
	_, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPresetsForUnknownCategory(t *testing.T) {
	presets, err := LoadPresets("")
	assert.NoError(t, err)
	assert.Equal(t, CategoryPreset{}, presets.For("spaceship"))

	var nilPresets *Presets
	assert.Equal(t, CategoryPreset{}, nilPresets.For(common.CategoryProp))
}
