package service

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresets []byte

// CategoryPreset tunes mesh generation per asset category. The built-in
// table can be replaced with CATEGORY_PRESETS_PATH.
type CategoryPreset struct {
	ArtStyle        string `yaml:"art_style"`
	NegativePrompt  string `yaml:"negative_prompt"`
	PromptSuffix    string `yaml:"prompt_suffix"`
	Topology        string `yaml:"topology"`
	TargetPolycount int    `yaml:"target_polycount"`
	SymmetryMode    string `yaml:"symmetry_mode"`
}

type Presets struct {
	categories map[string]CategoryPreset
}

func LoadPresets(path string) (*Presets, error) {
	data := defaultPresets
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = fileData
	}
	categories := map[string]CategoryPreset{}
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return &Presets{categories: categories}, nil
}

// For returns the preset for a category. Unknown categories and a nil
// receiver yield the zero preset.
func (p *Presets) For(category string) CategoryPreset {
	if p == nil {
		return CategoryPreset{}
	}
	return p.categories[category]
}
