package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Asset : a generated or imported 3d asset owned by a user
type Asset struct {
	ID             int64                  `json:"id" bun:",pk,autoincrement"`
	PublicID       string                 `json:"public_id" bun:",unique,notnull"`
	UserID         int64                  `json:"user_id" bun:",notnull"`
	User           *User                  `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Name           string                 `json:"name" bun:",notnull"`
	Category       string                 `json:"category" bun:",notnull"`
	Description    string                 `json:"description" bun:",nullzero"`
	Prompt         string                 `json:"prompt" bun:",nullzero"`
	NegativePrompt string                 `json:"negative_prompt" bun:",nullzero"`
	ArtStyle       string                 `json:"art_style" bun:",nullzero"`
	Source         string                 `json:"source" bun:",notnull,default:'forge'"`
	State          string                 `json:"state" bun:",notnull,default:'draft'"`
	ModelURL       string                 `json:"model_url" bun:",nullzero"`
	ThumbnailURL   string                 `json:"thumbnail_url" bun:",nullzero"`
	ConceptArtURL  string                 `json:"concept_art_url" bun:",nullzero"`
	VrmURL         string                 `json:"vrm_url" bun:",nullzero"`
	Metadata       map[string]interface{} `json:"metadata" bun:",nullzero,type:jsonb"`
	ParentAssetID  int64                  `json:"parent_asset_id,omitempty" bun:",nullzero"`
	CreatedAt      time.Time              `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      bun.NullTime           `json:"updated_at"`
}

func (a *Asset) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		a.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// SnapshotFields returns the version-relevant view of the asset. Version
// hashes are computed over this map, so adding a field here starts a new
// version lineage for assets whose value differs from the zero value.
func (a *Asset) SnapshotFields() map[string]interface{} {
	return map[string]interface{}{
		"public_id":       a.PublicID,
		"name":            a.Name,
		"category":        a.Category,
		"description":     a.Description,
		"prompt":          a.Prompt,
		"negative_prompt": a.NegativePrompt,
		"art_style":       a.ArtStyle,
		"source":          a.Source,
		"state":           a.State,
		"model_url":       a.ModelURL,
		"thumbnail_url":   a.ThumbnailURL,
		"concept_art_url": a.ConceptArtURL,
		"vrm_url":         a.VrmURL,
		"metadata":        a.Metadata,
	}
}

// ApplySnapshot writes a stored snapshot back onto the asset. Identity
// fields (public_id, source) are never restored.
func (a *Asset) ApplySnapshot(snapshot map[string]interface{}) {
	setString := func(key string, target *string) {
		if v, ok := snapshot[key].(string); ok {
			*target = v
		}
	}
	setString("name", &a.Name)
	setString("category", &a.Category)
	setString("description", &a.Description)
	setString("prompt", &a.Prompt)
	setString("negative_prompt", &a.NegativePrompt)
	setString("art_style", &a.ArtStyle)
	setString("state", &a.State)
	setString("model_url", &a.ModelURL)
	setString("thumbnail_url", &a.ThumbnailURL)
	setString("concept_art_url", &a.ConceptArtURL)
	setString("vrm_url", &a.VrmURL)
	if v, ok := snapshot["metadata"].(map[string]interface{}); ok {
		a.Metadata = v
	} else if snapshot["metadata"] == nil {
		a.Metadata = nil
	}
}

var _ bun.BeforeAppendModelHook = (*Asset)(nil)
