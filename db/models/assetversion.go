package models

import (
	"time"
)

// AssetVersion : immutable snapshot of an asset at a point in time.
// Versions form a hash chain per asset: ParentHash of version n equals
// Hash of version n-1, so a broken chain is detectable after pruning.
type AssetVersion struct {
	ID         int64                  `json:"id" bun:",pk,autoincrement"`
	AssetID    int64                  `json:"asset_id" bun:",notnull"`
	Asset      *Asset                 `json:"-" bun:"rel:belongs-to,join:asset_id=id"`
	UserID     int64                  `json:"user_id" bun:",notnull"`
	Version    int                    `json:"version" bun:",notnull"`
	Hash       string                 `json:"hash" bun:",notnull"`
	ParentHash string                 `json:"parent_hash,omitempty" bun:",nullzero"`
	Label      string                 `json:"label,omitempty" bun:",nullzero"`
	Snapshot   map[string]interface{} `json:"snapshot" bun:",notnull,type:jsonb"`
	CreatedAt  time.Time              `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
