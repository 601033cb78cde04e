package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ExportRecord : audit row for every manifest push attempt, failed ones included
type ExportRecord struct {
	ID           int64        `json:"id" bun:",pk,autoincrement"`
	UserID       int64        `json:"user_id" bun:",notnull"`
	Manifest     string       `json:"manifest" bun:",notnull"`
	Destination  string       `json:"destination" bun:",nullzero"`
	AssetCount   int          `json:"asset_count"`
	AssetIDs     []string     `json:"asset_ids" bun:",nullzero,type:jsonb"`
	State        string       `json:"state" bun:",notnull,default:'pending'"`
	ErrorMessage string       `json:"error_message,omitempty" bun:",nullzero"`
	CreatedAt    time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	FinishedAt   bun.NullTime `json:"finished_at"`
}
