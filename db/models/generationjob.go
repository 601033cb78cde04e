package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// GenerationJob : one unit of work handed to the mesh provider.
// A refine job carries the preview job it continues in PrecedingJobID.
type GenerationJob struct {
	ID             int64        `json:"id" bun:",pk,autoincrement"`
	AssetID        int64        `json:"asset_id" bun:",notnull"`
	Asset          *Asset       `json:"-" bun:"rel:belongs-to,join:asset_id=id"`
	UserID         int64        `json:"user_id" bun:",notnull"`
	Type           string       `json:"type" bun:",notnull"`
	MeshyTaskID    string       `json:"meshy_task_id" bun:",nullzero"`
	State          string       `json:"state" bun:",notnull,default:'initialized'"`
	Progress       int          `json:"progress"`
	ErrorMessage   string       `json:"error_message,omitempty" bun:",nullzero"`
	PrecedingJobID int64        `json:"preceding_job_id,omitempty" bun:",nullzero"`
	CreatedAt      time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      bun.NullTime `json:"updated_at"`
	FinishedAt     bun.NullTime `json:"finished_at"`
}

func (j *GenerationJob) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		j.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*GenerationJob)(nil)
