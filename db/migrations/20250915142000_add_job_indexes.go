package migrations

import (
	"context"

	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/uptrace/bun"
)

// The poller scans for non-terminal jobs on every tick, so state needs an index.
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateIndex().Model((*models.GenerationJob)(nil)).
			IfNotExists().
			Index("generation_jobs_state_idx").
			Column("state").
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*models.AssetVersion)(nil)).
			IfNotExists().
			Index("asset_versions_asset_id_idx").
			Column("asset_id").
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, nil)
}
