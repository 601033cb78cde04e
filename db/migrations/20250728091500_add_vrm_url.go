package migrations

import (
	"context"

	"github.com/hyperforge/hyperforge.go/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewAddColumn().Model((*models.Asset)(nil)).
			IfNotExists().
			ColumnExpr("vrm_url VARCHAR").
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, nil)
}
