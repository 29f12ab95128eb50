package migrations

import (
	"context"

	"github.com/getAlby/tahub.go/db/models"
	"github.com/uptrace/bun"
)

// This init reflects the latest model fields when run on a fresh db.
// Subsequent migrations that add/remove columns must use IfNotExists/IfExists.
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*models.Asset)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Account)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewDropTable().Model((*models.Account)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*models.Asset)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
