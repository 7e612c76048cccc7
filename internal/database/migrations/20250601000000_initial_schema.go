package migrations

import (
	"context"
	"fmt"

	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Pub)(nil),
			(*types.PubOpeningHours)(nil),
			(*types.PubAmenity)(nil),
			(*types.Profile)(nil),
			(*types.Price)(nil),
			(*types.PriceVote)(nil),
			(*types.PriceVerification)(nil),
			(*types.AmenityVote)(nil),
			(*types.Review)(nil),
			(*types.Photo)(nil),
			(*types.Report)(nil),
			(*types.ActivityLog)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Down migration - drop all tables in reverse dependency order
		models := []any{
			(*types.ActivityLog)(nil),
			(*types.Report)(nil),
			(*types.Photo)(nil),
			(*types.Review)(nil),
			(*types.AmenityVote)(nil),
			(*types.PriceVerification)(nil),
			(*types.PriceVote)(nil),
			(*types.Price)(nil),
			(*types.Profile)(nil),
			(*types.PubAmenity)(nil),
			(*types.PubOpeningHours)(nil),
			(*types.Pub)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Cascade().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %T: %w", model, err)
			}
		}

		return nil
	})
}
