package migrations

import (
	"context"
	"fmt"

	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Child rows go away with their parents
			ALTER TABLE pub_opening_hours
			ADD CONSTRAINT fk_pub_opening_hours_pub
			FOREIGN KEY (pub_id) REFERENCES pubs(id) ON DELETE CASCADE;

			ALTER TABLE pub_amenities
			ADD CONSTRAINT fk_pub_amenities_pub
			FOREIGN KEY (pub_id) REFERENCES pubs(id) ON DELETE CASCADE;

			ALTER TABLE prices
			ADD CONSTRAINT fk_prices_pub
			FOREIGN KEY (pub_id) REFERENCES pubs(id) ON DELETE CASCADE;

			ALTER TABLE price_votes
			ADD CONSTRAINT fk_price_votes_price
			FOREIGN KEY (price_id) REFERENCES prices(id) ON DELETE CASCADE;

			ALTER TABLE price_verifications
			ADD CONSTRAINT fk_price_verifications_price
			FOREIGN KEY (price_id) REFERENCES prices(id) ON DELETE CASCADE;

			ALTER TABLE amenity_votes
			ADD CONSTRAINT fk_amenity_votes_pub
			FOREIGN KEY (pub_id) REFERENCES pubs(id) ON DELETE CASCADE;

			ALTER TABLE reviews
			ADD CONSTRAINT fk_reviews_pub
			FOREIGN KEY (pub_id) REFERENCES pubs(id) ON DELETE CASCADE;

			ALTER TABLE photos
			ADD CONSTRAINT fk_photos_pub
			FOREIGN KEY (pub_id) REFERENCES pubs(id) ON DELETE CASCADE;

			-- Value checks
			ALTER TABLE pub_opening_hours
			ADD CONSTRAINT chk_pub_opening_hours_weekday CHECK (weekday BETWEEN 0 AND 6);

			ALTER TABLE prices
			ADD CONSTRAINT chk_prices_amount CHECK (amount > 0);

			ALTER TABLE prices
			ADD CONSTRAINT chk_prices_counters
			CHECK (upvotes >= 0 AND downvotes >= 0 AND verification_count >= 0);

			-- Lookup indexes
			CREATE INDEX IF NOT EXISTS idx_prices_pub ON prices (pub_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_price_verifications_recent
			ON price_verifications (price_id, verified_at DESC);

			CREATE INDEX IF NOT EXISTS idx_reviews_pub_approved
			ON reviews (pub_id, created_at DESC) WHERE is_approved;

			CREATE INDEX IF NOT EXISTS idx_reviews_pending
			ON reviews (created_at) WHERE NOT is_approved;

			CREATE INDEX IF NOT EXISTS idx_photos_pub_approved
			ON photos (pub_id, created_at DESC) WHERE is_approved;

			CREATE INDEX IF NOT EXISTS idx_photos_pending
			ON photos (created_at) WHERE NOT is_approved;

			CREATE INDEX IF NOT EXISTS idx_reports_pending
			ON reports (created_at) WHERE status = ?;

			CREATE INDEX IF NOT EXISTS idx_reports_entity
			ON reports (entity_type, entity_id);

			CREATE INDEX IF NOT EXISTS idx_activity_logs_time
			ON activity_logs (activity_timestamp DESC, sequence DESC);

			CREATE INDEX IF NOT EXISTS idx_activity_logs_entity_time
			ON activity_logs (entity_type, entity_id, activity_timestamp DESC, sequence DESC);
		`, enum.ReportStatusPending).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add constraints and indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_activity_logs_entity_time;
			DROP INDEX IF EXISTS idx_activity_logs_time;
			DROP INDEX IF EXISTS idx_reports_entity;
			DROP INDEX IF EXISTS idx_reports_pending;
			DROP INDEX IF EXISTS idx_photos_pending;
			DROP INDEX IF EXISTS idx_photos_pub_approved;
			DROP INDEX IF EXISTS idx_reviews_pending;
			DROP INDEX IF EXISTS idx_reviews_pub_approved;
			DROP INDEX IF EXISTS idx_price_verifications_recent;
			DROP INDEX IF EXISTS idx_prices_pub;

			ALTER TABLE prices DROP CONSTRAINT IF EXISTS chk_prices_counters;
			ALTER TABLE prices DROP CONSTRAINT IF EXISTS chk_prices_amount;
			ALTER TABLE pub_opening_hours DROP CONSTRAINT IF EXISTS chk_pub_opening_hours_weekday;

			ALTER TABLE photos DROP CONSTRAINT IF EXISTS fk_photos_pub;
			ALTER TABLE reviews DROP CONSTRAINT IF EXISTS fk_reviews_pub;
			ALTER TABLE amenity_votes DROP CONSTRAINT IF EXISTS fk_amenity_votes_pub;
			ALTER TABLE price_verifications DROP CONSTRAINT IF EXISTS fk_price_verifications_price;
			ALTER TABLE price_votes DROP CONSTRAINT IF EXISTS fk_price_votes_price;
			ALTER TABLE prices DROP CONSTRAINT IF EXISTS fk_prices_pub;
			ALTER TABLE pub_amenities DROP CONSTRAINT IF EXISTS fk_pub_amenities_pub;
			ALTER TABLE pub_opening_hours DROP CONSTRAINT IF EXISTS fk_pub_opening_hours_pub;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop constraints and indexes: %w", err)
		}

		return nil
	})
}
