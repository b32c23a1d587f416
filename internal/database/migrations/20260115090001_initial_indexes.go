package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Pending queue: only reported content is ever scanned
			CREATE INDEX IF NOT EXISTS idx_content_items_pending
			ON content_items (last_reported_at DESC NULLS LAST, id DESC)
			WHERE report_count > 0 AND is_report_pending = true;

			-- Archive listing
			CREATE INDEX IF NOT EXISTS idx_content_items_completed
			ON content_items (last_reported_at DESC NULLS LAST, id DESC)
			WHERE report_count > 0 AND is_report_pending = false;

			-- Expiry sweep walks suspended accounts in id order
			CREATE INDEX IF NOT EXISTS idx_user_accounts_suspended
			ON user_accounts (id ASC)
			WHERE status = 2;

			-- Audit log indexes
			CREATE INDEX IF NOT EXISTS idx_audit_logs_time
			ON audit_logs (timestamp DESC, sequence DESC);

			CREATE INDEX IF NOT EXISTS idx_audit_logs_target_time
			ON audit_logs (target_user_id, timestamp DESC, sequence DESC)
			WHERE target_user_id <> '';

			CREATE INDEX IF NOT EXISTS idx_audit_logs_actor_time
			ON audit_logs (actor_id, timestamp DESC, sequence DESC)
			WHERE actor_id <> '';
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_audit_logs_actor_time;
			DROP INDEX IF EXISTS idx_audit_logs_target_time;
			DROP INDEX IF EXISTS idx_audit_logs_time;
			DROP INDEX IF EXISTS idx_user_accounts_suspended;
			DROP INDEX IF EXISTS idx_content_items_completed;
			DROP INDEX IF EXISTS idx_content_items_pending;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
