package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pobredward/inschoolz-moderation/internal/database/dbretry"
	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ContentModel handles database operations for reportable content items.
type ContentModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewContent creates a new ContentModel instance.
func NewContent(db *bun.DB, logger *zap.Logger) *ContentModel {
	return &ContentModel{
		db:     db,
		logger: logger.Named("db_content"),
	}
}

// GetContent retrieves one content item by its composite key.
func (m *ContentModel) GetContent(
	ctx context.Context, id string, contentType enum.ContentType,
) (*types.ContentItem, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.ContentItem, error) {
		var item types.ContentItem

		err := m.db.NewSelect().
			Model(&item).
			Where("id = ?", id).
			Where("content_type = ?", contentType).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrContentNotFound
			}

			return nil, fmt.Errorf("failed to get content item: %w", err)
		}

		return &item, nil
	})
}

// SaveContent writes back a mutated content item. The write is guarded by
// the item's version; a concurrent mutation surfaces as ErrStaleRecord and
// the caller re-reads and retries.
func (m *ContentModel) SaveContent(ctx context.Context, item *types.ContentItem) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		prev := item.Version
		item.Version = prev + 1

		res, err := m.db.NewUpdate().
			Model(item).
			WherePK().
			Where("version = ?", prev).
			Exec(ctx)
		if err != nil {
			item.Version = prev
			return fmt.Errorf("failed to save content item: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			item.Version = prev
			return fmt.Errorf("failed to save content item: %w", err)
		}

		if affected == 0 {
			item.Version = prev
			return types.ErrStaleRecord
		}

		return nil
	})
}

// ListPendingReports returns all content with open reports, posts and
// comments merged, most recently reported first. Items that somehow lack a
// report timestamp sort last.
func (m *ContentModel) ListPendingReports(ctx context.Context) ([]*types.ContentItem, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ContentItem, error) {
		var items []*types.ContentItem

		err := m.db.NewSelect().
			Model(&items).
			Where("report_count > 0").
			Where("is_report_pending = TRUE").
			OrderExpr("last_reported_at DESC NULLS LAST").
			Order("id DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list pending reports: %w", err)
		}

		return items, nil
	})
}

// ListCompletedReports returns archived reports using keyset pagination on
// (last_reported_at, id) for a stable walk of the archive.
func (m *ContentModel) ListCompletedReports(
	ctx context.Context, cursor *types.ReportCursor, limit int,
) ([]*types.ContentItem, *types.ReportCursor, error) {
	var (
		items      []*types.ContentItem
		nextCursor *types.ReportCursor
	)

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		query := m.db.NewSelect().
			Model(&items).
			Where("report_count > 0").
			Where("is_report_pending = FALSE")

		if cursor != nil {
			// Rows without a timestamp sort NULLS LAST; a zero cursor
			// timestamp marks a position inside that tail.
			if cursor.LastReportedAt.IsZero() {
				query = query.Where("last_reported_at IS NULL").Where("id <= ?", cursor.ID)
			} else {
				query = query.Where(
					"((last_reported_at, id) <= (?, ?) OR last_reported_at IS NULL)",
					cursor.LastReportedAt, cursor.ID,
				)
			}
		}

		err := query.
			OrderExpr("last_reported_at DESC NULLS LAST").
			Order("id DESC").
			Limit(limit + 1). // Get one extra to determine if there are more results
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to list completed reports: %w", err)
		}

		if len(items) > limit {
			extra := items[limit]
			nextCursor = &types.ReportCursor{ID: extra.ID}

			if extra.LastReportedAt != nil {
				nextCursor.LastReportedAt = *extra.LastReportedAt
			}

			items = items[:limit]
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return items, nextCursor, nil
}
