package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"go.uber.org/zap"
)

// DefaultReportPageSize is the page size for archived report listings.
const DefaultReportPageSize = 20

// ReportService aggregates reports against content items and exposes the
// moderation queues.
type ReportService struct {
	content ContentStore
	logger  *zap.Logger
}

// NewReport creates a new report service.
func NewReport(content ContentStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		content: content,
		logger:  logger.Named("report_service"),
	}
}

// SubmitReport files a report against a content item and returns the item
// to the pending queue. Repeated reports from the same reporter are
// accepted on purpose; they bump the item's queue position.
func (s *ReportService) SubmitReport(
	ctx context.Context, contentID string, contentType enum.ContentType,
	reporterID string, reasons []string, customReason string,
) (*types.ContentItem, error) {
	item, err := s.content.GetContent(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item.Reports = append(item.Reports, &types.Report{
		ReporterID:   reporterID,
		Reasons:      reasons,
		CustomReason: customReason,
		CreatedAt:    now,
	})
	item.ReportCount++
	item.IsReportPending = true
	item.LastReportedAt = &now
	// A fresh report on an archived item returns it to the pending queue.
	item.CompletedAt = nil

	if err := s.content.SaveContent(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to submit report: %w", err)
	}

	s.logger.Debug("Filed report",
		zap.String("contentID", contentID),
		zap.String("contentType", contentType.String()),
		zap.String("reporterID", reporterID),
		zap.Int("reportCount", item.ReportCount))

	return item, nil
}

// ListPendingReports returns all content awaiting review, posts and
// comments merged, most recently reported first.
func (s *ReportService) ListPendingReports(ctx context.Context) ([]*types.ContentItem, error) {
	return s.content.ListPendingReports(ctx)
}

// ListCompletedReports pages through the report archive with a keyset
// cursor. A nil cursor starts at the newest entry.
func (s *ReportService) ListCompletedReports(
	ctx context.Context, cursor *types.ReportCursor, limit int,
) ([]*types.ContentItem, *types.ReportCursor, error) {
	if limit <= 0 {
		limit = DefaultReportPageSize
	}

	return s.content.ListCompletedReports(ctx, cursor, limit)
}
