package service

import (
	"context"

	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"go.uber.org/zap"
)

// DefaultAuditPageSize is the page size for audit log listings.
const DefaultAuditPageSize = 50

// AuditService exposes the audit log query surface. Writes happen through
// the owning services; this service only reads.
type AuditService struct {
	audit  AuditLog
	logger *zap.Logger
}

// NewAudit creates a new audit service.
func NewAudit(audit AuditLog, logger *zap.Logger) *AuditService {
	return &AuditService{
		audit:  audit,
		logger: logger.Named("audit_service"),
	}
}

// ListLogs pages through audit entries matching the filter, newest first.
// A nil cursor starts at the most recent entry.
func (s *AuditService) ListLogs(
	ctx context.Context, filter types.AuditFilter, cursor *types.AuditCursor, limit int,
) ([]*types.AuditLogEntry, *types.AuditCursor, error) {
	if limit <= 0 {
		limit = DefaultAuditPageSize
	}

	return s.audit.GetLogs(ctx, filter, cursor, limit)
}
