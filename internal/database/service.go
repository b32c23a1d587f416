package database

import (
	"github.com/pobredward/inschoolz-moderation/internal/database/service"
	"github.com/pobredward/inschoolz-moderation/internal/notify"
	"github.com/pobredward/inschoolz-moderation/internal/setup/config"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	report     *service.ReportService
	sanction   *service.SanctionService
	suspension *service.SuspensionService
	audit      *service.AuditService
}

// NewService creates a new service instance with all services.
func NewService(
	repository *Repository, moderation *config.Moderation,
	notifier notify.Notifier, logger *zap.Logger,
) *Service {
	contentModel := repository.Content()
	accountModel := repository.Account()
	auditModel := repository.Audit()

	policy := service.SanctionPolicy{
		AllowWarnRemoved: moderation.AllowWarnRemoved,
	}

	return &Service{
		report:     service.NewReport(contentModel, logger),
		sanction:   service.NewSanction(contentModel, accountModel, auditModel, policy, logger),
		suspension: service.NewSuspension(accountModel, auditModel, notifier, moderation.SweepBatchSize, logger),
		audit:      service.NewAudit(auditModel, logger),
	}
}

// Report returns the report service.
func (s *Service) Report() *service.ReportService {
	return s.report
}

// Sanction returns the sanction service.
func (s *Service) Sanction() *service.SanctionService {
	return s.sanction
}

// Suspension returns the suspension service.
func (s *Service) Suspension() *service.SuspensionService {
	return s.suspension
}

// Audit returns the audit service.
func (s *Service) Audit() *service.AuditService {
	return s.audit
}
