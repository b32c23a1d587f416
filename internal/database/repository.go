package database

import (
	"github.com/pobredward/inschoolz-moderation/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	content *models.ContentModel
	account *models.AccountModel
	audit   *models.AuditModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		content: models.NewContent(db, logger),
		account: models.NewAccount(db, logger),
		audit:   models.NewAudit(db, logger),
	}
}

// Content returns the content model repository.
func (r *Repository) Content() *models.ContentModel {
	return r.content
}

// Account returns the account model repository.
func (r *Repository) Account() *models.AccountModel {
	return r.account
}

// Audit returns the audit model repository.
func (r *Repository) Audit() *models.AuditModel {
	return r.audit
}
