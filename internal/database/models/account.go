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

// AccountModel handles database operations for user accounts.
type AccountModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAccount creates a new AccountModel instance.
func NewAccount(db *bun.DB, logger *zap.Logger) *AccountModel {
	return &AccountModel{
		db:     db,
		logger: logger.Named("db_account"),
	}
}

// GetAccount retrieves one user account by ID.
func (m *AccountModel) GetAccount(ctx context.Context, id string) (*types.UserAccount, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.UserAccount, error) {
		var account types.UserAccount

		err := m.db.NewSelect().
			Model(&account).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrAccountNotFound
			}

			return nil, fmt.Errorf("failed to get user account: %w", err)
		}

		return &account, nil
	})
}

// SaveAccount writes back a mutated account, guarded by its version.
func (m *AccountModel) SaveAccount(ctx context.Context, account *types.UserAccount) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		prev := account.Version
		account.Version = prev + 1

		res, err := m.db.NewUpdate().
			Model(account).
			WherePK().
			Where("version = ?", prev).
			Exec(ctx)
		if err != nil {
			account.Version = prev
			return fmt.Errorf("failed to save user account: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			account.Version = prev
			return fmt.Errorf("failed to save user account: %w", err)
		}

		if affected == 0 {
			account.Version = prev
			return types.ErrStaleRecord
		}

		return nil
	})
}

// GetSuspendedAccounts returns a batch of suspended accounts with IDs
// greater than afterID, in ID order. The sweep walks batches until the
// result comes back short.
func (m *AccountModel) GetSuspendedAccounts(
	ctx context.Context, afterID string, limit int,
) ([]*types.UserAccount, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.UserAccount, error) {
		var accounts []*types.UserAccount

		err := m.db.NewSelect().
			Model(&accounts).
			Where("status = ?", enum.AccountStatusSuspended).
			Where("id > ?", afterID).
			Order("id ASC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get suspended accounts: %w", err)
		}

		return accounts, nil
	})
}

// RestoreAccount atomically clears a suspension, guarded on both status
// and version so a racing manual restore turns the sweep's write into a
// no-op. Returns true if the account was restored by this call.
func (m *AccountModel) RestoreAccount(ctx context.Context, id string, version int64) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		res, err := m.db.NewUpdate().
			Model((*types.UserAccount)(nil)).
			Set("status = ?", enum.AccountStatusActive).
			Set("suspension_reason = NULL").
			Set("suspended_at = NULL").
			Set("suspended_until = NULL").
			Set("version = version + 1").
			Where("id = ?", id).
			Where("status = ?", enum.AccountStatusSuspended).
			Where("version = ?", version).
			Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to restore account: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("failed to restore account: %w", err)
		}

		return affected > 0, nil
	})
}
