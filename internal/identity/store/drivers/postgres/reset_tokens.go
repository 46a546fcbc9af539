package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

type resetTokensRepo struct {
	db DBTX
}

func (r *resetTokensRepo) Create(ctx context.Context, t domain.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (token_hash, account_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		t.TokenHash, t.AccountID, t.ExpiresAt, t.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *resetTokensRepo) GetByHash(ctx context.Context, hash string) (domain.ResetToken, error) {
	var t domain.ResetToken
	err := r.db.QueryRowContext(ctx,
		`SELECT token_hash, account_id, expires_at, created_at FROM reset_tokens WHERE token_hash = $1`,
		hash,
	).Scan(&t.TokenHash, &t.AccountID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	t.ExpiresAt = t.ExpiresAt.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func (r *resetTokensRepo) Delete(ctx context.Context, hash string) error {
	return mapAffected(r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE token_hash = $1`, hash))
}

func (r *resetTokensRepo) DeleteByAccount(ctx context.Context, accountID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *resetTokensRepo) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE expires_at < $1`, t)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
