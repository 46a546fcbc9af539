package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite/gen"
)

type resetTokensRepo struct {
	q *gen.Queries
}

func (r *resetTokensRepo) Create(ctx context.Context, t domain.ResetToken) error {
	return mapConstraint(r.q.CreateResetToken(ctx, gen.CreateResetTokenParams{
		TokenHash: t.TokenHash,
		AccountID: t.AccountID,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}))
}

func (r *resetTokensRepo) GetByHash(ctx context.Context, hash string) (domain.ResetToken, error) {
	row, err := r.q.GetResetTokenByHash(ctx, hash)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	return mapResetToken(row), nil
}

func (r *resetTokensRepo) Delete(ctx context.Context, hash string) error {
	return mapAffected(r.q.DeleteResetToken(ctx, hash))
}

func (r *resetTokensRepo) DeleteByAccount(ctx context.Context, accountID string) error {
	return r.q.DeleteResetTokensByAccount(ctx, accountID)
}

func (r *resetTokensRepo) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	return r.q.DeleteExpiredResetTokens(ctx, t)
}
