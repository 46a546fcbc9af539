package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q  *gen.Queries
	db gen.DBTX // for the dynamic ORDER BY in List
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.q.CountAccountsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	return mapConstraint(r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Role:         a.Role.String(),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}))
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate, now time.Time) error {
	return mapAffected(r.q.UpdateAccountProfile(ctx, gen.UpdateAccountProfileParams{
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		UpdatedAt: now,
		ID:        id,
	}))
}

func (r *accountsRepo) UpdateRole(ctx context.Context, id string, role domain.Role, now time.Time) error {
	return mapAffected(r.q.UpdateAccountRole(ctx, gen.UpdateAccountRoleParams{
		Role:      role.String(),
		UpdatedAt: now,
		ID:        id,
	}))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error {
	return mapAffected(r.q.UpdateAccountPasswordHash(ctx, gen.UpdateAccountPasswordHashParams{
		PasswordHash: hash,
		UpdatedAt:    now,
		ID:           id,
	}))
}

func (r *accountsRepo) Delete(ctx context.Context, id string) error {
	return mapAffected(r.q.DeleteAccount(ctx, id))
}

func (r *accountsRepo) Count(ctx context.Context) (int64, error) {
	return r.q.CountAccounts(ctx)
}

func (r *accountsRepo) List(ctx context.Context, req domain.PageRequest) ([]domain.Account, error) {
	req = req.Normalize()
	query := store.ListAccountsQuery(req, func(int) string { return "?" })

	rows, err := r.db.QueryContext(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var row gen.Account
		if err := rows.Scan(
			&row.ID,
			&row.Email,
			&row.PasswordHash,
			&row.FirstName,
			&row.LastName,
			&row.Role,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, mapAccount(row))
	}
	return out, rows.Err()
}
