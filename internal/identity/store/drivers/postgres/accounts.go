package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
)

const accountColumns = `id, email, password_hash, first_name, last_name, role, created_at, updated_at`

type accountsRepo struct {
	db DBTX
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Role.String(), a.CreatedAt, a.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate, now time.Time) error {
	return mapAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET email = $1, first_name = $2, last_name = $3, updated_at = $4 WHERE id = $5`,
		p.Email, p.FirstName, p.LastName, now, id,
	))
}

func (r *accountsRepo) UpdateRole(ctx context.Context, id string, role domain.Role, now time.Time) error {
	return mapAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET role = $1, updated_at = $2 WHERE id = $3`,
		role.String(), now, id,
	))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error {
	return mapAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, now, id,
	))
}

func (r *accountsRepo) Delete(ctx context.Context, id string) error {
	return mapAffected(r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id))
}

func (r *accountsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *accountsRepo) List(ctx context.Context, req domain.PageRequest) ([]domain.Account, error) {
	req = req.Normalize()
	query := store.ListAccountsQuery(req, func(n int) string { return fmt.Sprintf("$%d", n) })

	rows, err := r.db.QueryContext(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
