package store

import (
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

var sortColumns = map[domain.SortField]string{
	domain.SortCreatedAt: "created_at",
	domain.SortEmail:     "email",
	domain.SortFirstName: "first_name",
	domain.SortLastName:  "last_name",
}

// ListAccountsQuery renders the page query for req. Column and direction come
// from a fixed whitelist so nothing user supplied reaches the SQL text.
// placeholder renders the driver's bind marker for the n-th argument; LIMIT is
// argument 1 and OFFSET argument 2.
func ListAccountsQuery(req domain.PageRequest, placeholder func(n int) string) string {
	col, ok := sortColumns[req.Sort]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if req.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(
		`SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
FROM accounts
ORDER BY %s %s, id %s
LIMIT %s OFFSET %s`,
		col, dir, dir, placeholder(1), placeholder(2),
	)
}
