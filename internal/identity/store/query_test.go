package store_test

import (
	"fmt"
	"testing"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/stretchr/testify/require"
)

func TestListAccountsQuery(t *testing.T) {
	dollar := func(n int) string { return fmt.Sprintf("$%d", n) }

	q := store.ListAccountsQuery(domain.PageRequest{Sort: domain.SortLastName, Desc: true}, dollar)
	require.Contains(t, q, "ORDER BY last_name DESC, id DESC")
	require.Contains(t, q, "LIMIT $1 OFFSET $2")

	q = store.ListAccountsQuery(domain.PageRequest{Sort: "password_hash; DROP TABLE accounts"}, func(int) string { return "?" })
	require.Contains(t, q, "ORDER BY created_at ASC, id ASC")
	require.NotContains(t, q, "DROP")
}
