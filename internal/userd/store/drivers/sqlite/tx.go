package sqlite

import (
	"database/sql"

	"github.com/northloop/userd/internal/userd/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Users() store.Users         { return &usersRepo{db: t.tx} }
func (t *txStore) Addresses() store.Addresses { return &addressesRepo{db: t.tx} }
