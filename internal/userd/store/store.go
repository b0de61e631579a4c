package store

import (
	"context"
	"errors"

	"github.com/northloop/userd/internal/userd/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ListParams controls pagination and ordering of user listings.
type ListParams struct {
	Page     int // 1-based
	PageSize int

	// OrderBy entries are pre-validated (column, direction) pairs; the
	// driver must never interpolate raw client input.
	OrderBy []Order
}

type Order struct {
	Column     string
	Descending bool
}

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement it, exposing sub-repositories per aggregate.
type Store interface {
	Users() Users
	Addresses() Addresses

	ApplyMigrations() error

	// WithTx executes fn within a transaction, rolling back when fn
	// returns an error and committing otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Users() Users
	Addresses() Addresses
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByUsername resolves the token subject back to a principal.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// Exists* back duplicate checks at registration; each covers one of
	// the unique identifier columns.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error)

	// Create inserts a new user (id is provided by the app via ULID).
	Create(ctx context.Context, u domain.User) error

	// Update rewrites the mutable profile fields and bumps updated_at.
	Update(ctx context.Context, u domain.User) error

	// UpdateStatus flips the account-state flag.
	UpdateStatus(ctx context.Context, userID string, status domain.UserStatus) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// Delete cascades to addresses (per schema).
	Delete(ctx context.Context, userID string) error

	// List returns one page of users plus the total count.
	List(ctx context.Context, p ListParams) ([]domain.User, int, error)
}

type Addresses interface {
	// ListByUser returns all addresses of a user.
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)

	// Upsert inserts or replaces the address with the same (user_id,
	// address_type) pair.
	Upsert(ctx context.Context, a domain.Address) error

	// DeleteByUser removes every address of a user.
	DeleteByUser(ctx context.Context, userID string) error
}
