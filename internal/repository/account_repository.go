package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/pkg/database"
)

// AccountRepository provides read access to customer accounts using pgx.
// The checkout flow only ever reads accounts; account management lives
// elsewhere.
type AccountRepository struct {
	pool database.Querier
}

// NewAccountRepository creates a new AccountRepository with the given pool.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// NewAccountRepositoryWithPool creates a new AccountRepository with a custom
// querier. This is primarily used for testing.
func NewAccountRepositoryWithPool(pool database.Querier) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByEmail retrieves the account for a session email, matched
// case-insensitively. Returns nil, nil when no account exists: a session
// cookie alone does not make a customer.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT id, first_name, last_name, email, phone, address, city, state, country, postal_code
		FROM accounts WHERE lower(email) = lower($1)`

	var account model.Account
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.Phone,
		&account.Address,
		&account.City,
		&account.State,
		&account.Country,
		&account.PostalCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &account, nil
}
