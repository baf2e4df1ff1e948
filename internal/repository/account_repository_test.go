package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_GetByEmail_Found(t *testing.T) {
	var capturedSQL string
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedSQL = sql
			return &mockRow{
				scanFn: func(dest ...any) error {
					*(dest[0].(*string)) = "acc-1"
					*(dest[1].(*string)) = "Ada"
					*(dest[2].(*string)) = "Lovelace"
					*(dest[3].(*string)) = "ada@example.com"
					*(dest[4].(*string)) = "+44 20 0000 0000"
					*(dest[5].(*string)) = "12 Analytical Row"
					*(dest[6].(*string)) = "London"
					*(dest[7].(*string)) = ""
					*(dest[8].(*string)) = "United Kingdom"
					*(dest[9].(*string)) = "N1 9GU"
					return nil
				},
			}
		},
	}

	repo := NewAccountRepositoryWithPool(mock)
	account, err := repo.GetByEmail(context.Background(), "Ada@Example.com")

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "Ada Lovelace", account.DisplayName())
	assert.Contains(t, capturedSQL, "lower(email) = lower($1)")
}

func TestAccountRepository_GetByEmail_NotFound(t *testing.T) {
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &mockRow{scanFn: func(...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := NewAccountRepositoryWithPool(mock)
	account, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	require.NoError(t, err, "a session without an account is not an error")
	assert.Nil(t, account)
}

func TestAccountRepository_GetByEmail_QueryError(t *testing.T) {
	mock := &mockPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &mockRow{scanFn: func(...any) error { return errors.New("connection refused") }}
		},
	}

	repo := NewAccountRepositoryWithPool(mock)
	account, err := repo.GetByEmail(context.Background(), "ada@example.com")

	require.Error(t, err)
	assert.Nil(t, account)
}
