// Package storage holds the durable server-side repositories.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicateUser means the username or email is already registered.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrUserNotFound means no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// User is a registered account row.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// TransactionRow is a durable transaction record. Amounts are cents;
// the HTTP layer converts on the way out.
type TransactionRow struct {
	ID          int64
	UserID      int64
	Type        string
	AmountCents int64
	Category    string
	Description string
	Date        string
}

// CategoryTotal is a per-type, per-category sum used by the report.
type CategoryTotal struct {
	Type       string
	Category   string
	TotalCents int64
}

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	GetUserByUsernameOrEmail(ctx context.Context, input string) (User, error)
}

// TransactionRepository persists transaction rows per user.
type TransactionRepository interface {
	ListTransactions(ctx context.Context, userID int64) ([]TransactionRow, error)
	CreateTransaction(ctx context.Context, row TransactionRow) (int64, error)
	CreateTransactions(ctx context.Context, rows []TransactionRow) error
	CategoryTotals(ctx context.Context, userID int64) ([]CategoryTotal, error)
}

// Repository is the full server-side persistence surface.
type Repository interface {
	UserRepository
	TransactionRepository
}
