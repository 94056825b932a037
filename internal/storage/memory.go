package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used by tests and by the
// server's memory backend.
type MemoryRepository struct {
	mu           sync.Mutex
	users        []User
	transactions []TransactionRow
	nextUserID   int64
	nextTxID     int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextUserID: 1, nextTxID: 1}
}

func (r *MemoryRepository) CreateUser(_ context.Context, username, email, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return 0, ErrDuplicateUser
		}
	}
	u := User{
		ID:           r.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.nextUserID++
	r.users = append(r.users, u)
	return u.ID, nil
}

func (r *MemoryRepository) GetUserByUsernameOrEmail(_ context.Context, input string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == input || u.Email == input {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepository) ListTransactions(_ context.Context, userID int64) ([]TransactionRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []TransactionRow
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateTransaction(_ context.Context, row TransactionRow) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(row), nil
}

func (r *MemoryRepository) CreateTransactions(_ context.Context, rows []TransactionRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		r.insert(row)
	}
	return nil
}

func (r *MemoryRepository) insert(row TransactionRow) int64 {
	row.ID = r.nextTxID
	r.nextTxID++
	r.transactions = append(r.transactions, row)
	return row.ID
}

func (r *MemoryRepository) CategoryTotals(_ context.Context, userID int64) ([]CategoryTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type key struct{ typ, category string }
	totals := make(map[key]int64)
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		totals[key{t.Type, t.Category}] += t.AmountCents
	}

	out := make([]CategoryTotal, 0, len(totals))
	for k, cents := range totals {
		out = append(out, CategoryTotal{Type: k.typ, Category: k.category, TotalCents: cents})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return strings.Compare(out[i].Type, out[j].Type) < 0
		}
		return strings.Compare(out[i].Category, out[j].Category) < 0
	})
	return out, nil
}
