// Package services orchestrates server record operations across
// storage and the change broadcast.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"budgetry/internal/amqp"
	"budgetry/internal/csvimport"
	"budgetry/internal/report"
	"budgetry/internal/storage"
)

// ErrInvalidCredentials means the login input or password was wrong.
// Deliberately one error for both cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Broadcaster delivers the advisory dataUpdated notification. Failures
// never fail the originating write.
type Broadcaster interface {
	DataUpdated(ctx context.Context, userID int64, source string)
}

// RecordService implements the server record operations.
type RecordService struct {
	repo         storage.Repository
	broadcasters []Broadcaster
	bcryptCost   int
}

func NewRecordService(repo storage.Repository, bcryptCost int, broadcasters ...Broadcaster) *RecordService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RecordService{
		repo:         repo,
		broadcasters: broadcasters,
		bcryptCost:   bcryptCost,
	}
}

// Signup hashes the password and creates the account.
// storage.ErrDuplicateUser passes through for the handler to map.
func (s *RecordService) Signup(ctx context.Context, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.repo.CreateUser(ctx, username, email, string(hash)); err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login matches the input against username or email and verifies the
// password.
func (s *RecordService) Login(ctx context.Context, userInput, password string) (storage.User, error) {
	user, err := s.repo.GetUserByUsernameOrEmail(ctx, userInput)
	if errors.Is(err, storage.ErrUserNotFound) {
		return storage.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return storage.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *RecordService) Transactions(ctx context.Context, userID int64) ([]storage.TransactionRow, error) {
	return s.repo.ListTransactions(ctx, userID)
}

// AddTransaction inserts one row and broadcasts the change.
func (s *RecordService) AddTransaction(ctx context.Context, row storage.TransactionRow) (int64, error) {
	id, err := s.repo.CreateTransaction(ctx, row)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	s.broadcast(ctx, row.UserID, "transaction")
	return id, nil
}

// ImportCSV parses uploaded CSV text and inserts every row for the
// user, then broadcasts once. Returns the number of rows imported.
func (s *RecordService) ImportCSV(ctx context.Context, userID int64, csvText string) (int, error) {
	records, err := csvimport.Parse(strings.NewReader(csvText))
	if err != nil {
		return 0, fmt.Errorf("parse csv: %w", err)
	}

	rows := make([]storage.TransactionRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, storage.TransactionRow{
			UserID:      userID,
			Type:        string(rec.Type),
			AmountCents: rec.Amount.Cents,
			Category:    rec.Category,
			Description: rec.Description,
			Date:        rec.Date,
		})
	}
	if err := s.repo.CreateTransactions(ctx, rows); err != nil {
		return 0, fmt.Errorf("insert csv transactions: %w", err)
	}
	s.broadcast(ctx, userID, "csv_upload")
	return len(rows), nil
}

// Report renders the transaction report for the user.
func (s *RecordService) Report(ctx context.Context, userID int64) (string, error) {
	transactions, err := s.repo.ListTransactions(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list transactions: %w", err)
	}
	totals, err := s.repo.CategoryTotals(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("category totals: %w", err)
	}
	return report.Generate(userID, transactions, totals, time.Now()), nil
}

func (s *RecordService) broadcast(ctx context.Context, userID int64, source string) {
	for _, b := range s.broadcasters {
		b.DataUpdated(ctx, userID, source)
	}
}

// AMQPBroadcaster bridges the broadcast to the message bus. Publish
// failures are logged and dropped.
type AMQPBroadcaster struct {
	client *amqp.Client
}

func NewAMQPBroadcaster(client *amqp.Client) *AMQPBroadcaster {
	return &AMQPBroadcaster{client: client}
}

func (b *AMQPBroadcaster) DataUpdated(ctx context.Context, userID int64, source string) {
	if b.client == nil {
		return
	}
	if err := b.client.PublishDataUpdated(ctx, userID, source); err != nil {
		slog.ErrorContext(ctx, "Failed to publish data updated message",
			"user_id", userID, "error", err)
	}
}
