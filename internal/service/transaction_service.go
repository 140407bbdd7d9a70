package service

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/tallybook/tallybook/internal/events"
	"github.com/tallybook/tallybook/internal/models"
)

// TransactionStore is the persistence layer consumed by TransactionService.
type TransactionStore interface {
	Insert(ctx context.Context, t *models.Transaction) (int64, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.Transaction, error)
	DeleteByIDAndOwner(ctx context.Context, id int64, ownerEmail string) (int64, error)
}

// CreateTransactionInput carries the fields of a new ledger entry.
// CategoryName falls back to Category when blank.
type CreateTransactionInput struct {
	Type         string
	Date         string
	Amount       float64
	Category     string
	CategoryName string
}

// TransactionService owns validation, defaulting and ownership scoping for
// ledger entries. The events publisher is optional.
type TransactionService struct {
	store     TransactionStore
	publisher *events.Publisher
}

func NewTransactionService(store TransactionStore, publisher *events.Publisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// Create validates the input, applies defaults and inserts the transaction
// for ownerEmail. Returns the store-assigned id.
func (s *TransactionService) Create(ctx context.Context, ownerEmail string, in CreateTransactionInput) (int64, error) {
	if err := validateInput(in); err != nil {
		return 0, err
	}
	if in.CategoryName == "" {
		in.CategoryName = in.Category
	}

	t := &models.Transaction{
		UserEmail:    ownerEmail,
		Type:         in.Type,
		Date:         in.Date,
		Amount:       in.Amount,
		Category:     in.Category,
		CategoryName: in.CategoryName,
	}
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return 0, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
			TransactionID: id,
			OwnerEmail:    ownerEmail,
			Type:          t.Type,
			Amount:        t.Amount,
			Category:      t.Category,
		}); err != nil {
			log.Printf("Failed to publish transaction.created event: %v", err)
		}
	}

	return id, nil
}

// List returns all of ownerEmail's transactions newest-date first. No
// transactions is an empty result, not an error.
func (s *TransactionService) List(ctx context.Context, ownerEmail string) ([]models.Transaction, error) {
	return s.store.ListByOwner(ctx, ownerEmail)
}

// Delete removes the transaction if it exists and belongs to ownerEmail.
// A row owned by someone else reports not-found, never its existence.
func (s *TransactionService) Delete(ctx context.Context, id int64, ownerEmail string) error {
	deleted, err := s.store.DeleteByIDAndOwner(ctx, id, ownerEmail)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTransactionNotFound
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionDeleted, events.TransactionDeletedEvent{
			TransactionID: id,
			OwnerEmail:    ownerEmail,
		}); err != nil {
			log.Printf("Failed to publish transaction.deleted event: %v", err)
		}
	}

	return nil
}

func validateInput(in CreateTransactionInput) error {
	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		return fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	}
	if in.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount < 0 {
		return fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidInput)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	return nil
}
