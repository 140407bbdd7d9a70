package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tallybook/tallybook/internal/models"
	redisclient "github.com/tallybook/tallybook/internal/redis"
)

const ownerListKeyPrefix = "transactions:owner:"

// TransactionRepository persists ledger entries. When a Redis client is
// provided the per-owner list view is cached and invalidated on every write;
// pass nil to run against PostgreSQL alone.
type TransactionRepository struct {
	db    *sql.DB
	cache *redisclient.ViewCache[[]models.Transaction]
}

func NewTransactionRepository(db *sql.DB, redisClient *goredis.Client) *TransactionRepository {
	repo := &TransactionRepository{db: db}
	if redisClient != nil {
		repo.cache = redisclient.NewViewCache[[]models.Transaction](redisClient, 0)
	}
	return repo
}

// Insert stores a transaction and returns its store-assigned id.
func (r *TransactionRepository) Insert(ctx context.Context, t *models.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (user_email, type, date, amount, category, category_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		t.UserEmail, t.Type, t.Date, t.Amount, t.Category, t.CategoryName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	r.invalidate(ctx, t.UserEmail)
	return id, nil
}

// ListByOwner returns the owner's transactions newest-date first, same-date
// ties broken by reverse insertion order. ISO dates sort lexicographically.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Transaction, error) {
	cacheKey := ownerListKeyPrefix + ownerEmail
	if r.cache != nil {
		if view, ok := r.cache.Get(ctx, cacheKey); ok {
			return *view, nil
		}
	}

	query := `
		SELECT id, user_email, type, date, amount, category, category_name
		FROM transactions
		WHERE user_email = $1
		ORDER BY date DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserEmail, &t.Type, &t.Date,
			&t.Amount, &t.Category, &t.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, &transactions)
	}
	return transactions, nil
}

// DeleteByIDAndOwner removes a transaction only if it exists and belongs to
// ownerEmail. Returns the number of rows deleted (0 or 1); a mismatched owner
// is indistinguishable from a missing row.
func (r *TransactionRepository) DeleteByIDAndOwner(ctx context.Context, id int64, ownerEmail string) (int64, error) {
	query := `DELETE FROM transactions WHERE id = $1 AND user_email = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", err)
	}

	if deleted > 0 {
		r.invalidate(ctx, ownerEmail)
	}
	return deleted, nil
}

func (r *TransactionRepository) invalidate(ctx context.Context, ownerEmail string) {
	if r.cache != nil {
		r.cache.Delete(ctx, ownerListKeyPrefix+ownerEmail)
	}
}
