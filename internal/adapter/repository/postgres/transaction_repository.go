package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventick/eventick/internal/core/domain"
)

type TransactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	query := `
	INSERT INTO transactions (id, buyer_id, ticket_id, payment_details, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	details := txn.PaymentDetails
	if details == nil {
		details = json.RawMessage(`{}`)
	}

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.BuyerID, txn.TicketID, details, txn.CreatedAt, txn.UpdatedAt,
	)
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
	SELECT id, buyer_id, ticket_id, payment_details, created_at, updated_at
	FROM transactions
	WHERE id = $1
	`

	var txn domain.Transaction
	if err := r.db.GetContext(ctx, &txn, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return &txn, nil
}

// SavePaymentDetails overwrites the provider payload wholesale. Later
// notifications for the same transaction supersede earlier ones.
func (r *TransactionRepository) SavePaymentDetails(ctx context.Context, id uuid.UUID, details json.RawMessage) error {
	query := `UPDATE transactions SET payment_details = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, details, time.Now(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}
