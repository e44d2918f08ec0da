package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/ports"
)

type TicketRepository struct {
	db *sqlx.DB
}

func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
	INSERT INTO tickets (id, event_id, tier_id, buyer_id, barcode, price_minor, status, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID, ticket.EventID, ticket.TierID, ticket.BuyerID,
		ticket.Barcode, ticket.PriceMinor, ticket.Status, ticket.ExpiresAt, ticket.CreatedAt,
	)
	return err
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `
	SELECT id, event_id, tier_id, buyer_id, barcode, price_minor, status, expires_at, created_at
	FROM tickets
	WHERE id = $1
	`

	var ticket domain.Ticket
	if err := r.db.GetContext(ctx, &ticket, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepository) GetByBarcode(ctx context.Context, eventID uuid.UUID, barcode string) (*domain.Ticket, error) {
	query := `
	SELECT id, event_id, tier_id, buyer_id, barcode, price_minor, status, expires_at, created_at
	FROM tickets
	WHERE event_id = $1 AND barcode = $2
	`

	var ticket domain.Ticket
	if err := r.db.GetContext(ctx, &ticket, query, eventID, barcode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, filter ports.TicketFilter) ([]domain.Ticket, error) {
	if filter.Limit <= 0 {
		filter.Limit = 15
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.To.IsZero() {
		filter.To = time.Now()
	}
	if filter.From.IsZero() {
		filter.From = filter.To.AddDate(0, 0, -30)
	}

	query := `
	SELECT id, event_id, tier_id, buyer_id, barcode, price_minor, status, expires_at, created_at
	FROM tickets
	WHERE buyer_id = $1
		AND created_at BETWEEN $2 AND $3
	`
	args := []any{buyerID, filter.From, filter.To}

	if filter.Status != "" {
		query += ` AND status = $4`
		args = append(args, filter.Status)
	} else {
		query += ` AND status NOT IN ('expired', 'cancelled')`
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	tickets := []domain.Ticket{}
	if err := r.db.SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus) error {
	query := `UPDATE tickets SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrTicketNotFound
	}

	return nil
}

// TransitionStatus is the guarded state change: the current-status check and
// the write are one UPDATE, so a concurrent webhook and expiry sweep racing
// on the same ticket cannot both win.
func (r *TicketRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to domain.TicketStatus, allowedFrom ...domain.TicketStatus) (bool, error) {
	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}

	query := `UPDATE tickets SET status = $1 WHERE id = $2 AND status = ANY($3)`

	result, err := r.db.ExecContext(ctx, query, to, id, pq.Array(from))
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	return err
}

func (r *TicketRepository) FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]domain.Ticket, error) {
	query := `
	SELECT id, event_id, tier_id, buyer_id, barcode, price_minor, status, expires_at, created_at
	FROM tickets
	WHERE status = 'pending' AND expires_at < $1
	ORDER BY expires_at
	LIMIT $2
	`

	tickets := []domain.Ticket{}
	if err := r.db.SelectContext(ctx, &tickets, query, now, limit); err != nil {
		return nil, err
	}

	return tickets, nil
}
