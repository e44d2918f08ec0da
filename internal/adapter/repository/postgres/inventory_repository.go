package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventick/eventick/internal/core/domain"
)

type InventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetTier(ctx context.Context, eventID, tierID uuid.UUID) (*domain.TicketTier, error) {
	query := `
	SELECT id, event_id, name, price_minor, capacity, sold, sale_deadline, status
	FROM ticket_tiers
	WHERE id = $1 AND event_id = $2
	`

	var tier domain.TicketTier
	if err := r.db.GetContext(ctx, &tier, query, tierID, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTierNotFound
		}
		return nil, err
	}

	return &tier, nil
}

// Reserve takes one unit of tier capacity. The capacity check and the
// increment are a single UPDATE, so concurrent buyers racing for the last
// unit cannot both match the predicate. The tier flips to sold_out in the
// same statement when the last unit goes.
func (r *InventoryRepository) Reserve(ctx context.Context, eventID, tierID uuid.UUID) error {
	query := `
	UPDATE ticket_tiers
	SET sold = sold + 1,
		status = CASE WHEN sold + 1 >= capacity THEN 'sold_out' ELSE status END
	WHERE id = $1 AND event_id = $2
		AND status = 'active'
		AND sale_deadline > NOW()
		AND sold < capacity
	`

	result, err := r.db.ExecContext(ctx, query, tierID, eventID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// The predicate did not match; probe once to tell the caller why.
		return r.explainRejection(ctx, eventID, tierID)
	}

	return nil
}

func (r *InventoryRepository) explainRejection(ctx context.Context, eventID, tierID uuid.UUID) error {
	tier, err := r.GetTier(ctx, eventID, tierID)
	if err != nil {
		return err
	}

	if tier.Sold >= tier.Capacity || tier.Status == domain.TierSoldOut {
		return domain.ErrSoldOut
	}
	return domain.ErrSaleClosed
}

// Release gives one unit back, guarded by sold > 0 so the counter can never
// go negative. A previously sold_out tier reopens in the same statement.
func (r *InventoryRepository) Release(ctx context.Context, eventID, tierID uuid.UUID) error {
	query := `
	UPDATE ticket_tiers
	SET sold = sold - 1,
		status = CASE WHEN status = 'sold_out' THEN 'active' ELSE status END
	WHERE id = $1 AND event_id = $2 AND sold > 0
	`

	result, err := r.db.ExecContext(ctx, query, tierID, eventID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("release had no effect on tier %s of event %s", tierID, eventID)
	}

	return nil
}
