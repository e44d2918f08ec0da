package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventick/eventick/internal/core/domain"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// GetEventWithTiers loads the event and all of its tiers. Sold counts read
// here are a snapshot; the purchase path never trusts them.
func (r *EventRepository) GetEventWithTiers(ctx context.Context, eventID uuid.UUID) (*domain.EventWithTiers, error) {
	eventQuery := `
	SELECT id, name, venue, starts_at, created_at
	FROM events
	WHERE id = $1
	`

	var event domain.Event
	if err := r.db.GetContext(ctx, &event, eventQuery, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	tiersQuery := `
	SELECT id, event_id, name, price_minor, capacity, sold, sale_deadline, status
	FROM ticket_tiers
	WHERE event_id = $1
	ORDER BY price_minor ASC
	`

	tiers := []domain.TicketTier{}
	if err := r.db.SelectContext(ctx, &tiers, tiersQuery, eventID); err != nil {
		return nil, err
	}

	return &domain.EventWithTiers{Event: event, Tiers: tiers}, nil
}
