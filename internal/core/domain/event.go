package domain

import (
	"time"

	"github.com/google/uuid"
)

type TierStatus string

const (
	TierActive  TierStatus = "active"
	TierSoldOut TierStatus = "sold_out"
	TierClosed  TierStatus = "closed"
)

type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Venue     string    `db:"venue" json:"venue"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TicketTier is a priced ticket category within an event with its own
// capacity and sale deadline. The sold counter is owned by the inventory
// repository and only ever changes through its conditional updates.
type TicketTier struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	EventID      uuid.UUID  `db:"event_id" json:"event_id"`
	Name         string     `db:"name" json:"name"`
	PriceMinor   int64      `db:"price_minor" json:"price_minor"`
	Capacity     int        `db:"capacity" json:"capacity"`
	Sold         int        `db:"sold" json:"sold"`
	SaleDeadline time.Time  `db:"sale_deadline" json:"sale_deadline"`
	Status       TierStatus `db:"status" json:"status"`
}

// EventWithTiers is the buyer-facing read model: the event plus current
// tier availability. This is what the Redis read-through layer caches.
type EventWithTiers struct {
	Event Event        `json:"event"`
	Tiers []TicketTier `json:"tiers"`
}

func (t *TicketTier) Remaining() int {
	return t.Capacity - t.Sold
}

func (t *TicketTier) OnSale(now time.Time) bool {
	return t.Status == TierActive && now.Before(t.SaleDeadline)
}
