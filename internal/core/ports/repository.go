package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/eventick/eventick/internal/core/domain"
)

// InventoryRepository owns the per-tier sold counter. Reserve and Release
// must each be a single conditional statement at the storage layer; no
// caller may read-then-write the counter.
type InventoryRepository interface {
	GetTier(ctx context.Context, eventID, tierID uuid.UUID) (*domain.TicketTier, error)

	// Reserve increments sold by one only while sold < capacity and the
	// tier is on sale. Returns domain.ErrSoldOut, domain.ErrSaleClosed or
	// domain.ErrTierNotFound when nothing was reserved.
	Reserve(ctx context.Context, eventID, tierID uuid.UUID) error

	// Release decrements sold by one, guarded by sold > 0. Callers are
	// responsible for calling it at most once per reservation.
	Release(ctx context.Context, eventID, tierID uuid.UUID) error
}

// EventRepository serves the buyer-facing event read model.
type EventRepository interface {
	// GetEventWithTiers returns the event and all of its tiers, or
	// domain.ErrEventNotFound.
	GetEventWithTiers(ctx context.Context, eventID uuid.UUID) (*domain.EventWithTiers, error)
}

// TicketFilter narrows buyer ticket listings. Zero values fall back to a
// thirty-day window ending now, page size 15.
type TicketFilter struct {
	Status domain.TicketStatus
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	GetByBarcode(ctx context.Context, eventID uuid.UUID, barcode string) (*domain.Ticket, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, filter TicketFilter) ([]domain.Ticket, error)

	// UpdateStatus sets the status unconditionally; setting the current
	// status again is a no-op in effect.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus) error

	// TransitionStatus sets the status only if the current status is one
	// of allowedFrom, as a single conditional statement. It reports
	// whether the transition happened, which is what keeps duplicate
	// webhook deliveries from releasing inventory twice.
	TransitionStatus(ctx context.Context, id uuid.UUID, to domain.TicketStatus, allowedFrom ...domain.TicketStatus) (bool, error)

	// Delete removes the ticket outright. Only used to roll back a
	// purchase that never reached purchased.
	Delete(ctx context.Context, id uuid.UUID) error

	FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]domain.Ticket, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	SavePaymentDetails(ctx context.Context, id uuid.UUID, details json.RawMessage) error

	// Delete removes the transaction outright; rollback only.
	Delete(ctx context.Context, id uuid.UUID) error
}
