package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/eventick/eventick/internal/core/domain"
)

type ChargeRequest struct {
	Bank        string
	AmountMinor int64
	OrderID     uuid.UUID
}

// ChargeResult carries the provider's charge response. Raw is persisted
// verbatim as the transaction's initial payment details.
type ChargeResult struct {
	OrderID           string
	TransactionStatus string
	Raw               json.RawMessage
}

// PaymentGateway is the synchronous outbound charge call. Failures are
// retryable from the buyer's side only; the purchase flow compensates and
// fails the request after a single attempt.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// EventCache is the Redis read-through layer for event detail. Tier
// mutations invalidate so the next read sees fresh availability.
type EventCache interface {
	// GetEvent returns the cached read model, or nil on a miss.
	GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.EventWithTiers, error)
	SetEvent(ctx context.Context, event *domain.EventWithTiers) error
	Invalidate(ctx context.Context, eventID uuid.UUID) error
}
