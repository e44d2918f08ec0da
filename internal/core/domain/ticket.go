package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketPending   TicketStatus = "pending"
	TicketPurchased TicketStatus = "purchased"
	TicketExpired   TicketStatus = "expired"
	TicketCancelled TicketStatus = "cancelled"
	TicketCheckedIn TicketStatus = "checked_in"
)

// Failed reports whether the status is a terminal payment-failure state.
// A ticket already in one of these states must never release inventory again.
func (s TicketStatus) Failed() bool {
	return s == TicketExpired || s == TicketCancelled
}

// Ticket is one purchase attempt. Price is snapshotted from the tier at
// reservation time and never re-read, so later tier price changes do not
// affect tickets already in flight.
type Ticket struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	EventID    uuid.UUID    `db:"event_id" json:"event_id"`
	TierID     uuid.UUID    `db:"tier_id" json:"tier_id"`
	BuyerID    uuid.UUID    `db:"buyer_id" json:"buyer_id"`
	Barcode    string       `db:"barcode" json:"barcode"`
	PriceMinor int64        `db:"price_minor" json:"price_minor"`
	Status     TicketStatus `db:"status" json:"status"`
	ExpiresAt  time.Time    `db:"expires_at" json:"expires_at"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}

// NewBarcode generates a collision-resistant barcode: 8 random bytes from
// crypto/rand plus the creation timestamp in nanoseconds.
func NewBarcode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("barcode entropy: %w", err)
	}
	return fmt.Sprintf("%s-%d", strings.ToUpper(hex.EncodeToString(buf)), time.Now().UnixNano()), nil
}
