package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Transaction is one payment attempt, 1:1 with a ticket. PaymentDetails
// holds the provider's latest payload verbatim; every notification for the
// same transaction overwrites it (last write wins).
type Transaction struct {
	ID             uuid.UUID       `db:"id"`
	BuyerID        uuid.UUID       `db:"buyer_id"`
	TicketID       uuid.UUID       `db:"ticket_id"`
	PaymentDetails json.RawMessage `db:"payment_details"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Provider transaction statuses that matter to reconciliation. Anything
// outside settled/capture/pending is a terminal failure at the gateway.
const (
	ProviderSettlement = "settlement"
	ProviderCapture    = "capture"
	ProviderPending    = "pending"
)

// PaymentNotification is the inbound webhook body. StatusCode and
// GrossAmount stay strings: the signature is computed over their raw wire
// representation.
type PaymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`

	Raw json.RawMessage `json:"-"`
}

// Settles reports whether the notification confirms payment.
func (n *PaymentNotification) Settles() bool {
	return n.TransactionStatus == ProviderSettlement || n.TransactionStatus == ProviderCapture
}

// Fails reports whether the notification is a terminal gateway failure
// (deny, cancel, expire, or anything else that is not settled or pending).
func (n *PaymentNotification) Fails() bool {
	switch n.TransactionStatus {
	case ProviderSettlement, ProviderCapture, ProviderPending:
		return false
	}
	return true
}
