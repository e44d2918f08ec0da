package midtrans

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"

	"github.com/eventick/eventick/internal/core/domain"
)

// Signature computes the notification signature the provider sends:
// sha512 over the concatenation of order id, status code, gross amount and
// the merchant server key, hex encoded.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifyNotification recomputes the expected signature from the raw wire
// fields and compares in constant time. A mismatch means the notification
// did not come from the gateway and must cause zero state changes.
func VerifyNotification(n *domain.PaymentNotification, serverKey string) bool {
	expected := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	return hmac.Equal([]byte(expected), []byte(n.SignatureKey))
}
