package midtrans

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventick/eventick/internal/core/domain"
)

func TestVerifyNotification_Authentic(t *testing.T) {
	const serverKey = "SB-Mid-server-test"

	n := &domain.PaymentNotification{
		OrderID:           "4f2c9b1e-7a6d-4b3e-9c1a-2f8e5d7b6a4c",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "150000.00",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)

	assert.True(t, VerifyNotification(n, serverKey))
}

func TestVerifyNotification_RejectsTamperedAmount(t *testing.T) {
	const serverKey = "SB-Mid-server-test"

	n := &domain.PaymentNotification{
		OrderID:     "4f2c9b1e-7a6d-4b3e-9c1a-2f8e5d7b6a4c",
		StatusCode:  "200",
		GrossAmount: "150000.00",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)

	n.GrossAmount = "1.00"

	assert.False(t, VerifyNotification(n, serverKey))
}

func TestVerifyNotification_RejectsWrongServerKey(t *testing.T) {
	n := &domain.PaymentNotification{
		OrderID:     "order-1",
		StatusCode:  "200",
		GrossAmount: "5000.00",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, "key-a")

	assert.False(t, VerifyNotification(n, "key-b"))
}

func TestSignature_IsHexSha512(t *testing.T) {
	sig := Signature("order-1", "200", "5000.00", "key")

	assert.Len(t, sig, 128)
	assert.Regexp(t, "^[0-9a-f]+$", sig)
}
