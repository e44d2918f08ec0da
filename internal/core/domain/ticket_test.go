package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBarcode_Format(t *testing.T) {
	barcode, err := NewBarcode()

	assert.NoError(t, err)
	assert.Regexp(t, `^[0-9A-F]{16}-\d+$`, barcode)
}

func TestNewBarcode_NoImmediateCollision(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		barcode, err := NewBarcode()
		assert.NoError(t, err)
		assert.False(t, seen[barcode], "duplicate barcode %s", barcode)
		seen[barcode] = true
	}
}

func TestTicketStatus_Failed(t *testing.T) {
	assert.True(t, TicketExpired.Failed())
	assert.True(t, TicketCancelled.Failed())

	assert.False(t, TicketPending.Failed())
	assert.False(t, TicketPurchased.Failed())
	assert.False(t, TicketCheckedIn.Failed())
}
