package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateUUIDString() string {
	return uuid.New().String()
}

// ==================== RECEIPTS ====================

// GenerateOrderReceipt derives the gateway receipt for a local order row.
func GenerateOrderReceipt(orderID int64) string {
	return fmt.Sprintf("order_rcpt_%d", orderID)
}

// GenerateBookingReceipt derives the gateway receipt for a booking. Receipts
// are capped at 40 characters by the gateway; a UUID string is 36.
func GenerateBookingReceipt(reference uuid.UUID) string {
	return reference.String()
}
