// Package identifier allocates row keys and the human-readable references
// printed on orders and payments. Row keys are UUIDs, so concurrent callers
// can never collide; the readable references keep the classic
// prefix-plus-timestamp format but carry a random suffix because two of them
// can be minted within the same clock second.
package identifier

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const timestampLayout = "20060102150405"

// NewID allocates a primary key. Safe under concurrent callers.
func NewID() uuid.UUID {
	return uuid.New()
}

// OrderNumber derives a unique, human-readable order number from t.
func OrderNumber(t time.Time) string {
	return ref("ORD", t)
}

// TransactionRef derives a unique payment transaction reference from t.
func TransactionRef(t time.Time) string {
	return ref("TXN", t)
}

func ref(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, t.Format(timestampLayout), uuid.NewString()[:8])
}
