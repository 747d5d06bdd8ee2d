package checkout

import (
	"strings"

	"github.com/google/uuid"
)

const orderNumberPrefix = "ORD-"

// newOrderNumber derives a short customer-facing reference from a fresh UUID:
// the prefix plus the first eight hex characters, uppercased.
func newOrderNumber() string {
	compact := strings.ReplaceAll(uuid.NewString(), "-", "")
	return orderNumberPrefix + strings.ToUpper(compact[:8])
}
