package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on orders, reviews, and
// promotion validity windows.
const DateLayout = "2006-01-02"

// NewEntityID returns a prefixed millisecond-timestamp identifier, e.g.
// "o1769020800000". Identifiers for products, orders, promotions, and
// reviews all follow this convention.
func NewEntityID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixMilli())
}
