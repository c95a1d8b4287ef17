package orders

import (
	"strconv"
	"time"
)

// orderNumberPrefix is the fixed human-readable prefix on every order number.
const orderNumberPrefix = "ORD-"

// NewOrderNumber produces a time-derived order number. The nanosecond suffix
// makes collisions inside one process practically impossible; the unique
// index on orders.order_number is the backstop, and a collision there rolls
// the whole creation back.
func NewOrderNumber() string {
	return orderNumberPrefix + strconv.FormatInt(time.Now().UnixNano(), 10)
}
