package orders

import "github.com/wheelmaster/tireshop/internal/domain"

// OrderRequest carries the already coerced fields of an order form.
type OrderRequest struct {
	ProductID    int64  `validate:"gte=1"`
	Quantity     int    `validate:"gte=1,lte=2147483647"` // orders.quantity is a 32-bit column
	CustomerName string `validate:"required"`
	Phone        string `validate:"required"`
	Email        string `validate:"required"`
}

// Status classifies the outcome of PlaceOrder.
type Status string

const (
	StatusPlaced            Status = "placed"
	StatusInvalid           Status = "invalid"
	StatusSchemaViolation   Status = "schema_violation"
	StatusConnectionFailure Status = "connection_failure"
)

// Result is returned instead of an error so callers can pick a customer
// facing message per status. Err is for operators only.
type Result struct {
	Status Status
	Order  *domain.Order
	Err    error
}

// OK reports whether the order row was stored.
func (r Result) OK() bool {
	return r.Status == StatusPlaced
}
