package models

import "time"

// PartsOrder is one intake event for one engineer. An order only exists
// through its lines: it is created when lines are first submitted and deleted
// when its last line is removed.
type PartsOrder struct {
	ID            int          `json:"id"`
	EngineerEmail string       `json:"engineer_email"`
	OrderDate     time.Time    `json:"order_date"`
	Status        string       `json:"status,omitempty"`
	Lines         []*OrderLine `json:"lines,omitempty"`
}

// OrderLine is one requested part within an order. quantity_sent only ever
// grows, and never past quantity.
type OrderLine struct {
	ID            int       `json:"id"`
	OrderID       int       `json:"order_id"`
	PartNumber    string    `json:"part_number"`
	Description   string    `json:"description"`
	Quantity      int       `json:"quantity"`
	QuantitySent  int       `json:"quantity_sent"`
	BackOrder     bool      `json:"back_order"`
	EngineerEmail string    `json:"engineer_email,omitempty"` // joined from parts_orders
	OrderDate     time.Time `json:"order_date,omitempty"`     // joined from parts_orders
}

// Remaining is the quantity still to send, clamped at zero.
func (l *OrderLine) Remaining() int {
	r := l.Quantity - l.QuantitySent
	if r < 0 {
		return 0
	}
	return r
}

// OutstandingSummary is one row of the per-engineer outstanding totals list.
type OutstandingSummary struct {
	EngineerEmail    string `json:"engineer_email"`
	OutstandingTotal int    `json:"outstanding_total"`
}

type CreateOrderLineRequest struct {
	PartNumber  string `json:"part_number"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type CreateOrderRequest struct {
	EngineerEmail string                   `json:"engineer_email"`
	Status        string                   `json:"status"`
	Lines         []CreateOrderLineRequest `json:"lines"`
}
