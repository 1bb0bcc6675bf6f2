package models

import "time"

// DispatchSummary is the content contract of a dispatch notification: what
// was sent on one note plus what the engineer is still waiting on. The
// delivery transport (mail) consumes this; it carries no markup itself.
type DispatchSummary struct {
	NoteID        int             `json:"note_id"`
	EngineerEmail string          `json:"engineer_email"`
	PickerName    string          `json:"picker_name"`
	DispatchDate  time.Time       `json:"dispatch_date"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Sent          []SentItem      `json:"sent"`
	BackOrders    []BackOrderItem `json:"back_orders"`
}

// SentItem is one dispatched line as recorded on the note.
type SentItem struct {
	PartNumber   string `json:"part_number"`
	Description  string `json:"description"`
	QuantitySent int    `json:"quantity_sent"`
}

// BackOrderItem is one line still awaiting stock, with remaining computed at
// build time and the originating order date for context.
type BackOrderItem struct {
	PartNumber  string    `json:"part_number"`
	Description string    `json:"description"`
	Remaining   int       `json:"remaining"`
	OrderDate   time.Time `json:"order_date"`
}
