package models

import "time"

// DispatchNote records one fulfillment event for one engineer. Notes and
// their lines are created together in a single transaction and never change
// afterwards.
type DispatchNote struct {
	ID            int             `json:"id"`
	EngineerEmail string          `json:"engineer_email"`
	DispatchDate  time.Time       `json:"dispatch_date"`
	PickerName    string          `json:"picker_name"`
	Lines         []*DispatchLine `json:"lines,omitempty"`
}

// DispatchLine is a snapshot of what was sent. Part number and description
// are copied from the order line at dispatch time on purpose: there is no
// foreign key back to the order line, so deleting or editing the line later
// never rewrites history.
type DispatchLine struct {
	ID             int    `json:"id"`
	DispatchNoteID int    `json:"dispatch_note_id"`
	PartNumber     string `json:"part_number"`
	Description    string `json:"description"`
	QuantitySent   int    `json:"quantity_sent"`
}

// DispatchOutcome is the user-facing result of a dispatch transaction.
type DispatchOutcome string

const (
	OutcomeDispatched   DispatchOutcome = "dispatched"
	OutcomeFlagsUpdated DispatchOutcome = "flags_updated"
	OutcomeNoOp         DispatchOutcome = "no_op"
)

// DispatchRequest is one atomic batch of per-line send quantities and
// back-order flag updates for one engineer. JSON object keys are line ids.
type DispatchRequest struct {
	PickerName       string       `json:"picker_name"`
	CustomPickerName string       `json:"custom_picker_name"`
	Send             map[int]int  `json:"send"`
	BackOrders       map[int]bool `json:"back_orders"`
}

// DispatchResult reports which of the three outcomes the transaction took.
// NoteID is set only for OutcomeDispatched.
type DispatchResult struct {
	Outcome DispatchOutcome `json:"outcome"`
	NoteID  int             `json:"note_id,omitempty"`
	Message string          `json:"message"`
}
