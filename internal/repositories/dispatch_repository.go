package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomward0606/StockSystem/internal/models"
)

type DispatchRepository struct {
	DB *pgxpool.Pool
}

func NewDispatchRepository(db *pgxpool.Pool) *DispatchRepository {
	return &DispatchRepository{DB: db}
}

// ApplyDispatch runs one dispatch transaction for an engineer.
//
// The whole cycle happens inside a single database transaction: the
// engineer's outstanding lines are locked with SELECT ... FOR UPDATE,
// remaining is recomputed under the lock, and the note, its lines and the
// quantity_sent increments commit as one unit. Concurrent dispatches for the
// same engineer serialize on the row locks, so two callers can never both
// spend the same remaining quantity.
//
// Commit rule: if any line was accepted for sending, everything (note, lines,
// increments, flag changes) commits and the outcome is Dispatched. Otherwise,
// if any flag changed, the flag changes alone commit (FlagsUpdated).
// Otherwise nothing is written (NoOp).
func (r *DispatchRepository) ApplyDispatch(ctx context.Context, engineerEmail, pickerName string, send map[int]int, flags map[int]bool) (*models.DispatchResult, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the outstanding set. No external call may happen between this
	// read and the commit below.
	rows, err := tx.Query(ctx, `
		SELECT `+orderLineColumns+`
		FROM parts_order_lines l
		JOIN parts_orders o ON o.id = l.order_id
		WHERE o.engineer_email = $1
		  AND l.quantity - l.quantity_sent > 0
		ORDER BY l.id ASC
		FOR UPDATE OF l`,
		engineerEmail,
	)
	if err != nil {
		return nil, err
	}
	outstanding, err := scanOrderLines(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	plan := planDispatch(outstanding, send, flags)

	switch plan.outcome() {
	case models.OutcomeNoOp:
		// Nothing qualified; commit nothing. This is user-facing
		// information, not an error.
		return &models.DispatchResult{
			Outcome: models.OutcomeNoOp,
			Message: "No items were dispatched and no changes were made.",
		}, nil

	case models.OutcomeFlagsUpdated:
		if err := applyFlagChanges(ctx, tx, plan.Flags); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return &models.DispatchResult{
			Outcome: models.OutcomeFlagsUpdated,
			Message: "Back order flags updated.",
		}, nil
	}

	// Dispatched: create the note lazily now that at least one line
	// qualified, then append a snapshot line per accepted send.
	var noteID int
	err = tx.QueryRow(ctx,
		`INSERT INTO dispatch_notes(engineer_email, picker_name)
		 VALUES($1, $2)
		 RETURNING id`,
		engineerEmail, pickerName,
	).Scan(&noteID)
	if err != nil {
		return nil, err
	}

	for _, s := range plan.Sends {
		_, err = tx.Exec(ctx,
			`INSERT INTO dispatch_lines(dispatch_note_id, part_number, description, quantity_sent)
			 VALUES($1, $2, $3, $4)`,
			noteID, s.Line.PartNumber, s.Line.Description, s.Qty,
		)
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx,
			`UPDATE parts_order_lines
			 SET quantity_sent = quantity_sent + $1
			 WHERE id = $2`,
			s.Qty, s.Line.ID,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := applyFlagChanges(ctx, tx, plan.Flags); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.DispatchResult{
		Outcome: models.OutcomeDispatched,
		NoteID:  noteID,
		Message: fmt.Sprintf("Dispatch recorded successfully. Picked by: %s", pickerName),
	}, nil
}

func applyFlagChanges(ctx context.Context, tx pgx.Tx, changes []plannedFlag) error {
	for _, c := range changes {
		_, err := tx.Exec(ctx,
			`UPDATE parts_order_lines SET back_order = $1 WHERE id = $2`,
			c.Flag, c.LineID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetNote fetches one dispatch note with its lines.
func (r *DispatchRepository) GetNote(ctx context.Context, noteID int) (*models.DispatchNote, error) {
	note := &models.DispatchNote{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, engineer_email, dispatch_date, picker_name
		 FROM dispatch_notes
		 WHERE id = $1`,
		noteID,
	).Scan(&note.ID, &note.EngineerEmail, &note.DispatchDate, &note.PickerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("dispatch note %d: %w", noteID, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, dispatch_note_id, part_number, description, quantity_sent
		 FROM dispatch_lines
		 WHERE dispatch_note_id = $1
		 ORDER BY id ASC`,
		noteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		line := &models.DispatchLine{}
		err := rows.Scan(&line.ID, &line.DispatchNoteID, &line.PartNumber, &line.Description, &line.QuantitySent)
		if err != nil {
			return nil, err
		}
		note.Lines = append(note.Lines, line)
	}

	return note, rows.Err()
}

// ListNotes returns all dispatch notes newest first, without lines.
func (r *DispatchRepository) ListNotes(ctx context.Context) ([]*models.DispatchNote, error) {
	return r.listNotes(ctx,
		`SELECT id, engineer_email, dispatch_date, picker_name
		 FROM dispatch_notes
		 ORDER BY dispatch_date DESC, id DESC`)
}

// ListNotesByEngineer returns one engineer's dispatch notes newest first.
func (r *DispatchRepository) ListNotesByEngineer(ctx context.Context, engineerEmail string) ([]*models.DispatchNote, error) {
	return r.listNotes(ctx,
		`SELECT id, engineer_email, dispatch_date, picker_name
		 FROM dispatch_notes
		 WHERE engineer_email = $1
		 ORDER BY dispatch_date DESC, id DESC`,
		engineerEmail)
}

func (r *DispatchRepository) listNotes(ctx context.Context, query string, args ...interface{}) ([]*models.DispatchNote, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.DispatchNote
	for rows.Next() {
		note := &models.DispatchNote{}
		err := rows.Scan(&note.ID, &note.EngineerEmail, &note.DispatchDate, &note.PickerName)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}
