package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomward0606/StockSystem/internal/models"
)

type HiddenPartRepository struct {
	DB *pgxpool.Pool
}

func NewHiddenPartRepository(db *pgxpool.Pool) *HiddenPartRepository {
	return &HiddenPartRepository{DB: db}
}

// Hide adds a part number to the deny-list. Keys are upper-cased so lookups
// are case-insensitive.
func (r *HiddenPartRepository) Hide(ctx context.Context, part *models.HiddenPart) error {
	part.PartNumber = strings.ToUpper(strings.TrimSpace(part.PartNumber))
	if part.PartNumber == "" {
		return models.NewValidationError("part_number", "part number is required")
	}

	tag, err := r.DB.Exec(ctx,
		`INSERT INTO hidden_parts(part_number, reason, created_by)
		 VALUES($1, NULLIF($2, ''), NULLIF($3, ''))
		 ON CONFLICT (part_number) DO NOTHING`,
		part.PartNumber, part.Reason, part.CreatedBy,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s is already hidden: %w", part.PartNumber, models.ErrDuplicateKey)
	}
	return nil
}

// Unhide removes a part number from the deny-list.
func (r *HiddenPartRepository) Unhide(ctx context.Context, partNumber string) error {
	partNumber = strings.ToUpper(strings.TrimSpace(partNumber))
	if partNumber == "" {
		return models.NewValidationError("part_number", "part number is required")
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM hidden_parts WHERE part_number = $1`, partNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s was not hidden: %w", partNumber, models.ErrNotFound)
	}
	return nil
}

// List returns all hidden parts, newest first.
func (r *HiddenPartRepository) List(ctx context.Context) ([]*models.HiddenPart, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT part_number, COALESCE(reason, ''), COALESCE(created_by, ''), created_at
		 FROM hidden_parts
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*models.HiddenPart
	for rows.Next() {
		part := &models.HiddenPart{}
		if err := rows.Scan(&part.PartNumber, &part.Reason, &part.CreatedBy, &part.CreatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return parts, rows.Err()
}

// HiddenSet returns the deny-listed part numbers as a lookup set.
func (r *HiddenPartRepository) HiddenSet(ctx context.Context) (map[string]bool, error) {
	rows, err := r.DB.Query(ctx, `SELECT part_number FROM hidden_parts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hidden := make(map[string]bool)
	for rows.Next() {
		var pn string
		if err := rows.Scan(&pn); err != nil {
			return nil, err
		}
		hidden[pn] = true
	}

	return hidden, rows.Err()
}

// Get fetches one hidden part.
func (r *HiddenPartRepository) Get(ctx context.Context, partNumber string) (*models.HiddenPart, error) {
	partNumber = strings.ToUpper(strings.TrimSpace(partNumber))

	part := &models.HiddenPart{}
	err := r.DB.QueryRow(ctx,
		`SELECT part_number, COALESCE(reason, ''), COALESCE(created_by, ''), created_at
		 FROM hidden_parts
		 WHERE part_number = $1`,
		partNumber,
	).Scan(&part.PartNumber, &part.Reason, &part.CreatedBy, &part.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("hidden part %s: %w", partNumber, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return part, nil
}
