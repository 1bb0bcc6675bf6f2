package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomward0606/StockSystem/internal/models"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderLineColumns = `
	l.id, l.order_id, l.part_number, l.description, l.quantity, l.quantity_sent, l.back_order,
	o.engineer_email, o.order_date
`

func scanOrderLines(rows pgx.Rows) ([]*models.OrderLine, error) {
	var lines []*models.OrderLine
	for rows.Next() {
		line := &models.OrderLine{}
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.PartNumber,
			&line.Description,
			&line.Quantity,
			&line.QuantitySent,
			&line.BackOrder,
			&line.EngineerEmail,
			&line.OrderDate,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Outstanding returns all of the engineer's lines with remaining > 0, in
// submission order (line id ascending).
func (r *OrderRepository) Outstanding(ctx context.Context, engineerEmail string) ([]*models.OrderLine, error) {
	query := `
		SELECT ` + orderLineColumns + `
		FROM parts_order_lines l
		JOIN parts_orders o ON o.id = l.order_id
		WHERE o.engineer_email = $1
		  AND l.quantity - l.quantity_sent > 0
		ORDER BY l.id ASC
	`

	rows, err := r.DB.Query(ctx, query, engineerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderLines(rows)
}

// BackOrders returns the engineer's outstanding lines that are also flagged
// back_order. Fully sent lines are excluded even when the flag is still set.
func (r *OrderRepository) BackOrders(ctx context.Context, engineerEmail string) ([]*models.OrderLine, error) {
	query := `
		SELECT ` + orderLineColumns + `
		FROM parts_order_lines l
		JOIN parts_orders o ON o.id = l.order_id
		WHERE o.engineer_email = $1
		  AND l.back_order IS TRUE
		  AND l.quantity - l.quantity_sent > 0
		ORDER BY l.id ASC
	`

	rows, err := r.DB.Query(ctx, query, engineerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderLines(rows)
}

// OutstandingSummary totals remaining quantity per engineer, busiest first.
func (r *OrderRepository) OutstandingSummary(ctx context.Context) ([]*models.OutstandingSummary, error) {
	query := `
		SELECT o.engineer_email,
		       COALESCE(SUM(l.quantity - l.quantity_sent), 0) AS outstanding_total
		FROM parts_orders o
		JOIN parts_order_lines l ON l.order_id = o.id
		GROUP BY o.engineer_email
		ORDER BY outstanding_total DESC, o.engineer_email ASC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []*models.OutstandingSummary
	for rows.Next() {
		row := &models.OutstandingSummary{}
		if err := rows.Scan(&row.EngineerEmail, &row.OutstandingTotal); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}

	return summary, rows.Err()
}

// CreateOrder inserts an order together with its lines in one transaction.
// Orders only come into existence through line submission, so an empty line
// set is rejected upstream.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.PartsOrder) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status interface{}
	if order.Status != "" {
		status = order.Status
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO parts_orders(engineer_email, status)
		 VALUES($1, $2)
		 RETURNING id, order_date`,
		order.EngineerEmail, status,
	).Scan(&order.ID, &order.OrderDate)
	if err != nil {
		return err
	}

	for _, line := range order.Lines {
		err = tx.QueryRow(ctx,
			`INSERT INTO parts_order_lines(order_id, part_number, description, quantity)
			 VALUES($1, $2, $3, $4)
			 RETURNING id, quantity_sent, back_order`,
			order.ID, line.PartNumber, line.Description, line.Quantity,
		).Scan(&line.ID, &line.QuantitySent, &line.BackOrder)
		if err != nil {
			return err
		}
		line.OrderID = order.ID
		line.EngineerEmail = order.EngineerEmail
		line.OrderDate = order.OrderDate
	}

	return tx.Commit(ctx)
}

// RemoveLine deletes a line unconditionally, regardless of how much was
// already sent; dispatch history keeps its own copies. When the parent order
// is left with no lines it is deleted in the same transaction. Returns the
// engineer email of the affected order.
func (r *OrderRepository) RemoveLine(ctx context.Context, lineID int) (string, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var orderID int
	var engineerEmail string
	err = tx.QueryRow(ctx,
		`SELECT l.order_id, o.engineer_email
		 FROM parts_order_lines l
		 JOIN parts_orders o ON o.id = l.order_id
		 WHERE l.id = $1
		 FOR UPDATE OF l`,
		lineID,
	).Scan(&orderID, &engineerEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("order line %d: %w", lineID, models.ErrNotFound)
	}
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM parts_order_lines WHERE id = $1`, lineID); err != nil {
		return "", err
	}

	// Cascade: an order with zero lines has no reason to exist.
	var remaining int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM parts_order_lines WHERE order_id = $1`, orderID,
	).Scan(&remaining)
	if err != nil {
		return "", err
	}
	if remaining == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM parts_orders WHERE id = $1`, orderID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return engineerEmail, nil
}

// GetLine fetches one line with its order context.
func (r *OrderRepository) GetLine(ctx context.Context, lineID int) (*models.OrderLine, error) {
	query := `
		SELECT ` + orderLineColumns + `
		FROM parts_order_lines l
		JOIN parts_orders o ON o.id = l.order_id
		WHERE l.id = $1
	`

	line := &models.OrderLine{}
	err := r.DB.QueryRow(ctx, query, lineID).Scan(
		&line.ID,
		&line.OrderID,
		&line.PartNumber,
		&line.Description,
		&line.Quantity,
		&line.QuantitySent,
		&line.BackOrder,
		&line.EngineerEmail,
		&line.OrderDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order line %d: %w", lineID, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return line, nil
}
