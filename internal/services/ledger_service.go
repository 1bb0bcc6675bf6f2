package services

import (
	"context"
	"log"
	"strings"

	"github.com/tomward0606/StockSystem/internal/cache"
	"github.com/tomward0606/StockSystem/internal/metrics"
	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/repositories"
)

// LedgerService owns the fulfillment reconciliation rules: outstanding and
// back-order views, dispatch transactions, and order line lifecycle.
type LedgerService struct {
	OrderRepo    *repositories.OrderRepository
	DispatchRepo *repositories.DispatchRepository

	notifier *NotificationService
}

func NewLedgerService(orderRepo *repositories.OrderRepository, dispatchRepo *repositories.DispatchRepository) *LedgerService {
	return &LedgerService{
		OrderRepo:    orderRepo,
		DispatchRepo: dispatchRepo,
	}
}

// SetNotificationService wires the dispatch email sender. Optional; without
// it dispatches commit silently.
func (s *LedgerService) SetNotificationService(n *NotificationService) {
	s.notifier = n
}

// Outstanding returns all lines with remaining > 0 for an engineer,
// regardless of back-order flag, in submission order.
func (s *LedgerService) Outstanding(ctx context.Context, engineerEmail string) ([]*models.OrderLine, error) {
	return s.OrderRepo.Outstanding(ctx, engineerEmail)
}

// BackOrders returns only lines explicitly flagged AND still outstanding.
func (s *LedgerService) BackOrders(ctx context.Context, engineerEmail string) ([]*models.OrderLine, error) {
	return s.OrderRepo.BackOrders(ctx, engineerEmail)
}

// CreateOrder records a new intake event. An order cannot be created empty.
func (s *LedgerService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.PartsOrder, error) {
	email := strings.TrimSpace(req.EngineerEmail)
	if email == "" {
		return nil, models.NewValidationError("engineer_email", "engineer email is required")
	}
	if len(req.Lines) == 0 {
		return nil, models.NewValidationError("lines", "an order needs at least one line")
	}

	order := &models.PartsOrder{
		EngineerEmail: email,
		Status:        strings.TrimSpace(req.Status),
	}
	for _, lr := range req.Lines {
		if strings.TrimSpace(lr.PartNumber) == "" {
			return nil, models.NewValidationError("part_number", "part number is required on every line")
		}
		if lr.Quantity < 0 {
			return nil, models.NewValidationError("quantity", "quantity cannot be negative")
		}
		order.Lines = append(order.Lines, &models.OrderLine{
			PartNumber:  strings.TrimSpace(lr.PartNumber),
			Description: strings.TrimSpace(lr.Description),
			Quantity:    lr.Quantity,
		})
	}

	if err := s.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	cache.InvalidateSummary(ctx)
	return order, nil
}

// ApplyDispatch validates the picker, runs the dispatch transaction and, on
// a dispatched outcome, sends the notification email after commit.
func (s *LedgerService) ApplyDispatch(ctx context.Context, engineerEmail string, req *models.DispatchRequest) (*models.DispatchResult, error) {
	picker, err := resolvePickerName(req.PickerName, req.CustomPickerName)
	if err != nil {
		return nil, err
	}

	result, err := s.DispatchRepo.ApplyDispatch(ctx, engineerEmail, picker, req.Send, req.BackOrders)
	if err != nil {
		return nil, err
	}

	metrics.DispatchTransactionsTotal.WithLabelValues(string(result.Outcome)).Inc()

	if result.Outcome != models.OutcomeNoOp {
		cache.InvalidateSummary(ctx)
	}

	// The email happens strictly after commit so a mail failure never rolls
	// back a recorded dispatch.
	if result.Outcome == models.OutcomeDispatched && s.notifier != nil {
		go func(noteID int) {
			if err := s.notifier.SendDispatchNote(context.Background(), noteID); err != nil {
				log.Printf("[Ledger] Dispatch %d recorded but email failed: %v", noteID, err)
			}
		}(result.NoteID)
	}

	return result, nil
}

// RemoveLine deletes an order line (cascading to the parent order when it
// was the last one) and returns the engineer email the caller should go
// back to. fallbackEmail is used when the line was already gone.
func (s *LedgerService) RemoveLine(ctx context.Context, lineID int, fallbackEmail string) (string, error) {
	email, err := s.OrderRepo.RemoveLine(ctx, lineID)
	if err != nil {
		return fallbackEmail, err
	}

	cache.InvalidateSummary(ctx)
	if email == "" {
		email = fallbackEmail
	}
	return email, nil
}

// Summary lists per-engineer outstanding totals, cached briefly in Redis.
func (s *LedgerService) Summary(ctx context.Context) ([]*models.OutstandingSummary, error) {
	if cached := cache.GetSummary(ctx); cached != nil {
		return cached, nil
	}

	summary, err := s.OrderRepo.OutstandingSummary(ctx)
	if err != nil {
		return nil, err
	}

	cache.SetSummary(ctx, summary)
	return summary, nil
}

// ListDispatches returns every dispatch note, newest first.
func (s *LedgerService) ListDispatches(ctx context.Context) ([]*models.DispatchNote, error) {
	return s.DispatchRepo.ListNotes(ctx)
}

// DispatchesForEngineer returns one engineer's notes, newest first.
func (s *LedgerService) DispatchesForEngineer(ctx context.Context, engineerEmail string) ([]*models.DispatchNote, error) {
	return s.DispatchRepo.ListNotesByEngineer(ctx, engineerEmail)
}

// GetDispatchNote fetches a note with its lines.
func (s *LedgerService) GetDispatchNote(ctx context.Context, noteID int) (*models.DispatchNote, error) {
	return s.DispatchRepo.GetNote(ctx, noteID)
}

// resolvePickerName mirrors the dispatch form: a fixed choice set plus an
// "other" option with free text.
func resolvePickerName(picker, custom string) (string, error) {
	picker = strings.TrimSpace(picker)
	custom = strings.TrimSpace(custom)

	switch {
	case picker == "other" && custom != "":
		return custom, nil
	case picker != "" && picker != "other":
		return picker, nil
	default:
		return "", models.NewValidationError("picker_name", "please select or enter a picker name")
	}
}
