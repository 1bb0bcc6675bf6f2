package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/tomward0606/StockSystem/internal/mail"
	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/repositories"
)

// NotificationService turns a committed dispatch note into the engineer's
// notification: a structured summary plus plain-text and HTML renderings.
type NotificationService struct {
	Mailer       mail.Provider
	OrderRepo    *repositories.OrderRepository
	DispatchRepo *repositories.DispatchRepository
}

func NewNotificationService(mailer mail.Provider, orderRepo *repositories.OrderRepository, dispatchRepo *repositories.DispatchRepository) *NotificationService {
	return &NotificationService{
		Mailer:       mailer,
		OrderRepo:    orderRepo,
		DispatchRepo: dispatchRepo,
	}
}

// BuildSummary assembles the notification payload from a note and the
// engineer's current back-ordered lines. Pure; no I/O.
//
// Lines whose computed remaining is zero are excluded from the back-order
// section even when the flag is still set: the flag is not auto-cleared on
// full fulfillment, so it alone is not trusted.
func BuildSummary(note *models.DispatchNote, backOrders []*models.OrderLine, generatedAt time.Time) *models.DispatchSummary {
	summary := &models.DispatchSummary{
		NoteID:        note.ID,
		EngineerEmail: note.EngineerEmail,
		PickerName:    note.PickerName,
		DispatchDate:  note.DispatchDate,
		GeneratedAt:   generatedAt,
	}

	for _, line := range note.Lines {
		summary.Sent = append(summary.Sent, models.SentItem{
			PartNumber:   line.PartNumber,
			Description:  line.Description,
			QuantitySent: line.QuantitySent,
		})
	}

	for _, bo := range backOrders {
		remaining := bo.Remaining()
		if remaining <= 0 {
			continue
		}
		summary.BackOrders = append(summary.BackOrders, models.BackOrderItem{
			PartNumber:  bo.PartNumber,
			Description: bo.Description,
			Remaining:   remaining,
			OrderDate:   bo.OrderDate,
		})
	}

	return summary
}

// Payload builds the notification summary for an existing dispatch note.
func (s *NotificationService) Payload(ctx context.Context, noteID int) (*models.DispatchSummary, error) {
	note, err := s.DispatchRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	backOrders, err := s.OrderRepo.BackOrders(ctx, note.EngineerEmail)
	if err != nil {
		return nil, err
	}

	return BuildSummary(note, backOrders, time.Now().UTC()), nil
}

// SendDispatchNote emails the engineer the sent/back-order summary for one
// dispatch note.
func (s *NotificationService) SendDispatchNote(ctx context.Context, noteID int) error {
	summary, err := s.Payload(ctx, noteID)
	if err != nil {
		return err
	}

	return s.Mailer.Send(
		summary.EngineerEmail,
		Subject(summary),
		TextBody(summary),
		HTMLBody(summary),
	)
}

// Subject is "Dispatch Note - 02 Jan 2006".
func Subject(summary *models.DispatchSummary) string {
	return "Dispatch Note - " + summary.DispatchDate.Format("02 Jan 2006")
}

// TextBody renders the plain-text notification.
func TextBody(summary *models.DispatchSummary) string {
	var b strings.Builder

	b.WriteString("Hello,\n\n")
	b.WriteString("Your dispatch has been processed.\n")
	if summary.PickerName != "" {
		fmt.Fprintf(&b, "Picker: %s\n", summary.PickerName)
	}
	b.WriteString("\nItems Sent:\n")
	if len(summary.Sent) > 0 {
		for _, item := range summary.Sent {
			fmt.Fprintf(&b, "- %s (%s): %d\n", item.PartNumber, item.Description, item.QuantitySent)
		}
	} else {
		b.WriteString("- (No items recorded on this dispatch)\n")
	}

	if len(summary.BackOrders) > 0 {
		b.WriteString("\nItems Still on Back Order:\n")
		for _, item := range summary.BackOrders {
			fmt.Fprintf(&b, "- %s (%s): %d (Ordered %s)\n",
				item.PartNumber, item.Description, item.Remaining,
				item.OrderDate.Format("02 Jan 2006"))
		}
	}

	b.WriteString("\nThank you,\nServitech Stock System\n")
	return b.String()
}

// HTMLBody renders the HTML notification for richer mail clients.
func HTMLBody(summary *models.DispatchSummary) string {
	esc := template.HTMLEscapeString

	var b strings.Builder

	b.WriteString(`<div style="font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; color:#111; line-height:1.4">`)
	fmt.Fprintf(&b, `<h2 style="margin:0 0 8px 0">Dispatch Note - %s</h2>`, summary.DispatchDate.Format("02 Jan 2006"))
	fmt.Fprintf(&b, `<p style="margin:0 0 12px 0"><strong>Engineer:</strong> %s<br>`, esc(summary.EngineerEmail))
	picker := summary.PickerName
	if picker == "" {
		picker = "Unknown"
	}
	fmt.Fprintf(&b, `<strong>Picked by:</strong> %s<br>`, esc(picker))
	fmt.Fprintf(&b, `<span style="color:#666">Generated at %s</span></p>`, summary.GeneratedAt.Format("02 Jan 2006 15:04 UTC"))

	b.WriteString(`<h3 style="margin:16px 0 8px 0; font-size:18px">Items Sent</h3>`)
	b.WriteString(`<table width="100%" cellpadding="8" cellspacing="0" border="1" style="border-collapse:collapse; border-color:#ddd">`)
	b.WriteString(`<thead style="background:#f8f9fa"><tr><th align="left">Part Number</th><th align="left">Description</th><th align="right">Quantity Sent</th></tr></thead><tbody>`)
	if len(summary.Sent) > 0 {
		for _, item := range summary.Sent {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td style="text-align:right">%d</td></tr>`,
				esc(item.PartNumber), esc(item.Description), item.QuantitySent)
		}
	} else {
		b.WriteString(`<tr><td colspan="3" style="text-align:center; color:#666">(No items on this dispatch)</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)

	b.WriteString(`<h3 style="margin:16px 0 8px 0; font-size:18px">Still on Back Order</h3>`)
	b.WriteString(`<table width="100%" cellpadding="8" cellspacing="0" border="1" style="border-collapse:collapse; border-color:#ddd">`)
	b.WriteString(`<thead style="background:#f8f9fa"><tr><th align="left">Part Number</th><th align="left">Description</th><th align="right">Qty Remaining</th><th align="left">Order Date</th></tr></thead><tbody>`)
	if len(summary.BackOrders) > 0 {
		for _, item := range summary.BackOrders {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td style="text-align:right">%d</td><td>%s</td></tr>`,
				esc(item.PartNumber), esc(item.Description), item.Remaining,
				item.OrderDate.Format("02 Jan 2006"))
		}
	} else {
		b.WriteString(`<tr><td colspan="4" style="text-align:center; color:#666">No items on back order.</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)

	b.WriteString(`<p style="margin-top:16px">Thank you,<br>Servitech Stock System</p></div>`)
	return b.String()
}
