package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/repositories"
)

// ReportService renders dispatch notes as printable PDFs.
type ReportService struct {
	DispatchRepo *repositories.DispatchRepository
	OrderRepo    *repositories.OrderRepository
}

func NewReportService(dispatchRepo *repositories.DispatchRepository, orderRepo *repositories.OrderRepository) *ReportService {
	return &ReportService{DispatchRepo: dispatchRepo, OrderRepo: orderRepo}
}

// DispatchNotePDF renders one dispatch note, including the engineer's
// current back-order section, so the printed copy matches the email.
func (s *ReportService) DispatchNotePDF(ctx context.Context, noteID int) ([]byte, error) {
	note, err := s.DispatchRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	backOrders, err := s.OrderRepo.BackOrders(ctx, note.EngineerEmail)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Servitech Stock System - Dispatch Note", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Note #%d - %s", note.ID, note.DispatchDate.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Dispatch info box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Dispatch Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Engineer: %s", note.EngineerEmail), "LB", 0, "L", false, 0, "")
	picker := note.PickerName
	if picker == "" {
		picker = "Unknown"
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Picked by: %s", picker), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items sent
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Items Sent", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(50, 7, "Part Number", "1", 0, "C", true, 0, "")
	pdf.CellFormat(110, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Qty Sent", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range note.Lines {
		desc := line.Description
		if len(desc) > 55 {
			desc = desc[:52] + "..."
		}
		pdf.CellFormat(50, 6, line.PartNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(110, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", line.QuantitySent), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Back orders still open for this engineer
	var open []*models.OrderLine
	for _, bo := range backOrders {
		if bo.Remaining() > 0 {
			open = append(open, bo)
		}
	}
	if len(open) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Still on Back Order", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(50, 7, "Part Number", "1", 0, "C", true, 0, "")
		pdf.CellFormat(80, 7, "Description", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Remaining", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Ordered", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, bo := range open {
			desc := bo.Description
			if len(desc) > 40 {
				desc = desc[:37] + "..."
			}
			pdf.CellFormat(50, 6, bo.PartNumber, "1", 0, "C", false, 0, "")
			pdf.CellFormat(80, 6, desc, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", bo.Remaining()), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, bo.OrderDate.Format("02-Jan-2006"), "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
