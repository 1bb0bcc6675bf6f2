package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomward0606/StockSystem/internal/models"
)

func testNote() *models.DispatchNote {
	return &models.DispatchNote{
		ID:            42,
		EngineerEmail: "eng@servitech.co.uk",
		PickerName:    "Dave",
		DispatchDate:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Lines: []*models.DispatchLine{
			{PartNumber: "AB-100", Description: "Compressor valve", QuantitySent: 2},
			{PartNumber: "CD-200", Description: "Door seal", QuantitySent: 1},
		},
	}
}

func TestBuildSummarySentItems(t *testing.T) {
	now := time.Now().UTC()
	summary := BuildSummary(testNote(), nil, now)

	assert.Equal(t, 42, summary.NoteID)
	assert.Equal(t, "eng@servitech.co.uk", summary.EngineerEmail)
	assert.Equal(t, "Dave", summary.PickerName)
	assert.Equal(t, now, summary.GeneratedAt)

	require.Len(t, summary.Sent, 2)
	assert.Equal(t, "AB-100", summary.Sent[0].PartNumber)
	assert.Equal(t, 2, summary.Sent[0].QuantitySent)
	assert.Empty(t, summary.BackOrders)
}

func TestBuildSummaryFilterFulfilledBackOrders(t *testing.T) {
	ordered := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	backOrders := []*models.OrderLine{
		{PartNumber: "AB-100", Description: "Compressor valve", Quantity: 5, QuantitySent: 2, BackOrder: true, OrderDate: ordered},
		// flag still set but fully sent; must not appear
		{PartNumber: "EF-300", Description: "Fan motor", Quantity: 3, QuantitySent: 3, BackOrder: true, OrderDate: ordered},
		// over-recorded, clamps to zero remaining; must not appear
		{PartNumber: "GH-400", Description: "Thermostat", Quantity: 1, QuantitySent: 2, BackOrder: true, OrderDate: ordered},
	}

	summary := BuildSummary(testNote(), backOrders, time.Now())

	require.Len(t, summary.BackOrders, 1)
	assert.Equal(t, "AB-100", summary.BackOrders[0].PartNumber)
	assert.Equal(t, 3, summary.BackOrders[0].Remaining)
	assert.Equal(t, ordered, summary.BackOrders[0].OrderDate)
}

func TestBuildSummaryPreservesOrder(t *testing.T) {
	ordered := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	backOrders := []*models.OrderLine{
		{PartNumber: "ZZ-9", Quantity: 1, BackOrder: true, OrderDate: ordered},
		{PartNumber: "AA-1", Quantity: 1, BackOrder: true, OrderDate: ordered},
	}

	summary := BuildSummary(testNote(), backOrders, time.Now())

	require.Len(t, summary.BackOrders, 2)
	assert.Equal(t, "ZZ-9", summary.BackOrders[0].PartNumber)
	assert.Equal(t, "AA-1", summary.BackOrders[1].PartNumber)
}

func TestSubjectUsesDispatchDate(t *testing.T) {
	summary := BuildSummary(testNote(), nil, time.Now())
	assert.Equal(t, "Dispatch Note - 14 Mar 2026", Subject(summary))
}

func TestTextBodyContent(t *testing.T) {
	ordered := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	backOrders := []*models.OrderLine{
		{PartNumber: "AB-100", Description: "Compressor valve", Quantity: 5, QuantitySent: 2, BackOrder: true, OrderDate: ordered},
	}
	summary := BuildSummary(testNote(), backOrders, time.Now())

	body := TextBody(summary)
	assert.Contains(t, body, "Picker: Dave")
	assert.Contains(t, body, "- AB-100 (Compressor valve): 2")
	assert.Contains(t, body, "Items Still on Back Order:")
	assert.Contains(t, body, "- AB-100 (Compressor valve): 3 (Ordered 01 Feb 2026)")
}

func TestTextBodyNoBackOrderSectionWhenEmpty(t *testing.T) {
	summary := BuildSummary(testNote(), nil, time.Now())
	assert.NotContains(t, TextBody(summary), "Back Order")
}

func TestHTMLBodyEscapesFields(t *testing.T) {
	note := testNote()
	note.Lines[0].Description = `Valve <script>alert("x")</script>`
	summary := BuildSummary(note, nil, time.Now())

	body := HTMLBody(summary)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestHTMLBodyEmptyDispatchPlaceholder(t *testing.T) {
	note := testNote()
	note.Lines = nil
	summary := BuildSummary(note, nil, time.Now())

	body := HTMLBody(summary)
	assert.Contains(t, body, "(No items on this dispatch)")
	assert.Contains(t, body, "No items on back order.")
}
