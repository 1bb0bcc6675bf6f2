// Package catalogue implements the sync engine's pieces: the CSV codec and
// the versioned external store client.
package catalogue

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/tomward0606/StockSystem/internal/models"
)

// Columns is the stable write-time column order of the catalogue CSV.
var Columns = []string{"Product Code", "Description", "Category", "Make", "Manufacturer", "image"}

// Parse decodes a catalogue blob into entries, keeping read order. Header
// names match case-insensitively; rows without a product code are dropped
// silently (blank-line noise, not an error). Field values pass through
// exactly as read, padding included, so parse(encode(entries)) == entries.
func Parse(data []byte) ([]models.CatalogueEntry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalogue csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Map column index -> canonical field by case-insensitive header match.
	index := make(map[string]int)
	for i, header := range records[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}

	field := func(row []string, column string) string {
		i, ok := index[strings.ToLower(column)]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var entries []models.CatalogueEntry
	for _, row := range records[1:] {
		entry := models.CatalogueEntry{
			ProductCode:  field(row, "Product Code"),
			Description:  field(row, "Description"),
			Category:     field(row, "Category"),
			Make:         field(row, "Make"),
			Manufacturer: field(row, "Manufacturer"),
			Image:        field(row, "image"),
		}
		// Only the drop decision tolerates whitespace; the stored value
		// keeps whatever padding the row carried.
		if strings.TrimSpace(entry.ProductCode) == "" {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Encode serializes entries back to the canonical textual shape: fixed
// header casing and column order, regardless of the shape most recently
// read.
func Encode(entries []models.CatalogueEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(Columns); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{e.ProductCode, e.Description, e.Category, e.Make, e.Manufacturer, e.Image}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// SortByProductCode puts entries into write-time canonical order.
func SortByProductCode(entries []models.CatalogueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToUpper(entries[i].ProductCode) < strings.ToUpper(entries[j].ProductCode)
	})
}
