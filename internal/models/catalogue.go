package models

import "time"

// CatalogueEntry is one part definition in the shared CSV catalogue. Entries
// have no lifecycle of their own; they exist only as rows of the current
// remote snapshot.
type CatalogueEntry struct {
	ProductCode  string `json:"product_code"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Make         string `json:"make"`
	Manufacturer string `json:"manufacturer"`
	Image        string `json:"image"`
}

// CatalogueUpdate carries a partial update; nil fields keep their prior
// values.
type CatalogueUpdate struct {
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Make         *string `json:"make"`
	Manufacturer *string `json:"manufacturer"`
	Image        *string `json:"image"`
}

// CatalogueList is the filtered listing plus the distinct category set.
type CatalogueList struct {
	Entries    []CatalogueEntry `json:"entries"`
	Categories []string         `json:"categories"`
}

// HiddenPart is a deny-listed part number kept out of catalogue listings.
// Part numbers are stored upper-cased.
type HiddenPart struct {
	PartNumber string    `json:"part_number"`
	Reason     string    `json:"reason,omitempty"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type HidePartRequest struct {
	PartNumber string `json:"part_number"`
	Reason     string `json:"reason"`
	CreatedBy  string `json:"created_by"`
}
