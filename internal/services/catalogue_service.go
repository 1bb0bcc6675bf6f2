package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomward0606/StockSystem/internal/archive"
	"github.com/tomward0606/StockSystem/internal/catalogue"
	"github.com/tomward0606/StockSystem/internal/metrics"
	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/internal/repositories"
)

// CatalogueService runs the sync engine against the external store: every
// read fetches the live blob, every mutation re-fetches, edits and writes
// back conditionally on the version token. No blob state is held between
// calls.
type CatalogueService struct {
	Store      catalogue.Store
	HiddenRepo *repositories.HiddenPartRepository
	Archiver   *archive.SnapshotArchiver
}

func NewCatalogueService(store catalogue.Store, hiddenRepo *repositories.HiddenPartRepository, archiver *archive.SnapshotArchiver) *CatalogueService {
	return &CatalogueService{
		Store:      store,
		HiddenRepo: hiddenRepo,
		Archiver:   archiver,
	}
}

// List fetches the current catalogue and returns it filtered: hidden part
// numbers removed, then the optional search (substring across product code,
// description, make and manufacturer) and category filters applied. The
// category set is computed over the visible entries before search filtering
// so the picker stays stable while searching.
func (s *CatalogueService) List(ctx context.Context, search, category string) (*models.CatalogueList, error) {
	entries, err := s.fetchEntries(ctx)
	if err != nil {
		return nil, err
	}

	hidden := map[string]bool{}
	if s.HiddenRepo != nil {
		hidden, err = s.HiddenRepo.HiddenSet(ctx)
		if err != nil {
			return nil, err
		}
	}

	var visible []models.CatalogueEntry
	for _, e := range entries {
		if hidden[strings.ToUpper(e.ProductCode)] {
			continue
		}
		visible = append(visible, e)
	}

	categorySet := make(map[string]bool)
	for _, e := range visible {
		if e.Category != "" {
			categorySet[e.Category] = true
		}
	}
	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)

	filtered := make([]models.CatalogueEntry, 0, len(visible))
	for _, e := range visible {
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		if search != "" && !matchesSearch(&e, search) {
			continue
		}
		filtered = append(filtered, e)
	}

	return &models.CatalogueList{Entries: filtered, Categories: categories}, nil
}

func matchesSearch(e *models.CatalogueEntry, search string) bool {
	for _, field := range []string{e.ProductCode, e.Description, e.Make, e.Manufacturer} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// Get returns a single catalogue entry by product code (case-insensitive).
func (s *CatalogueService) Get(ctx context.Context, productCode string) (*models.CatalogueEntry, error) {
	entries, err := s.fetchEntries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if strings.EqualFold(entries[i].ProductCode, productCode) {
			return &entries[i], nil
		}
	}
	return nil, models.ErrNotFound
}

// Add inserts a new entry. The duplicate check runs against the freshly
// fetched snapshot before any write is attempted, so a duplicate add never
// consumes a version token. The blob is re-sorted by product code on the way
// out.
func (s *CatalogueService) Add(ctx context.Context, entry *models.CatalogueEntry) error {
	entry.ProductCode = strings.TrimSpace(entry.ProductCode)
	if entry.ProductCode == "" {
		return models.NewValidationError("product_code", "product code is required")
	}

	snapshot, err := s.Store.Fetch(ctx)
	if err != nil {
		return err
	}

	entries, err := catalogue.Parse(snapshot.Content)
	if err != nil {
		return err
	}

	for _, existing := range entries {
		if strings.EqualFold(existing.ProductCode, entry.ProductCode) {
			return models.ErrDuplicateKey
		}
	}

	entries = append(entries, *entry)
	catalogue.SortByProductCode(entries)

	message := fmt.Sprintf("Add part %s", entry.ProductCode)
	return s.write(ctx, entries, message, snapshot.SHA)
}

// Update patches one entry in place; nil fields in the update keep their
// prior values. Row order is preserved. A patch that supplies no fields is
// answered without a write, so it never spends a version token.
func (s *CatalogueService) Update(ctx context.Context, productCode string, update *models.CatalogueUpdate) error {
	empty := update.Description == nil && update.Category == nil &&
		update.Make == nil && update.Manufacturer == nil && update.Image == nil

	snapshot, err := s.Store.Fetch(ctx)
	if err != nil {
		return err
	}

	entries, err := catalogue.Parse(snapshot.Content)
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if !strings.EqualFold(entries[i].ProductCode, productCode) {
			continue
		}
		found = true
		if update.Description != nil {
			entries[i].Description = *update.Description
		}
		if update.Category != nil {
			entries[i].Category = *update.Category
		}
		if update.Make != nil {
			entries[i].Make = *update.Make
		}
		if update.Manufacturer != nil {
			entries[i].Manufacturer = *update.Manufacturer
		}
		if update.Image != nil {
			entries[i].Image = *update.Image
		}
	}
	if !found {
		return models.ErrNotFound
	}
	if empty {
		return nil
	}

	message := fmt.Sprintf("Update part %s", productCode)
	return s.write(ctx, entries, message, snapshot.SHA)
}

// Delete removes an entry by product code.
func (s *CatalogueService) Delete(ctx context.Context, productCode string) error {
	snapshot, err := s.Store.Fetch(ctx)
	if err != nil {
		return err
	}

	entries, err := catalogue.Parse(snapshot.Content)
	if err != nil {
		return err
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if strings.EqualFold(e.ProductCode, productCode) {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return models.ErrNotFound
	}

	message := fmt.Sprintf("Delete part %s", productCode)
	return s.write(ctx, kept, message, snapshot.SHA)
}

// Export returns the raw remote blob verbatim, authenticated path first and
// the public raw URL as fallback when no credential is configured.
func (s *CatalogueService) Export(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Store.Fetch(ctx)
	if err == nil {
		return snapshot.Content, nil
	}
	if errors.Is(err, models.ErrNotConfigured) {
		return s.Store.FetchPublic(ctx)
	}
	return nil, err
}

func (s *CatalogueService) fetchEntries(ctx context.Context) ([]models.CatalogueEntry, error) {
	content, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return catalogue.Parse(content)
}

// write encodes and conditionally writes the new blob, records the result
// metric and archives the accepted revision. A conflict propagates to the
// caller; there is no automatic retry.
func (s *CatalogueService) write(ctx context.Context, entries []models.CatalogueEntry, message, expectedSHA string) error {
	content, err := catalogue.Encode(entries)
	if err != nil {
		return err
	}

	newSHA, err := s.Store.Put(ctx, content, message, expectedSHA)
	if err != nil {
		if errors.Is(err, models.ErrConcurrencyConflict) {
			metrics.CatalogueWritesTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.CatalogueWritesTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.CatalogueWritesTotal.WithLabelValues("ok").Inc()

	if s.Archiver != nil {
		s.Archiver.ArchiveCatalogue(ctx, content, newSHA)
	}
	return nil
}
