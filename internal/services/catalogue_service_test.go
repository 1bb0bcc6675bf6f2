package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomward0606/StockSystem/internal/catalogue"
	"github.com/tomward0606/StockSystem/internal/models"
)

// fakeStore is an in-memory versioned store with real compare-and-swap
// behavior, so conflict paths are exercised without a network.
type fakeStore struct {
	content  []byte
	sha      int
	fetchErr error
	puts     int
}

func newFakeStore(content string) *fakeStore {
	return &fakeStore{content: []byte(content), sha: 1}
}

func (f *fakeStore) token() string { return fmt.Sprintf("sha-%d", f.sha) }

func (f *fakeStore) Fetch(ctx context.Context) (*catalogue.Snapshot, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &catalogue.Snapshot{Content: append([]byte(nil), f.content...), SHA: f.token()}, nil
}

func (f *fakeStore) FetchPublic(ctx context.Context) ([]byte, error) {
	return append([]byte(nil), f.content...), nil
}

func (f *fakeStore) Put(ctx context.Context, content []byte, message, expectedSHA string) (string, error) {
	f.puts++
	if expectedSHA != f.token() {
		return "", models.ErrConcurrencyConflict
	}
	f.content = append([]byte(nil), content...)
	f.sha++
	return f.token(), nil
}

const testCatalogue = `Product Code,Description,Category,Make,Manufacturer,image
AB-100,Compressor valve,Refrigeration,Foster,Danfoss,ab100.jpg
CD-200,Door seal,Cabinets,Williams,Generic,
EF-300,Fan motor,Refrigeration,Foster,EBM,ef300.jpg
`

func newTestCatalogueService(store catalogue.Store) *CatalogueService {
	return NewCatalogueService(store, nil, nil)
}

func TestListReturnsAllWithCategories(t *testing.T) {
	svc := newTestCatalogueService(newFakeStore(testCatalogue))

	list, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, list.Entries, 3)
	assert.Equal(t, []string{"Cabinets", "Refrigeration"}, list.Categories)
}

func TestListSearchAcrossFields(t *testing.T) {
	svc := newTestCatalogueService(newFakeStore(testCatalogue))

	list, err := svc.List(context.Background(), "foster", "")
	require.NoError(t, err)
	require.Len(t, list.Entries, 2)

	list, err = svc.List(context.Background(), "door", "")
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "CD-200", list.Entries[0].ProductCode)
}

func TestListCategoryFilter(t *testing.T) {
	svc := newTestCatalogueService(newFakeStore(testCatalogue))

	list, err := svc.List(context.Background(), "", "refrigeration")
	require.NoError(t, err)
	assert.Len(t, list.Entries, 2)
	// category set stays complete while filtering
	assert.Equal(t, []string{"Cabinets", "Refrigeration"}, list.Categories)
}

func TestGetCaseInsensitive(t *testing.T) {
	svc := newTestCatalogueService(newFakeStore(testCatalogue))

	entry, err := svc.Get(context.Background(), "ab-100")
	require.NoError(t, err)
	assert.Equal(t, "Compressor valve", entry.Description)

	_, err = svc.Get(context.Background(), "ZZ-999")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddSortsAndWrites(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	err := svc.Add(context.Background(), &models.CatalogueEntry{
		ProductCode: "AA-050",
		Description: "Gasket",
		Category:    "Cabinets",
	})
	require.NoError(t, err)

	entries, err := catalogue.Parse(store.content)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "AA-050", entries[0].ProductCode)
	assert.Equal(t, "AB-100", entries[1].ProductCode)
}

func TestAddDuplicateNeverWrites(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	err := svc.Add(context.Background(), &models.CatalogueEntry{ProductCode: "ab-100"})
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
	assert.Zero(t, store.puts)
}

func TestAddEmptyCodeRejected(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	err := svc.Add(context.Background(), &models.CatalogueEntry{ProductCode: "  "})
	assert.True(t, models.IsValidation(err))
	assert.Zero(t, store.puts)
}

func TestAddConflictPropagates(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	// Another writer moves the token between our fetch and put.
	store.sha = 1
	conflicted := &racingStore{fakeStore: store}
	svc.Store = conflicted

	err := svc.Add(context.Background(), &models.CatalogueEntry{ProductCode: "NEW-1"})
	assert.ErrorIs(t, err, models.ErrConcurrencyConflict)
}

// racingStore bumps the version token after every fetch, so any subsequent
// conditional write loses the race.
type racingStore struct {
	*fakeStore
}

func (r *racingStore) Fetch(ctx context.Context) (*catalogue.Snapshot, error) {
	snap, err := r.fakeStore.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.sha++
	return snap, nil
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	desc := "Replacement door seal"
	err := svc.Update(context.Background(), "cd-200", &models.CatalogueUpdate{Description: &desc})
	require.NoError(t, err)

	entries, err := catalogue.Parse(store.content)
	require.NoError(t, err)
	assert.Equal(t, "Replacement door seal", entries[1].Description)
	assert.Equal(t, "Cabinets", entries[1].Category)
	assert.Equal(t, "Williams", entries[1].Make)
}

func TestUpdateWithNoFieldsNeverWrites(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	err := svc.Update(context.Background(), "CD-200", &models.CatalogueUpdate{})
	require.NoError(t, err)
	assert.Zero(t, store.puts)
	assert.Equal(t, []byte(testCatalogue), store.content)
}

func TestUpdateMissingEntry(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	desc := "x"
	err := svc.Update(context.Background(), "ZZ-999", &models.CatalogueUpdate{Description: &desc})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, store.puts)
}

func TestDeleteRemovesEntry(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	err := svc.Delete(context.Background(), "CD-200")
	require.NoError(t, err)

	entries, err := catalogue.Parse(store.content)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEqual(t, "CD-200", e.ProductCode)
	}
}

func TestDeleteMissingEntry(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	err := svc.Delete(context.Background(), "ZZ-999")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, store.puts)
}

func TestExportReturnsBlobVerbatim(t *testing.T) {
	store := newFakeStore(testCatalogue)
	svc := newTestCatalogueService(store)

	content, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(testCatalogue), content)
}

func TestExportFallsBackToPublicWhenNotConfigured(t *testing.T) {
	store := newFakeStore(testCatalogue)
	store.fetchErr = models.ErrNotConfigured
	svc := newTestCatalogueService(store)

	content, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(testCatalogue), content)
}

func TestListFallsBackToPublicWhenNotConfigured(t *testing.T) {
	store := newFakeStore(testCatalogue)
	store.fetchErr = models.ErrNotConfigured
	svc := newTestCatalogueService(store)

	list, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, list.Entries, 3)
}

func TestListRemoteUnavailablePropagates(t *testing.T) {
	store := newFakeStore(testCatalogue)
	store.fetchErr = models.ErrRemoteUnavailable
	svc := newTestCatalogueService(store)

	_, err := svc.List(context.Background(), "", "")
	assert.ErrorIs(t, err, models.ErrRemoteUnavailable)
}
