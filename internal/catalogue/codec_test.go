package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomward0606/StockSystem/internal/models"
)

func TestParseEncodeRoundTrip(t *testing.T) {
	entries := []models.CatalogueEntry{
		{ProductCode: "AB100", Description: "Bearing", Category: "Bearings", Make: "SKF", Manufacturer: "SKF", Image: "ab100.jpg"},
		{ProductCode: "AB200", Description: "Belt, long", Category: "Belts", Make: "", Manufacturer: "Gates", Image: ""},
		{ProductCode: "ZZ001"}, // all optional fields empty
	}

	encoded, err := Encode(entries)
	require.NoError(t, err)

	decoded, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestRoundTripKeepsFieldPadding(t *testing.T) {
	entries := []models.CatalogueEntry{
		{ProductCode: "AB100", Description: "  padded description  ", Category: " Bearings", Make: "SKF ", Manufacturer: "SKF", Image: ""},
	}

	encoded, err := Encode(entries)
	require.NoError(t, err)

	decoded, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestParseToleratesHeaderCaseVariation(t *testing.T) {
	data := []byte("product code,DESCRIPTION,category,MAKE,Manufacturer,Image\n" +
		"AB100,Bearing,Bearings,SKF,SKF,ab100.jpg\n")

	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "AB100", entries[0].ProductCode)
	assert.Equal(t, "Bearing", entries[0].Description)
	assert.Equal(t, "ab100.jpg", entries[0].Image)
}

func TestParseDropsRowsWithoutProductCode(t *testing.T) {
	data := []byte("Product Code,Description,Category,Make,Manufacturer,image\n" +
		"AB100,Bearing,Bearings,SKF,SKF,\n" +
		",orphan row,,,,\n" +
		"AB200,Belt,Belts,,Gates,\n")

	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "AB100", entries[0].ProductCode)
	assert.Equal(t, "AB200", entries[1].ProductCode)
}

func TestParseEmptyBlob(t *testing.T) {
	entries, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEncodeWritesCanonicalHeader(t *testing.T) {
	encoded, err := Encode([]models.CatalogueEntry{{ProductCode: "X1", Description: "thing"}})
	require.NoError(t, err)
	assert.Equal(t,
		"Product Code,Description,Category,Make,Manufacturer,image\nX1,thing,,,,\n",
		string(encoded))
}

func TestEncodePreservesFieldsNeedingQuoting(t *testing.T) {
	entries := []models.CatalogueEntry{
		{ProductCode: "Q1", Description: `Hose, 1/2" bore`, Category: "Hoses"},
	}

	encoded, err := Encode(entries)
	require.NoError(t, err)

	decoded, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestSortByProductCode(t *testing.T) {
	entries := []models.CatalogueEntry{
		{ProductCode: "b200"},
		{ProductCode: "A300"},
		{ProductCode: "A100"},
	}

	SortByProductCode(entries)

	assert.Equal(t, "A100", entries[0].ProductCode)
	assert.Equal(t, "A300", entries[1].ProductCode)
	assert.Equal(t, "b200", entries[2].ProductCode)
}
