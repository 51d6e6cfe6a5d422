package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"order_date", "order_date"},
		{"Order Date", "order_date"},
		{" Order-Date ", "order_date"},
		{"ORDER.DATE", "order_date"},
		{"Montréal Région", "montreal_region"},
		{"unit price (USD)", "unit_price_usd"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.in), "input %q", tt.in)
	}
}

func TestResolve_ForgivingHeaderMatch(t *testing.T) {
	header := []string{"Order ID", "Order Date", "PRODUCT", "Region", "City", "Latitude", "Longitude", "Unit Price", "Quantity"}
	idx, err := DefaultMapping().resolve(header)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.orderID)
	assert.Equal(t, 1, idx.date)
	assert.Equal(t, 2, idx.product)
	assert.Equal(t, 7, idx.unitPrice)
	assert.Equal(t, 8, idx.quantity)
}

func TestResolve_OptionalColumnsAbsent(t *testing.T) {
	header := []string{"order_date", "product", "region", "unit_price", "quantity"}
	idx, err := DefaultMapping().resolve(header)
	require.NoError(t, err)

	assert.Equal(t, -1, idx.city)
	assert.Equal(t, -1, idx.lat)
	assert.Equal(t, -1, idx.lon)
	assert.Equal(t, -1, idx.orderID)
}

func TestResolve_MissingRequiredColumns(t *testing.T) {
	header := []string{"product", "region"}
	_, err := DefaultMapping().resolve(header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_date")
	assert.Contains(t, err.Error(), "unit_price")
	assert.Contains(t, err.Error(), "quantity")
}

func TestResolve_CustomMapping(t *testing.T) {
	m := DefaultMapping()
	m.Date = "Datum"
	m.UnitPrice = "Preis"

	header := []string{"datum", "product", "region", "preis", "quantity"}
	idx, err := m.resolve(header)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.date)
	assert.Equal(t, 3, idx.unitPrice)
}

func TestResolve_DuplicateHeaderUsesFirst(t *testing.T) {
	header := []string{"order_date", "order_date", "product", "region", "unit_price", "quantity"}
	idx, err := DefaultMapping().resolve(header)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.date)
}
