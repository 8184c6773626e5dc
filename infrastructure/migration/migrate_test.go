package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/migration"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
)

func TestRunStampsVersion(t *testing.T) {
	store := storage.NewAdapter(storage.NewMemoryBackend())

	migration.Run(store, "2.1.0")

	var version string
	require.True(t, store.Get(storage.KeyAppVersion, &version))
	assert.Equal(t, "2.1.0", version)
}

func TestRunBackfillsSaleSubtotal(t *testing.T) {
	store := storage.NewAdapter(storage.NewMemoryBackend())

	// v0 sale records carried a total and tax components but no subtotal.
	require.True(t, store.Set(storage.KeySales, []map[string]interface{}{
		{
			"id":            "s1",
			"customerName":  "J. Doe",
			"serviceType":   "Room",
			"totalAmount":   112.5,
			"vatAmount":     12.5,
			"date":          "2024-03-01",
		},
		{
			"id":            "s2",
			"customerName":  "K. Appiah",
			"serviceType":   "Laundry",
			"subtotal":      40.0,
			"totalAmount":   45.0,
			"vatAmount":     5.0,
			"date":          "2024-03-02",
		},
	}))

	migration.Run(store, "2.1.0")

	var sales []map[string]interface{}
	require.True(t, store.Get(storage.KeySales, &sales))
	require.Len(t, sales, 2)

	assert.Equal(t, 100.0, sales[0]["subtotal"])
	// Records that already carry a subtotal are untouched.
	assert.Equal(t, 40.0, sales[1]["subtotal"])
}

func TestRunClampsNegativeSubtotal(t *testing.T) {
	store := storage.NewAdapter(storage.NewMemoryBackend())

	require.True(t, store.Set(storage.KeySales, []map[string]interface{}{
		{
			"id":          "s1",
			"totalAmount": 10.0,
			"vatAmount":   50.0,
		},
	}))

	migration.Run(store, "2.1.0")

	var sales []map[string]interface{}
	require.True(t, store.Get(storage.KeySales, &sales))
	assert.Equal(t, 0.0, sales[0]["subtotal"])
}

func TestRunIsIdempotent(t *testing.T) {
	store := storage.NewAdapter(storage.NewMemoryBackend())

	migration.Run(store, "2.1.0")
	migration.Run(store, "2.1.0")

	var version string
	require.True(t, store.Get(storage.KeyAppVersion, &version))
	assert.Equal(t, "2.1.0", version)
}
