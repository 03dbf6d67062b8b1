package category_test

import (
	"testing"

	"github.com/UnknownOlympus/beacon/internal/category"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records() []models.ServiceRecord {
	return []models.ServiceRecord{
		{Name: "Spoke & Wheel", Address: "Main Street 1", Type: "bicycle"},
		{Name: "Pixel Clinic", Address: "Main Street 2", Type: "mobile_phone"},
		{Name: "Tailor Lane", Address: "Main Street 3", Type: "tailor"},
		{Name: "Oak Furniture Restoration", Address: "Main Street 4", Type: "repair"},
		{Name: "Byte Bench", Address: "Main Street 5", Type: "computer"},
	}
}

func names(recs []models.ServiceRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Run("absent category keeps everything", func(t *testing.T) {
		assert.Len(t, category.Filter(records(), ""), 5)
		assert.Len(t, category.Filter(records(), "all"), 5)
	})

	t.Run("mapped category keeps matching types only", func(t *testing.T) {
		kept := category.Filter(records(), "bikes")

		assert.Equal(t, []string{"Spoke & Wheel"}, names(kept))
	})

	t.Run("category covering several types", func(t *testing.T) {
		kept := category.Filter(records(), "laptop")

		assert.Equal(t, []string{"Byte Bench"}, names(kept))
	})

	t.Run("clothing maps to tailor and shoemaker", func(t *testing.T) {
		kept := category.Filter(records(), "clothing")

		assert.Equal(t, []string{"Tailor Lane"}, names(kept))
	})

	t.Run("unmapped category falls back to substring match", func(t *testing.T) {
		kept := category.Filter(records(), "furniture")

		require.Len(t, kept, 1)
		assert.Equal(t, "Oak Furniture Restoration", kept[0].Name)
	})

	t.Run("unknown category behaves like an empty mapping", func(t *testing.T) {
		kept := category.Filter(records(), "street")

		// Matches addresses, not types.
		assert.Len(t, kept, 5)
	})

	t.Run("mapped category with no matching records", func(t *testing.T) {
		kept := category.Filter(records(), "tools")

		assert.Empty(t, kept)
	})
}
