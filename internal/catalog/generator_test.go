package catalog_test

import (
	"testing"

	"lumina/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := catalog.Generate(42)
	b := catalog.Generate(42)
	assert.Equal(t, a, b, "same seed yields the same catalog")

	c := catalog.Generate(43)
	assert.NotEqual(t, a, c)
}

func TestGenerate_CoversEveryCategory(t *testing.T) {
	products := catalog.Generate(1)
	assert.Len(t, products, 6*len(catalog.Categories))

	perCategory := make(map[string]int)
	for _, p := range products {
		perCategory[p.Category]++
	}
	for _, cat := range catalog.Categories {
		assert.Equal(t, 6, perCategory[cat])
	}
}

func TestGenerate_FieldRanges(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range catalog.Generate(7) {
		assert.False(t, seen[p.ID], "ids are unique")
		seen[p.ID] = true

		assert.Regexp(t, `^prod-\d+$`, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.Price, 20.0)
		assert.Less(t, p.Price, 320.0)
		assert.GreaterOrEqual(t, p.Discount, 0)
		assert.LessOrEqual(t, p.Discount, 34)
		assert.GreaterOrEqual(t, p.Rating, 3.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.GreaterOrEqual(t, p.Stock, 2)
		assert.LessOrEqual(t, p.Stock, 51)
		assert.NotEmpty(t, p.Description)
		assert.Contains(t, p.Image, "picsum.photos")
		assert.LessOrEqual(t, p.EffectivePrice(), p.Price)
	}
}
