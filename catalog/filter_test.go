package catalog

import (
	"testing"

	"github.com/circusplayer/qjwc/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func strptr(s string) *string { return &s }

func testProducts() []models.Product {
	roofing := models.Category{Id: bson.NewObjectID(), Name: "Roofing", Slug: "roofing"}
	steel := models.Category{Id: bson.NewObjectID(), Name: "Steel", Slug: "steel"}

	return []models.Product{
		{
			Name:     "Steel Sheet",
			Slug:     "steel-sheet",
			Status:   models.ProductStatusAvailable,
			Category: &roofing,
		},
		{
			Name:     "C-Purlin",
			Slug:     "c-purlin",
			Status:   models.ProductStatusOutOfStock,
			Category: &steel,
		},
		{
			Name:        "Angle Bar",
			Slug:        "angle-bar",
			Description: strptr("Hot-rolled angle bar for trusses and purlin framing"),
			Status:      models.ProductStatusAvailable,
			Category:    nil, // uncategorized
		},
	}
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	products := testProducts()

	testCases := []struct {
		name     string
		filter   ProductFilter
		expected []string
	}{
		{
			name:     "identity filter returns full input",
			filter:   ProductFilter{Search: "", CategorySlug: "", Status: "all"},
			expected: []string{"Steel Sheet", "C-Purlin", "Angle Bar"},
		},
		{
			name:     "category slug match",
			filter:   ProductFilter{CategorySlug: "roofing"},
			expected: []string{"Steel Sheet"},
		},
		{
			name:     "status match",
			filter:   ProductFilter{Status: "out_of_stock"},
			expected: []string{"C-Purlin"},
		},
		{
			name:     "search on name is case-insensitive",
			filter:   ProductFilter{Search: "PURLIN"},
			expected: []string{"C-Purlin", "Angle Bar"},
		},
		{
			name:     "search matches description too",
			filter:   ProductFilter{Search: "trusses"},
			expected: []string{"Angle Bar"},
		},
		{
			name:     "predicates are conjunctive",
			filter:   ProductFilter{Search: "purlin", CategorySlug: "steel"},
			expected: []string{"C-Purlin"},
		},
		{
			name:     "search match with wrong category is excluded",
			filter:   ProductFilter{Search: "steel sheet", CategorySlug: "steel"},
			expected: []string{},
		},
		{
			name:     "uncategorized products never match a category slug",
			filter:   ProductFilter{CategorySlug: "hardware"},
			expected: []string{},
		},
		{
			name:     "unknown status matches nothing",
			filter:   ProductFilter{Status: "discontinued"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterProducts(products, tc.filter)
			assert.Equal(t, tc.expected, names(got))
		})
	}
}

func TestFilterProductsPreservesOrderAndInput(t *testing.T) {
	products := testProducts()

	got := FilterProducts(products, ProductFilter{Status: "available"})
	assert.Equal(t, []string{"Steel Sheet", "Angle Bar"}, names(got))

	// deterministic: same inputs, same output
	again := FilterProducts(products, ProductFilter{Status: "available"})
	assert.Equal(t, got, again)

	// input slice untouched
	assert.Equal(t, []string{"Steel Sheet", "C-Purlin", "Angle Bar"}, names(products))
}

func TestResolveCategories(t *testing.T) {
	roofing := models.Category{Id: bson.NewObjectID(), Name: "Roofing", Slug: "roofing"}
	deletedID := bson.NewObjectID()

	products := []models.Product{
		{Name: "Steel Sheet", CategoryID: &roofing.Id},
		{Name: "C-Purlin", CategoryID: &deletedID},
		{Name: "Angle Bar"},
	}

	resolved := ResolveCategories(products, []models.Category{roofing})

	assert.NotNil(t, resolved[0].Category)
	assert.Equal(t, "roofing", resolved[0].Category.Slug)

	// reference to a deleted category resolves to uncategorized, not an error
	assert.Nil(t, resolved[1].Category)
	assert.Nil(t, resolved[2].Category)
}
