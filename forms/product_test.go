package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func validProductForm() ProductForm {
	return ProductForm{
		Name:          "Steel Sheet",
		Description:   "Galvanized corrugated sheet",
		Price:         "450.50",
		StockQuantity: 12,
		Status:        "available",
	}
}

func TestProductFormValidate(t *testing.T) {
	testCases := []struct {
		name         string
		mutate       func(f *ProductForm)
		expectErrors map[string]string
	}{
		{
			name:   "valid",
			mutate: func(f *ProductForm) {},
		},
		{
			name:   "name at max length accepted",
			mutate: func(f *ProductForm) { f.Name = strings.Repeat("a", 200) },
		},
		{
			name:         "name over max length rejected",
			mutate:       func(f *ProductForm) { f.Name = strings.Repeat("a", 201) },
			expectErrors: map[string]string{"name": "Name is too long"},
		},
		{
			name:         "negative stock rejected",
			mutate:       func(f *ProductForm) { f.StockQuantity = -1 },
			expectErrors: map[string]string{"stockQuantity": "Stock cannot be negative"},
		},
		{
			name:   "zero stock accepted",
			mutate: func(f *ProductForm) { f.StockQuantity = 0 },
		},
		{
			name:         "unknown status rejected",
			mutate:       func(f *ProductForm) { f.Status = "discontinued" },
			expectErrors: map[string]string{"status": "Invalid status"},
		},
		{
			name:   "out of stock status accepted",
			mutate: func(f *ProductForm) { f.Status = "out_of_stock" },
		},
		{
			name:         "malformed price rejected, never coerced",
			mutate:       func(f *ProductForm) { f.Price = "abc" },
			expectErrors: map[string]string{"price": "Price must be a non-negative number"},
		},
		{
			name:         "negative price rejected",
			mutate:       func(f *ProductForm) { f.Price = "-5" },
			expectErrors: map[string]string{"price": "Price must be a non-negative number"},
		},
		{
			name:         "NaN price rejected",
			mutate:       func(f *ProductForm) { f.Price = "NaN" },
			expectErrors: map[string]string{"price": "Price must be a non-negative number"},
		},
		{
			name:         "infinite price rejected",
			mutate:       func(f *ProductForm) { f.Price = "Inf" },
			expectErrors: map[string]string{"price": "Price must be a non-negative number"},
		},
		{
			name:         "signed infinity price rejected",
			mutate:       func(f *ProductForm) { f.Price = "-Infinity" },
			expectErrors: map[string]string{"price": "Price must be a non-negative number"},
		},
		{
			name:   "empty price means contact for price",
			mutate: func(f *ProductForm) { f.Price = "" },
		},
		{
			name:         "malformed category id rejected",
			mutate:       func(f *ProductForm) { f.CategoryID = "not-a-hex-id" },
			expectErrors: map[string]string{"categoryId": "Invalid category"},
		},
		{
			name: "all violations collected independently",
			mutate: func(f *ProductForm) {
				f.Name = ""
				f.StockQuantity = -3
				f.Price = "NaN"
				f.Status = ""
			},
			expectErrors: map[string]string{
				"name":          "Name is required",
				"stockQuantity": "Stock cannot be negative",
				"price":         "Price must be a non-negative number",
				"status":        "Invalid status",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := validProductForm()
			tc.mutate(&form)

			_, errs := form.Validate()
			if tc.expectErrors != nil {
				assert.Equal(t, FieldErrors(tc.expectErrors), errs)
				return
			}
			assert.False(t, errs.Any(), "unexpected errors: %v", errs)
		})
	}
}

func TestProductFormNormalization(t *testing.T) {
	catID := bson.NewObjectID()

	form := validProductForm()
	form.Name = "  Steel Sheet  "
	form.Description = "   "
	form.Price = " 0 "
	form.CategoryID = catID.Hex()

	data, errs := form.Validate()
	assert.False(t, errs.Any())
	assert.Equal(t, "Steel Sheet", data.Name)
	assert.Nil(t, data.Description)
	assert.NotNil(t, data.Price, "explicit zero price is distinct from absent price")
	assert.Equal(t, 0.0, *data.Price)
	assert.NotNil(t, data.CategoryID)
	assert.Equal(t, catID, *data.CategoryID)

	form.Price = ""
	data, errs = form.Validate()
	assert.False(t, errs.Any())
	assert.Nil(t, data.Price)
}
