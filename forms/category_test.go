package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFormValidate(t *testing.T) {
	testCases := []struct {
		name         string
		form         CategoryForm
		expectErrors map[string]string
	}{
		{
			name: "valid",
			form: CategoryForm{Name: "Roofing", Description: "Roofing sheets and accessories"},
		},
		{
			name: "name at max length accepted",
			form: CategoryForm{Name: strings.Repeat("a", 100)},
		},
		{
			name:         "name over max length rejected",
			form:         CategoryForm{Name: strings.Repeat("a", 101)},
			expectErrors: map[string]string{"name": "Name is too long"},
		},
		{
			name:         "name required",
			form:         CategoryForm{Name: "   "},
			expectErrors: map[string]string{"name": "Name is required"},
		},
		{
			name:         "description over max length rejected",
			form:         CategoryForm{Name: "Roofing", Description: strings.Repeat("d", 501)},
			expectErrors: map[string]string{"description": "Description is too long"},
		},
		{
			name: "all violations collected",
			form: CategoryForm{Name: "", Description: strings.Repeat("d", 501)},
			expectErrors: map[string]string{
				"name":        "Name is required",
				"description": "Description is too long",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, errs := tc.form.Validate()
			if tc.expectErrors != nil {
				assert.Equal(t, FieldErrors(tc.expectErrors), errs)
				return
			}
			assert.False(t, errs.Any())
			assert.Equal(t, strings.TrimSpace(tc.form.Name), data.Name)
		})
	}
}

func TestCategoryFormNormalization(t *testing.T) {
	data, errs := CategoryForm{Name: "  Roofing  ", Description: "  "}.Validate()
	assert.False(t, errs.Any())
	assert.Equal(t, "Roofing", data.Name)
	assert.Nil(t, data.Description, "blank optional description becomes absent")

	data, errs = CategoryForm{Name: "Roofing", Description: " sheets "}.Validate()
	assert.False(t, errs.Any())
	assert.NotNil(t, data.Description)
	assert.Equal(t, "sheets", *data.Description)
}
