package forms

import "strings"

// CategoryForm is the raw admin form input for creating or updating a
// category.
type CategoryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryData is the normalized result of a successful validation. Slug is
// filled in by the caller from the trimmed name.
type CategoryData struct {
	Name        string
	Slug        string
	Description *string
}

func (f CategoryForm) Validate() (CategoryData, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs.add("name", "Name is required")
	}
	if runeLen(name) > 100 {
		errs.add("name", "Name is too long")
	}

	description := strings.TrimSpace(f.Description)
	if runeLen(description) > 500 {
		errs.add("description", "Description is too long")
	}

	if errs.Any() {
		return CategoryData{}, errs
	}

	data := CategoryData{Name: name}
	if description != "" {
		data.Description = &description
	}
	return data, nil
}
