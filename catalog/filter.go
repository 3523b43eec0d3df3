package catalog

import (
	"strings"

	"github.com/circusplayer/qjwc/models"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// ProductFilter is the current filter state of a product listing. Zero
// values match everything.
type ProductFilter struct {
	Search       string
	CategorySlug string
	Status       string
}

// FilterProducts returns the products satisfying every predicate of f, in
// input order. Products must carry their resolved Category (see
// Repository.ListProducts); an uncategorized product only matches an empty
// CategorySlug.
func FilterProducts(products []models.Product, f ProductFilter) []models.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.TrimSpace(f.Status)
	if status == StatusAll {
		status = ""
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchesSearch(p, search) {
			continue
		}
		if f.CategorySlug != "" && (p.Category == nil || p.Category.Slug != f.CategorySlug) {
			continue
		}
		if status != "" && string(p.Status) != status {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p models.Product, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), search)
}
