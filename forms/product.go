package forms

import (
	"math"
	"strconv"
	"strings"

	"github.com/circusplayer/qjwc/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProductForm is the raw admin form input for creating or updating a
// product. Price arrives as a string because an empty field means "contact
// for price", which is distinct from a price of zero.
type ProductForm struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	CategoryID    string `json:"categoryId"`
	Status        string `json:"status"`
	ImageURL      string `json:"imageUrl"`
}

// ProductData is the normalized result of a successful validation. Slug is
// filled in by the caller from the trimmed name.
type ProductData struct {
	Name          string
	Slug          string
	Description   *string
	Price         *float64
	StockQuantity int
	CategoryID    *bson.ObjectID
	Status        models.ProductStatus
	ImageURL      *string
}

func (f ProductForm) Validate() (ProductData, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs.add("name", "Name is required")
	}
	if runeLen(name) > 200 {
		errs.add("name", "Name is too long")
	}

	description := strings.TrimSpace(f.Description)
	if runeLen(description) > 2000 {
		errs.add("description", "Description is too long")
	}

	if f.StockQuantity < 0 {
		errs.add("stockQuantity", "Stock cannot be negative")
	}

	status := models.ProductStatus(f.Status)
	if !status.Valid() {
		errs.add("status", "Invalid status")
	}

	// A malformed price string is rejected here rather than letting it reach
	// the store as NaN.
	var price *float64
	if raw := strings.TrimSpace(f.Price); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs.add("price", "Price must be a non-negative number")
		} else {
			price = &v
		}
	}

	var categoryID *bson.ObjectID
	if raw := strings.TrimSpace(f.CategoryID); raw != "" {
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			errs.add("categoryId", "Invalid category")
		} else {
			categoryID = &id
		}
	}

	if errs.Any() {
		return ProductData{}, errs
	}

	data := ProductData{
		Name:          name,
		StockQuantity: f.StockQuantity,
		CategoryID:    categoryID,
		Status:        status,
		Price:         price,
	}
	if description != "" {
		data.Description = &description
	}
	if imageURL := strings.TrimSpace(f.ImageURL); imageURL != "" {
		data.ImageURL = &imageURL
	}
	return data, nil
}
