package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProductStatus string

const (
	ProductStatusAvailable  ProductStatus = "available"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

func (s ProductStatus) Valid() bool {
	return s == ProductStatusAvailable || s == ProductStatusOutOfStock
}

type Product struct {
	Id            bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string         `bson:"name" json:"name"`
	Slug          string         `bson:"slug" json:"slug"`
	Description   *string        `bson:"description,omitempty" json:"description,omitempty"`
	Price         *float64       `bson:"price,omitempty" json:"price,omitempty"`
	StockQuantity int            `bson:"stockQuantity" json:"stockQuantity"`
	CategoryID    *bson.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Status        ProductStatus  `bson:"status" json:"status"`
	ImageURL      *string        `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`

	// Category is resolved from CategoryID when products are read through the
	// repository. Nil means uncategorized, including the case where the
	// referenced category has since been deleted.
	Category *Category `bson:"-" json:"category,omitempty"`
}
