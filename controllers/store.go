package controllers

import (
	"context"

	"github.com/circusplayer/qjwc/forms"
	"github.com/circusplayer/qjwc/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CatalogStore is what the catalog handlers need from the repository.
// *catalog.Repository satisfies it; tests use a mock.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id bson.ObjectID) (models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (models.Category, error)
	CreateCategory(ctx context.Context, data forms.CategoryData) (models.Category, error)
	UpdateCategory(ctx context.Context, id bson.ObjectID, data forms.CategoryData) error
	DeleteCategory(ctx context.Context, id bson.ObjectID) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, idOrSlug string) (models.Product, error)
	CreateProduct(ctx context.Context, data forms.ProductData) (models.Product, error)
	UpdateProduct(ctx context.Context, id bson.ObjectID, data forms.ProductData) error
	DeleteProduct(ctx context.Context, id bson.ObjectID) (models.Product, error)
	SetProductImage(ctx context.Context, id bson.ObjectID, url string) error
}

// QuoteStore is what the quote handlers need from the repository.
type QuoteStore interface {
	CreateQuote(ctx context.Context, q models.Quote) (models.Quote, error)
	ListQuotes(ctx context.Context) ([]models.Quote, error)
	GetQuote(ctx context.Context, id bson.ObjectID) (models.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id bson.ObjectID, status models.QuoteStatus) error
}
