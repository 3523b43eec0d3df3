// Package catalog implements the catalog layer: slug derivation, the
// product filter engine, and a cached repository over the backing store.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/circusplayer/qjwc/forms"
	"github.com/circusplayer/qjwc/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrNotFound is returned when a product or category does not resolve.
	ErrNotFound = errors.New("catalog: not found")
	// ErrDuplicateSlug is returned when a mutation violates slug uniqueness.
	ErrDuplicateSlug = errors.New("catalog: slug already exists")
)

// Repository reads and mutates catalog entities. Reads are cached per
// entity type; every mutation invalidates its own entity type so the next
// read re-fetches. Concurrent mutations are not coordinated beyond what the
// store guarantees.
type Repository struct {
	products   *mongo.Collection
	categories *mongo.Collection
	quotes     *mongo.Collection
	cache      *Cache
}

func NewRepository(db *mongo.Database, cache *Cache) *Repository {
	return &Repository{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		quotes:     db.Collection("quotes"),
		cache:      cache,
	}
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	if v, ok := r.cache.Get(CacheKeyCategories); ok {
		return v.([]models.Category), nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Category, 0)
	for cursor.Next(ctx) {
		var cat models.Category
		if err := cursor.Decode(&cat); err != nil {
			return nil, err
		}
		items = append(items, cat)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	r.cache.Set(CacheKeyCategories, items)
	return items, nil
}

func (r *Repository) GetCategoryByID(ctx context.Context, id bson.ObjectID) (models.Category, error) {
	var cat models.Category
	if err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (models.Category, error) {
	var cat models.Category
	if err := r.categories.FindOne(ctx, bson.M{"slug": slug}).Decode(&cat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (r *Repository) CreateCategory(ctx context.Context, data forms.CategoryData) (models.Category, error) {
	doc := models.Category{
		Name: data.Name,
		Slug: data.Slug,
	}
	if data.Description != nil {
		doc.Description = *data.Description
	}

	res, err := r.categories.InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Category{}, ErrDuplicateSlug
		}
		return models.Category{}, err
	}
	doc.Id = res.InsertedID.(bson.ObjectID)

	r.cache.Invalidate(CacheKeyCategories)
	return doc, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id bson.ObjectID, data forms.CategoryData) error {
	set := bson.M{
		"name": data.Name,
		"slug": data.Slug,
	}
	update := bson.M{"$set": set}
	if data.Description != nil {
		set["description"] = *data.Description
	} else {
		update["$unset"] = bson.M{"description": ""}
	}

	res, err := r.categories.UpdateByID(ctx, id, update)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	r.cache.Invalidate(CacheKeyCategories)
	return nil
}

// DeleteCategory removes a category and detaches it from any product that
// referenced it. Products are never cascade-deleted; they become
// uncategorized on the next read.
func (r *Repository) DeleteCategory(ctx context.Context, id bson.ObjectID) error {
	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	_, err = r.products.UpdateMany(ctx,
		bson.M{"categoryId": id},
		bson.M{"$unset": bson.M{"categoryId": ""}},
	)

	r.cache.Invalidate(CacheKeyCategories)
	r.cache.Invalidate(CacheKeyProducts)
	return err
}

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	if v, ok := r.cache.Get(CacheKeyProducts); ok {
		return v.([]models.Product), nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	products = ResolveCategories(products, categories)

	r.cache.Set(CacheKeyProducts, products)
	return products, nil
}

// GetProduct resolves a product by id hex or, failing that, by slug.
func (r *Repository) GetProduct(ctx context.Context, idOrSlug string) (models.Product, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)

	filter := bson.M{"slug": idOrSlug}
	if id, err := bson.ObjectIDFromHex(idOrSlug); err == nil {
		filter = bson.M{"_id": id}
	}

	var p models.Product
	if err := r.products.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	if p.CategoryID != nil {
		cat, err := r.GetCategoryByID(ctx, *p.CategoryID)
		switch {
		case err == nil:
			p.Category = &cat
		case errors.Is(err, ErrNotFound):
			// referenced category was deleted; product is uncategorized
		default:
			return models.Product{}, err
		}
	}
	return p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, data forms.ProductData) (models.Product, error) {
	now := time.Now().UTC()
	doc := models.Product{
		Name:          data.Name,
		Slug:          data.Slug,
		Description:   data.Description,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		CategoryID:    data.CategoryID,
		Status:        data.Status,
		ImageURL:      data.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := r.products.InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Product{}, ErrDuplicateSlug
		}
		return models.Product{}, err
	}
	doc.Id = res.InsertedID.(bson.ObjectID)

	r.cache.Invalidate(CacheKeyProducts)
	return doc, nil
}

// UpdateProduct replaces every form-backed field; absent optionals are
// unset. The edit form always submits the full product.
func (r *Repository) UpdateProduct(ctx context.Context, id bson.ObjectID, data forms.ProductData) error {
	set := bson.M{
		"name":          data.Name,
		"slug":          data.Slug,
		"stockQuantity": data.StockQuantity,
		"status":        data.Status,
		"updatedAt":     time.Now().UTC(),
	}
	unset := bson.M{}

	setOrUnset := func(field string, present bool, value any) {
		if present {
			set[field] = value
		} else {
			unset[field] = ""
		}
	}
	setOrUnset("description", data.Description != nil, data.Description)
	setOrUnset("price", data.Price != nil, data.Price)
	setOrUnset("categoryId", data.CategoryID != nil, data.CategoryID)
	setOrUnset("imageUrl", data.ImageURL != nil, data.ImageURL)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.products.UpdateByID(ctx, id, update)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	r.cache.Invalidate(CacheKeyProducts)
	return nil
}

// DeleteProduct removes a product and returns the deleted document so the
// caller can clean up its stored image.
func (r *Repository) DeleteProduct(ctx context.Context, id bson.ObjectID) (models.Product, error) {
	var p models.Product
	if err := r.products.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	r.cache.Invalidate(CacheKeyProducts)
	return p, nil
}

// SetProductImage points a product at a freshly uploaded image URL.
func (r *Repository) SetProductImage(ctx context.Context, id bson.ObjectID, url string) error {
	res, err := r.products.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"imageUrl":  url,
			"updatedAt": time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	r.cache.Invalidate(CacheKeyProducts)
	return nil
}

// ResolveCategories attaches each product's category by id. A reference to
// a category that no longer exists resolves to nil (uncategorized) rather
// than failing.
func ResolveCategories(products []models.Product, categories []models.Category) []models.Product {
	byID := make(map[bson.ObjectID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.Id] = c
	}

	out := make([]models.Product, len(products))
	for i, p := range products {
		p.Category = nil
		if p.CategoryID != nil {
			if c, ok := byID[*p.CategoryID]; ok {
				cat := c
				p.Category = &cat
			}
		}
		out[i] = p
	}
	return out
}

func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	return strings.Contains(err.Error(), "E11000 duplicate key error")
}
