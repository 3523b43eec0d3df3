package controllers

import (
	"net/http"
	"strings"

	"github.com/circusplayer/qjwc/catalog"
	"github.com/circusplayer/qjwc/forms"
	"github.com/circusplayer/qjwc/storage"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// GetProducts serves the full cached product list through the filter
// engine, so public consumers share the exact filtering semantics of the
// admin screens.
func GetProducts(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.ListProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		filter := catalog.ProductFilter{
			Search:       c.Query("search"),
			CategorySlug: strings.TrimSpace(c.Query("category")),
			Status:       c.Query("status"),
		}
		items := catalog.FilterProducts(products, filter)

		c.JSON(http.StatusOK, gin.H{
			"items":    items,
			"total":    len(items),
			"category": filter.CategorySlug,
		})
	}
}

func GetProduct(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := store.GetProduct(c.Request.Context(), c.Param("idOrSlug"))
		if err != nil {
			storeError(c, err, "product not found")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func AddProduct(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.ProductForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		data, errs := form.Validate()
		if errs.Any() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		data.Slug = catalog.Slugify(data.Name)
		if data.Slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name must contain letters or digits"}})
			return
		}

		p, err := store.CreateProduct(c.Request.Context(), data)
		if err != nil {
			storeError(c, err, "product not found")
			return
		}

		c.JSON(http.StatusCreated, p)
	}
}

func UpdateProduct(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var form forms.ProductForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		data, errs := form.Validate()
		if errs.Any() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		data.Slug = catalog.Slugify(data.Name)
		if data.Slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name must contain letters or digits"}})
			return
		}

		if err := store.UpdateProduct(c.Request.Context(), id, data); err != nil {
			storeError(c, err, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func DeleteProduct(store CatalogStore, objStore storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		p, err := store.DeleteProduct(ctx, id)
		if err != nil {
			storeError(c, err, "product not found")
			return
		}

		// best effort image cleanup
		if objStore != nil && p.ImageURL != nil {
			_ = storage.DeleteByURL(ctx, objStore, *p.ImageURL)
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// UploadProductImage stores a new product image and swaps the product's
// image reference. The file is rejected before any transfer if it is not
// an image or exceeds the size cap.
func UploadProductImage(store CatalogStore, objStore storage.ObjectStore, v *storage.ImageValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		p, err := store.GetProduct(ctx, id.Hex())
		if err != nil {
			storeError(c, err, "product not found")
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
			return
		}

		url, _, err := storage.UploadProductImage(ctx, objStore, v, fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := store.SetProductImage(ctx, id, url); err != nil {
			storeError(c, err, "product not found")
			return
		}

		// the old image is unreferenced now
		if p.ImageURL != nil {
			_ = storage.DeleteByURL(ctx, objStore, *p.ImageURL)
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
