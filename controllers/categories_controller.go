package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/circusplayer/qjwc/catalog"
	"github.com/circusplayer/qjwc/forms"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func storeError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, catalog.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func GetCategories(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := store.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

func GetCategory(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if slug := strings.TrimSpace(c.Param("slug")); slug != "" {
			cat, err := store.GetCategoryBySlug(ctx, slug)
			if err != nil {
				storeError(c, err, "category not found")
				return
			}
			c.JSON(http.StatusOK, cat)
			return
		}

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		cat, err := store.GetCategoryByID(ctx, id)
		if err != nil {
			storeError(c, err, "category not found")
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func AddCategory(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.CategoryForm
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

		cat, err := store.CreateCategory(c.Request.Context(), data)
		if err != nil {
			storeError(c, err, "category not found")
			return
		}

		c.JSON(http.StatusCreated, cat)
	}
}

func UpdateCategory(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var form forms.CategoryForm
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

		if err := store.UpdateCategory(c.Request.Context(), id, data); err != nil {
			storeError(c, err, "category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func DeleteCategory(store CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		if err := store.DeleteCategory(c.Request.Context(), id); err != nil {
			storeError(c, err, "category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
