package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/circusplayer/qjwc/catalog"
	"github.com/circusplayer/qjwc/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func categoriesRouter(store CatalogStore) *gin.Engine {
	r := gin.New()
	r.GET("/categories", GetCategories(store))
	r.GET("/categories/:id", GetCategory(store))
	r.GET("/categories/slug/:slug", GetCategory(store))
	r.POST("/admin/categories", AddCategory(store))
	r.PATCH("/admin/categories/:id", UpdateCategory(store))
	r.DELETE("/admin/categories/:id", DeleteCategory(store))
	return r
}

func TestGetCategories(t *testing.T) {
	testCases := []struct {
		name           string
		store          *mockCatalogStore
		expectedStatus int
		checkResponse  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "success with multiple categories",
			store: &mockCatalogStore{categories: []models.Category{
				{Name: "Roofing", Slug: "roofing"},
				{Name: "Steel", Slug: "steel"},
			}},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Items []models.Category `json:"items"`
					Total int               `json:"total"`
				}
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Items, 2)
				assert.Equal(t, 2, resp.Total)
				assert.Equal(t, "roofing", resp.Items[0].Slug)
			},
		},
		{
			name:           "success with empty list",
			store:          &mockCatalogStore{categories: []models.Category{}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "store failure",
			store:          &mockCatalogStore{listCategoriesErr: errors.New("db down")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performRequest(categoriesRouter(tc.store), "GET", "/categories", nil)
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestGetCategoryBySlug(t *testing.T) {
	store := &mockCatalogStore{categories: []models.Category{
		{Id: bson.NewObjectID(), Name: "Roofing", Slug: "roofing"},
	}}
	r := categoriesRouter(store)

	rec := performRequest(r, "GET", "/categories/slug/roofing", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(r, "GET", "/categories/slug/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCategory(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		store          *mockCatalogStore
		expectedStatus int
		checkResponse  func(t *testing.T, store *mockCatalogStore, rec *httptest.ResponseRecorder)
	}{
		{
			name:           "valid category is created with derived slug",
			body:           `{"name":"Structural Steel","description":"Beams and channels"}`,
			store:          &mockCatalogStore{},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, store *mockCatalogStore, rec *httptest.ResponseRecorder) {
				assert.NotNil(t, store.createdCategory)
				assert.Equal(t, "structural-steel", store.createdCategory.Slug)
				assert.Equal(t, "Structural Steel", store.createdCategory.Name)
			},
		},
		{
			name:           "validation failure aborts before any store call",
			body:           `{"name":""}`,
			store:          &mockCatalogStore{},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, store *mockCatalogStore, rec *httptest.ResponseRecorder) {
				assert.Nil(t, store.createdCategory, "no mutation on validation failure")

				var resp struct {
					Errors map[string]string `json:"errors"`
				}
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "Name is required", resp.Errors["name"])
			},
		},
		{
			name:           "symbol-only name yields no slug",
			body:           `{"name":"!!!"}`,
			store:          &mockCatalogStore{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate slug",
			body:           `{"name":"Roofing"}`,
			store:          &mockCatalogStore{createCategoryErr: catalog.ErrDuplicateSlug},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performRequest(categoriesRouter(tc.store), "POST", "/admin/categories", strings.NewReader(tc.body))
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, tc.store, rec)
			}
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	id := bson.NewObjectID()

	store := &mockCatalogStore{}
	r := categoriesRouter(store)

	rec := performRequest(r, "DELETE", "/admin/categories/"+id.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, store.deletedCategoryID)
	assert.Equal(t, id, *store.deletedCategoryID)

	rec = performRequest(r, "DELETE", "/admin/categories/not-hex", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	store.deleteCategoryErr = catalog.ErrNotFound
	rec = performRequest(r, "DELETE", "/admin/categories/"+id.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
