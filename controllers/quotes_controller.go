package controllers

import (
	"net/http"

	"github.com/circusplayer/qjwc/dto"
	"github.com/circusplayer/qjwc/forms"
	"github.com/circusplayer/qjwc/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func CreateQuote(store QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.QuoteForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		data, errs := form.Validate()
		if errs.Any() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		q, err := store.CreateQuote(c.Request.Context(), models.Quote{
			Name:    data.Name,
			Email:   data.Email,
			Phone:   data.Phone,
			Subject: data.Subject,
			Message: data.Message,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": q.ID})
	}
}

func GetQuotes(store QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := store.ListQuotes(c.Request.Context())
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

func GetQuote(store QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
			return
		}

		q, err := store.GetQuote(c.Request.Context(), id)
		if err != nil {
			storeError(c, err, "quote not found")
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

func UpdateQuoteStatus(store QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
			return
		}

		var body dto.UpdateQuoteStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := models.QuoteStatus(body.Status)
		switch status {
		case models.QuoteStatusNew, models.QuoteStatusInProgress, models.QuoteStatusClosed:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		if err := store.UpdateQuoteStatus(c.Request.Context(), id, status); err != nil {
			storeError(c, err, "quote not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
