package dto

type UpdateQuoteStatusDTO struct {
	Status string `json:"status" binding:"required"`
}
