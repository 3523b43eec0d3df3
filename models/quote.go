package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type QuoteStatus string

const (
	QuoteStatusNew        QuoteStatus = "NEW"
	QuoteStatusInProgress QuoteStatus = "IN_PROGRESS"
	QuoteStatusClosed     QuoteStatus = "CLOSED"
)

// Quote is a contact/quote request submitted from the public site.
type Quote struct {
	ID bson.ObjectID `bson:"_id,omitempty" json:"id"`

	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Subject string `bson:"subject" json:"subject"`
	Message string `bson:"message" json:"message"`

	Status QuoteStatus `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
