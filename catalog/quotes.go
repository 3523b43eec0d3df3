package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/circusplayer/qjwc/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (r *Repository) CreateQuote(ctx context.Context, q models.Quote) (models.Quote, error) {
	now := time.Now().UTC()
	q.Status = models.QuoteStatusNew
	q.CreatedAt = now
	q.UpdatedAt = now

	res, err := r.quotes.InsertOne(ctx, q)
	if err != nil {
		return models.Quote{}, err
	}
	q.ID = res.InsertedID.(bson.ObjectID)
	return q, nil
}

func (r *Repository) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.quotes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Quote, 0)
	for cursor.Next(ctx) {
		var q models.Quote
		if err := cursor.Decode(&q); err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	return items, cursor.Err()
}

func (r *Repository) GetQuote(ctx context.Context, id bson.ObjectID) (models.Quote, error) {
	var q models.Quote
	if err := r.quotes.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Quote{}, ErrNotFound
		}
		return models.Quote{}, err
	}
	return q, nil
}

func (r *Repository) UpdateQuoteStatus(ctx context.Context, id bson.ObjectID, status models.QuoteStatus) error {
	res, err := r.quotes.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
