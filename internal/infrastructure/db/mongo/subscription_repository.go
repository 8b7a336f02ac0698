package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

// SubscriptionRepository reads and expires records in the payments collection.
type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{coll: db.Collection(collectionPayments)}
}

func (r *SubscriptionRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":      bson.M{"$ne": domain.SubscriptionExpired},
		"expiry_date": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{"status": domain.SubscriptionExpired}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("expire subscriptions: %w", err)
	}
	return res.ModifiedCount, nil
}
