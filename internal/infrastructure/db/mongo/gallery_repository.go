package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

type GalleryRepository struct {
	coll *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{coll: db.Collection(collectionGalleries)}
}

func (r *GalleryRepository) Create(ctx context.Context, img *domain.GalleryImage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, img); err != nil {
		return fmt.Errorf("insert gallery image: %w", err)
	}
	return nil
}

func (r *GalleryRepository) List(ctx context.Context, category string, page, limit int) ([]domain.GalleryImage, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["type"] = category
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count gallery: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find gallery: %w", err)
	}

	images := []domain.GalleryImage{}
	if err := cur.All(ctx, &images); err != nil {
		return nil, 0, fmt.Errorf("decode gallery: %w", err)
	}
	return images, total, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) (*domain.GalleryImage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var img domain.GalleryImage
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&img); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("delete gallery image: %w", err)
	}
	return &img, nil
}
