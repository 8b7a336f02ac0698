package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickmymaid/content-api/internal/core/domain"
	"github.com/pickmymaid/content-api/internal/core/ports"
)

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(collectionBlogs)}
}

var summaryProjection = bson.M{"slug": 1, "title": 1, "description": 1, "thumbnail": 1, "edited_at": 1}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var post domain.Post
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, slug string, u ports.PostUpdate) error {
	set := bson.M{
		"title":       u.Title,
		"description": u.Description,
		"content":     u.Content,
		"edited_at":   u.EditedAt,
	}
	if u.Thumbnail != "" {
		set["thumbnail"] = u.Thumbnail
	}

	res, err := r.update(ctx, slug, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// List returns page (1-based) of size limit, newest edit first, and the total count.
func (r *PostRepository) List(ctx context.Context, page, limit int) ([]domain.PostSummary, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "edited_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	items, err := r.findSummaries(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostRepository) ListAll(ctx context.Context) ([]domain.PostSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "edited_at", Value: -1}})
	return r.findSummaries(ctx, opts)
}

func (r *PostRepository) findSummaries(ctx context.Context, opts *options.FindOptions) ([]domain.PostSummary, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}

	items := []domain.PostSummary{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return items, nil
}

func (r *PostRepository) AddComment(ctx context.Context, slug string, comment domain.Comment) error {
	res, err := r.update(ctx, slug, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// DeleteComment pulls exactly the comment with commentID; siblings keep their order.
func (r *PostRepository) DeleteComment(ctx context.Context, slug, commentID string) error {
	res, err := r.update(ctx, slug, bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// ToggleLike adds or removes userID from the liker set in a single update pipeline,
// so concurrent toggles never lose a write.
func (r *PostRepository) ToggleLike(ctx context.Context, slug, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid := bson.D{{Key: "$literal", Value: userID}}
	likes := bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$in", Value: bson.A{uid, likes}}},
			bson.D{{Key: "$setDifference", Value: bson.A{likes, bson.A{uid}}}},
			bson.D{{Key: "$concatArrays", Value: bson.A{likes, bson.A{uid}}}},
		}}}}}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var doc struct {
		Likes []string `bson:"likes"`
	}
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"slug": slug}, pipeline, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, domain.ErrPostNotFound
		}
		return false, fmt.Errorf("toggle like: %w", err)
	}

	for _, id := range doc.Likes {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *PostRepository) update(ctx context.Context, slug string, update bson.M) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"slug": slug}, update)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return res, nil
}
