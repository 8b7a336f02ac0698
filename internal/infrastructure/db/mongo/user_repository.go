package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickmymaid/content-api/internal/core/domain"
)

// UserRepository stores one kind of user. Customers and admins live in separate
// collections but share the document shape.
type UserRepository struct {
	coll *mongo.Collection
	kind domain.UserKind
}

func NewCustomerRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionCustomers), kind: domain.KindCustomer}
}

func NewAdminRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionAdmins), kind: domain.KindAdmin}
}

type userDocument struct {
	UserID         string    `bson:"user_id"`
	FirstName      string    `bson:"first_name,omitempty"`
	LastName       string    `bson:"last_name,omitempty"`
	Name           string    `bson:"name,omitempty"`
	Email          string    `bson:"email"`
	Phone          string    `bson:"phone,omitempty"`
	Password       string    `bson:"password"`
	ResetToken     string    `bson:"reset_token,omitempty"`
	ResetExpiresAt time.Time `bson:"reset_expires_at,omitempty"`
	IsSuperAdmin   bool      `bson:"is_super_admin,omitempty"`
	Status         string    `bson:"status,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toUserDocument(u *domain.User) userDocument {
	return userDocument{
		UserID:         u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Password:       u.PasswordHash,
		ResetToken:     u.ResetTokenHash,
		ResetExpiresAt: u.ResetExpiresAt,
		IsSuperAdmin:   u.IsSuperAdmin,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *UserRepository) toDomain(d userDocument) *domain.User {
	return &domain.User{
		ID:             d.UserID,
		Kind:           r.kind,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		PasswordHash:   d.Password,
		ResetTokenHash: d.ResetToken,
		ResetExpiresAt: d.ResetExpiresAt,
		IsSuperAdmin:   d.IsSuperAdmin,
		Status:         d.Status,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert %s: %w", r.kind, err)
	}

	created := *user
	created.Kind = r.kind
	return &created, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find %s: %w", r.kind, err)
	}
	return r.toDomain(doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"user_id": id})
}

func (r *UserRepository) FindByResetTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	if hash == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"reset_token": hash})
}

// FindByIDs returns the users that exist among ids; missing ids are skipped.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"user_id": 1, "first_name": 1, "last_name": 1, "name": 1})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s by ids: %w", r.kind, err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.kind, err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, r.toDomain(d))
	}
	return users, nil
}

// UpdatePassword sets the new hash and drops the reset token in one write, so a
// consumed reset link cannot be replayed.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	update := bson.M{
		"$set":   bson.M{"password": passwordHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_token": "", "reset_expires_at": ""},
	}
	return r.updateOne(ctx, bson.M{"email": email}, update)
}

func (r *UserRepository) SetResetToken(ctx context.Context, email, hash string, expiresAt time.Time) error {
	update := bson.M{"$unset": bson.M{"reset_token": "", "reset_expires_at": ""}}
	if hash != "" {
		update = bson.M{"$set": bson.M{"reset_token": hash, "reset_expires_at": expiresAt}}
	}
	return r.updateOne(ctx, bson.M{"email": email}, update)
}

func (r *UserRepository) SetStatus(ctx context.Context, id, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	return r.updateOne(ctx, bson.M{"user_id": id}, update)
}

// ToggleSuperAdmin flips is_super_admin server side and returns the updated admin.
func (r *UserRepository) ToggleSuperAdmin(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "is_super_admin", Value: bson.D{{Key: "$not", Value: bson.A{"$is_super_admin"}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": id}, pipeline, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("toggle super admin: %w", err)
	}
	return r.toDomain(doc), nil
}

func (r *UserRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.kind, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
