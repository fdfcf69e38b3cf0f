package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mindsync/wellness/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// withoutPassword is the default projection for user reads.
var withoutPassword = bson.D{{Key: "password_hash", Value: 0}}

type mongoUserRepository struct {
	users *mongo.Collection
}

// NewMongoUserRepository stores users as documents keyed by a string UUID and
// ensures the unique email index exists.
func NewMongoUserRepository(ctx context.Context, db *mongo.Database) (UserRepository, error) {
	users := db.Collection(usersCollection)

	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &mongoUserRepository{users: users}, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *mongoUserRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}}, options.FindOne().SetProjection(withoutPassword))
}

func (r *mongoUserRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, options.FindOne())
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id string, changes model.ProfileChanges) (*model.User, error) {
	set := bson.D{{Key: "updated_at", Value: time.Now().UTC()}}
	add := func(key string, value any) {
		set = append(set, bson.E{Key: key, Value: value})
	}

	if changes.Name != nil {
		add("name", *changes.Name)
	}
	if changes.Bio != nil {
		add("bio", *changes.Bio)
	}
	if changes.Location != nil {
		add("location", *changes.Location)
	}
	if changes.Phone != nil {
		add("phone", *changes.Phone)
	}
	if changes.Age != nil {
		add("age", *changes.Age)
	}
	if changes.Gender != nil {
		add("gender", *changes.Gender)
	}
	if changes.Goal != nil {
		add("goal", *changes.Goal)
	}
	if changes.PhotoPath != nil {
		add("photo_path", *changes.PhotoPath)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	user := &model.User{}
	err := r.users.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.D, opts *options.FindOneOptions) (*model.User, error) {
	user := &model.User{}
	err := r.users.FindOne(ctx, filter, opts).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
