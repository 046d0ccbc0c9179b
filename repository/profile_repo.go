package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/utils"
)

type mongoProfileRepository struct {
	coll *mongo.Collection
}

// NewProfileRepository 基于 MongoDB 的用户仓储
func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &mongoProfileRepository{coll: db.Collection(ProfilesCollection)}
}

func (r *mongoProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	utils.LogDbOperation("insertOne", ProfilesCollection, bson.M{"email": profile.Email})
	_, err := r.coll.InsertOne(ctx, profile)
	return mapError(err)
}

func (r *mongoProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&profile); err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

func (r *mongoProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.coll.FindOne(ctx, filter).Decode(&profile); err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

func (r *mongoProfileRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.set(ctx, id, bson.M{"passwordHash": passwordHash})
}

func (r *mongoProfileRepository) UpdateFullName(ctx context.Context, id primitive.ObjectID, fullName string) error {
	return r.set(ctx, id, bson.M{"fullName": fullName})
}

func (r *mongoProfileRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProfileRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"role": role})
}
