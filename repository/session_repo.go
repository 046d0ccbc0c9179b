package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BerniceZTT/sales_tracker/models"
)

type mongoSessionRepository struct {
	coll *mongo.Collection
}

// NewSessionRepository 登录会话仓储，过期会话依赖 TTL 索引清理
func NewSessionRepository(db *mongo.Database) SessionRepository {
	return &mongoSessionRepository{coll: db.Collection(SessionsCollection)}
}

func (r *mongoSessionRepository) Create(ctx context.Context, session *models.Session) error {
	_, err := r.coll.InsertOne(ctx, session)
	return mapError(err)
}

func (r *mongoSessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&session); err != nil {
		return nil, mapError(err)
	}
	return &session, nil
}

func (r *mongoSessionRepository) Revoke(ctx context.Context, sessionID string, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"sessionId": sessionID, "revokedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revokedAt": at}},
	)
	return mapError(err)
}

func (r *mongoSessionRepository) RevokeOthers(ctx context.Context, userID, keepSessionID string, at time.Time) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{
			"userId":    userID,
			"sessionId": bson.M{"$ne": keepSessionID},
			"revokedAt": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{"revokedAt": at}},
	)
	return mapError(err)
}
