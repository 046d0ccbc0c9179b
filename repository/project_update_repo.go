package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/sales_tracker/models"
)

type mongoProjectUpdateRepository struct {
	coll *mongo.Collection
}

// NewProjectUpdateRepository 项目进展仓储
func NewProjectUpdateRepository(db *mongo.Database) ProjectUpdateRepository {
	return &mongoProjectUpdateRepository{coll: db.Collection(ProjectUpdatesCollection)}
}

// ListByProject 最新的在前
func (r *mongoProjectUpdateRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectUpdate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	updates := []models.ProjectUpdate{}
	if err := cursor.All(ctx, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// LatestByProjects 通过聚合取每个项目最近一条进展
func (r *mongoProjectUpdateRepository) LatestByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ProjectUpdate, error) {
	latest := make(map[primitive.ObjectID]models.ProjectUpdate, len(projectIDs))
	if len(projectIDs) == 0 {
		return latest, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"projectId": bson.M{"$in": projectIDs}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$projectId",
			"latest": bson.M{"$first": "$$ROOT"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ProjectID primitive.ObjectID   `bson:"_id"`
		Latest    models.ProjectUpdate `bson:"latest"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		latest[row.ProjectID] = row.Latest
	}
	return latest, nil
}

func (r *mongoProjectUpdateRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.ProjectUpdate, error) {
	var update models.ProjectUpdate
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&update); err != nil {
		return nil, mapError(err)
	}
	return &update, nil
}

func (r *mongoProjectUpdateRepository) Create(ctx context.Context, update *models.ProjectUpdate) error {
	if update.ID.IsZero() {
		update.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, update)
	return mapError(err)
}

func (r *mongoProjectUpdateRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProjectUpdateRepository) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"projectId": projectID})
	return mapError(err)
}
