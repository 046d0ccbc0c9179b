package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/utils"
)

type mongoProjectRepository struct {
	coll *mongo.Collection
}

// NewProjectRepository 项目仓储
func NewProjectRepository(db *mongo.Database) ProjectRepository {
	return &mongoProjectRepository{coll: db.Collection(ProjectsCollection)}
}

// buildProjectFilter 构建查询条件
func buildProjectFilter(filter ProjectFilter) bson.M {
	query := bson.M{}
	if filter.ProgressType != "" {
		query["progressType"] = filter.ProgressType
	}
	if !filter.CustomerID.IsZero() {
		query["customerId"] = filter.CustomerID
	}
	return query
}

// List 按创建时间倒序
func (r *mongoProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	query := buildProjectFilter(filter)
	utils.LogDbOperation("find", ProjectsCollection, query)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *mongoProjectRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		return nil, mapError(err)
	}
	return &project, nil
}

func (r *mongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	utils.LogDbOperation("insertOne", ProjectsCollection, bson.M{"noQuote": project.NoQuote})
	_, err := r.coll.InsertOne(ctx, project)
	return mapError(err)
}

func (r *mongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": project.ID}, bson.M{"$set": bson.M{
		"noQuote":       project.NoQuote,
		"projectName":   project.ProjectName,
		"customerId":    project.CustomerID,
		"value":         project.Value,
		"progressType":  project.ProgressType,
		"prospect":      project.Prospect,
		"createdBy":     project.CreatedBy,
		"createdByName": project.CreatedByName,
		"updatedAt":     project.UpdatedAt,
	}})
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByCustomer 客户下的项目数量，删除客户前检查
func (r *mongoProjectRepository) CountByCustomer(ctx context.Context, customerID primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"customerId": customerID})
}

// Touch 新增进展时刷新项目更新时间
func (r *mongoProjectRepository) Touch(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"updatedAt": at}})
	return mapError(err)
}
