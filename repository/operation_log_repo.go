package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BerniceZTT/sales_tracker/models"
)

type mongoOperationLogRepository struct {
	coll *mongo.Collection
}

// NewOperationLogRepository 操作日志仓储
func NewOperationLogRepository(db *mongo.Database) OperationLogRepository {
	return &mongoOperationLogRepository{coll: db.Collection(ApiOperationLogsCollection)}
}

func (r *mongoOperationLogRepository) Insert(ctx context.Context, log *models.OperationLog) error {
	_, err := r.coll.InsertOne(ctx, log)
	return err
}
