package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerniceZTT/sales_tracker/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// 集合名
	ProfilesCollection         = "profiles"
	SessionsCollection         = "sessions"
	CustomersCollection        = "customers"
	CustomerPICsCollection     = "customer_pics"
	ProjectsCollection         = "projects"
	ProjectUpdatesCollection   = "project_updates"
	ApiOperationLogsCollection = "apiOperationLogs"
)

// AllCollections 服务使用的全部集合
var AllCollections = []string{
	ProfilesCollection,
	SessionsCollection,
	CustomersCollection,
	CustomerPICsCollection,
	ProjectsCollection,
	ProjectUpdatesCollection,
	ApiOperationLogsCollection,
}

// MongoStore 持有 MongoDB 连接
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// InitMongoDB 初始化MongoDB连接
func InitMongoDB(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	// 设置连接超时
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("连接MongoDB失败: %w", err)
	}

	// 检查连接
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB失败: %w", err)
	}

	utils.Logger.Info().Str("database", dbName).Msg("已连接到MongoDB")
	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

// DB 返回数据库实例
func (s *MongoStore) DB() *mongo.Database {
	return s.db
}

// Ping 检查连接
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// CloseMongoDB 关闭MongoDB连接
func (s *MongoStore) CloseMongoDB(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.Disconnect(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("断开MongoDB连接失败")
		return
	}
	utils.Logger.Info().Msg("已断开MongoDB连接")
}

// EnsureIndexes 创建索引，可重复执行
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		ProfilesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		SessionsCollection: {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			// 过期会话由 MongoDB 自动清理
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		CustomersCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		CustomerPICsCollection: {
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
		},
		ProjectsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "progressType", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
		},
		ProjectUpdatesCollection: {
			{Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ApiOperationLogsCollection: {
			{Keys: bson.D{{Key: "operationTime", Value: -1}}},
		},
	}

	for _, collName := range AllCollections {
		models := indexes[collName]
		if len(models) == 0 {
			continue
		}
		err := ExecuteDbOperation(ctx, 3, func() error {
			_, err := s.db.Collection(collName).Indexes().CreateMany(ctx, models)
			return err
		})
		if err != nil {
			return fmt.Errorf("创建索引失败 %s: %w", collName, err)
		}
		utils.Logger.Info().Str("collection", collName).Int("indexes", len(models)).Msg("索引已就绪")
	}
	return nil
}

// GetDatabaseStatus 获取数据库状态，只返回集合计数
func (s *MongoStore) GetDatabaseStatus(ctx context.Context) map[string]interface{} {
	result := make(map[string]interface{}, len(AllCollections))
	for _, collName := range AllCollections {
		count, err := s.db.Collection(collName).EstimatedDocumentCount(ctx)
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", collName).Msg("获取集合计数失败")
			result[collName] = map[string]interface{}{
				"count": 0,
				"error": err.Error(),
			}
			continue
		}
		result[collName] = map[string]interface{}{"count": count}
	}
	return result
}

// ExecuteDbOperation 执行数据库操作，提供错误处理和重试机制
func ExecuteDbOperation(ctx context.Context, retries int, operation func() error) error {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err
		// 如果是不可重试的错误，立即返回
		if !isRetryableError(err) {
			break
		}
		utils.Logger.Warn().Err(err).Msgf("数据库操作失败，重试 (%d/%d)", i+1, retries)

		// 延迟后重试
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(200*(i+1)) * time.Millisecond):
		}
	}

	return lastErr
}

// MongoDB可重试错误代码
var retryableCodes = map[int32]bool{
	6:     true, // HostUnreachable
	7:     true, // HostNotFound
	89:    true, // NetworkTimeout
	91:    true, // ShutdownInProgress
	189:   true, // PrimarySteppedDown
	10107: true, // NotWritablePrimary
	13436: true, // NotPrimaryOrSecondary
	11600: true, // InterruptedAtShutdown
	11602: true, // InterruptedDueToReplStateChange
}

// isRetryableError 判断错误是否可重试
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return retryableCodes[cmdErr.Code] || cmdErr.HasErrorLabel("RetryableWriteError")
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected)
}

// mapError 把驱动错误转换为仓储层错误
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
