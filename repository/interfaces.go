package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BerniceZTT/sales_tracker/models"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 唯一索引冲突
	ErrDuplicate = errors.New("duplicate record")
)

// ProfileRepository 用户资料
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	UpdateFullName(ctx context.Context, id primitive.ObjectID, fullName string) error
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

// SessionRepository 登录会话
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Revoke(ctx context.Context, sessionID string, at time.Time) error
	RevokeOthers(ctx context.Context, userID, keepSessionID string, at time.Time) error
}

// CustomerRepository 客户
type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Names(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

// CustomerPICRepository 客户联系人
type CustomerPICRepository interface {
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.CustomerPIC, error)
	Create(ctx context.Context, pic *models.CustomerPIC) error
	Update(ctx context.Context, pic *models.CustomerPIC) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByCustomer(ctx context.Context, customerID primitive.ObjectID) error
}

// ProjectFilter 项目查询条件，零值表示不过滤
type ProjectFilter struct {
	ProgressType models.ProgressType
	CustomerID   primitive.ObjectID
}

// ProjectRepository 项目
type ProjectRepository interface {
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByCustomer(ctx context.Context, customerID primitive.ObjectID) (int64, error)
	Touch(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// ProjectUpdateRepository 项目进展
type ProjectUpdateRepository interface {
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectUpdate, error)
	LatestByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ProjectUpdate, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.ProjectUpdate, error)
	Create(ctx context.Context, update *models.ProjectUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error
}

// OperationLogRepository 操作日志
type OperationLogRepository interface {
	Insert(ctx context.Context, log *models.OperationLog) error
}
