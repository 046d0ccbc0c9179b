// Package mocks 提供仓储接口的 testify mock 实现
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/repository"
)

var (
	_ repository.ProfileRepository       = (*ProfileRepository)(nil)
	_ repository.SessionRepository       = (*SessionRepository)(nil)
	_ repository.CustomerRepository      = (*CustomerRepository)(nil)
	_ repository.CustomerPICRepository   = (*CustomerPICRepository)(nil)
	_ repository.ProjectRepository       = (*ProjectRepository)(nil)
	_ repository.ProjectUpdateRepository = (*ProjectUpdateRepository)(nil)
	_ repository.OperationLogRepository  = (*OperationLogRepository)(nil)
)

// ProfileRepository mock
type ProfileRepository struct{ mock.Mock }

func (m *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *ProfileRepository) UpdateFullName(ctx context.Context, id primitive.ObjectID, fullName string) error {
	return m.Called(ctx, id, fullName).Error(0)
}

func (m *ProfileRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// SessionRepository mock
type SessionRepository struct{ mock.Mock }

func (m *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

func (m *SessionRepository) Revoke(ctx context.Context, sessionID string, at time.Time) error {
	return m.Called(ctx, sessionID, at).Error(0)
}

func (m *SessionRepository) RevokeOthers(ctx context.Context, userID, keepSessionID string, at time.Time) error {
	return m.Called(ctx, userID, keepSessionID, at).Error(0)
}

// CustomerRepository mock
type CustomerRepository struct{ mock.Mock }

func (m *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *CustomerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CustomerRepository) Names(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	args := m.Called(ctx, ids)
	n, _ := args.Get(0).(map[primitive.ObjectID]string)
	return n, args.Error(1)
}

// CustomerPICRepository mock
type CustomerPICRepository struct{ mock.Mock }

func (m *CustomerPICRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.CustomerPIC, error) {
	args := m.Called(ctx, customerID)
	p, _ := args.Get(0).([]models.CustomerPIC)
	return p, args.Error(1)
}

func (m *CustomerPICRepository) Create(ctx context.Context, pic *models.CustomerPIC) error {
	return m.Called(ctx, pic).Error(0)
}

func (m *CustomerPICRepository) Update(ctx context.Context, pic *models.CustomerPIC) error {
	return m.Called(ctx, pic).Error(0)
}

func (m *CustomerPICRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CustomerPICRepository) DeleteByCustomer(ctx context.Context, customerID primitive.ObjectID) error {
	return m.Called(ctx, customerID).Error(0)
}

// ProjectRepository mock
type ProjectRepository struct{ mock.Mock }

func (m *ProjectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, error) {
	args := m.Called(ctx, filter)
	p, _ := args.Get(0).([]models.Project)
	return p, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func (m *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProjectRepository) CountByCustomer(ctx context.Context, customerID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) Touch(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// ProjectUpdateRepository mock
type ProjectUpdateRepository struct{ mock.Mock }

func (m *ProjectUpdateRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectUpdate, error) {
	args := m.Called(ctx, projectID)
	u, _ := args.Get(0).([]models.ProjectUpdate)
	return u, args.Error(1)
}

func (m *ProjectUpdateRepository) LatestByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ProjectUpdate, error) {
	args := m.Called(ctx, projectIDs)
	u, _ := args.Get(0).(map[primitive.ObjectID]models.ProjectUpdate)
	return u, args.Error(1)
}

func (m *ProjectUpdateRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.ProjectUpdate, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.ProjectUpdate)
	return u, args.Error(1)
}

func (m *ProjectUpdateRepository) Create(ctx context.Context, update *models.ProjectUpdate) error {
	return m.Called(ctx, update).Error(0)
}

func (m *ProjectUpdateRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProjectUpdateRepository) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error {
	return m.Called(ctx, projectID).Error(0)
}

// OperationLogRepository mock
type OperationLogRepository struct{ mock.Mock }

func (m *OperationLogRepository) Insert(ctx context.Context, log *models.OperationLog) error {
	return m.Called(ctx, log).Error(0)
}
