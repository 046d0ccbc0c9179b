package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/repository"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// CustomerService 客户及联系人
type CustomerService struct {
	customers repository.CustomerRepository
	pics      repository.CustomerPICRepository
	projects  repository.ProjectRepository
	now       func() time.Time
}

// NewCustomerService 创建客户服务
func NewCustomerService(customers repository.CustomerRepository, pics repository.CustomerPICRepository, projects repository.ProjectRepository) *CustomerService {
	return &CustomerService{customers: customers, pics: pics, projects: projects, now: time.Now}
}

// parseObjectID 解析路径中的ID，非法ID按不存在处理
func parseObjectID(id, resource string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, utils.CreateNotFoundError(resource)
	}
	return objID, nil
}

// List 按名称排序
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询客户失败: %w", err)
	}
	return customers, nil
}

// Get 客户详情，包含联系人
func (s *CustomerService) Get(ctx context.Context, id string) (*models.CustomerDetail, error) {
	objID, err := parseObjectID(id, "customer")
	if err != nil {
		return nil, err
	}
	customer, err := s.getCustomer(ctx, objID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, customer)
}

func (s *CustomerService) getCustomer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateNotFoundError("customer")
		}
		return nil, fmt.Errorf("查询客户失败: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) detail(ctx context.Context, customer *models.Customer) (*models.CustomerDetail, error) {
	pics, err := s.pics.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("查询联系人失败: %w", err)
	}
	return &models.CustomerDetail{Customer: *customer, PICs: pics}, nil
}

func validateCustomerRequest(req *models.CustomerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return utils.CreateBadRequestError("name is required")
	}
	if !req.Sector.IsValid() {
		return utils.CreateBadRequestError("invalid sector").
			WithDetails(map[string]interface{}{"allowed": models.CustomerSectors})
	}
	return nil
}

func picFromInput(customerID primitive.ObjectID, in models.CustomerPICInput) models.CustomerPIC {
	t := in.Trimmed()
	return models.CustomerPIC{
		CustomerID: customerID,
		NamaPIC:    t.NamaPIC,
		Email:      t.Email,
		NoHP:       t.NoHP,
		Jabatan:    t.Jabatan,
	}
}

// Create 新建客户，空联系人行被忽略
func (s *CustomerService) Create(ctx context.Context, req models.CustomerRequest) (*models.CustomerDetail, error) {
	if err := validateCustomerRequest(&req); err != nil {
		return nil, err
	}
	for _, in := range req.PICs {
		if strings.TrimSpace(in.ID) != "" {
			return nil, utils.CreateBadRequestError("new customer cannot reference existing PICs")
		}
	}

	now := s.now()
	customer := &models.Customer{Name: req.Name, Sector: req.Sector, CreatedAt: now, UpdatedAt: now}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("创建客户失败: %w", err)
	}

	for _, in := range req.PICs {
		if in.IsEmpty() {
			continue
		}
		pic := picFromInput(customer.ID, in)
		if err := s.pics.Create(ctx, &pic); err != nil {
			return nil, fmt.Errorf("创建联系人失败: %w", err)
		}
	}

	utils.Logger.Info().Str("customerId", customer.ID.Hex()).Msg("新建客户")
	return s.detail(ctx, customer)
}

// Update 更新客户并同步联系人：请求中没有的删除，带ID的更新，不带ID的非空行新增
func (s *CustomerService) Update(ctx context.Context, id string, req models.CustomerRequest) (*models.CustomerDetail, error) {
	objID, err := parseObjectID(id, "customer")
	if err != nil {
		return nil, err
	}
	if err := validateCustomerRequest(&req); err != nil {
		return nil, err
	}
	customer, err := s.getCustomer(ctx, objID)
	if err != nil {
		return nil, err
	}

	stored, err := s.pics.ListByCustomer(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("查询联系人失败: %w", err)
	}
	existing := make(map[primitive.ObjectID]bool, len(stored))
	for _, p := range stored {
		existing[p.ID] = true
	}

	// 先校验全部联系人ID，避免部分写入
	keep := make(map[primitive.ObjectID]bool, len(req.PICs))
	picIDs := make([]primitive.ObjectID, len(req.PICs))
	for i, in := range req.PICs {
		raw := strings.TrimSpace(in.ID)
		if raw == "" {
			continue
		}
		picID, err := primitive.ObjectIDFromHex(raw)
		if err != nil || !existing[picID] {
			return nil, utils.CreateBadRequestError(fmt.Sprintf("unknown PIC id %q", raw))
		}
		keep[picID] = true
		picIDs[i] = picID
	}

	customer.Name = req.Name
	customer.Sector = req.Sector
	customer.UpdatedAt = s.now()
	if err := s.customers.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateNotFoundError("customer")
		}
		return nil, fmt.Errorf("更新客户失败: %w", err)
	}

	for _, p := range stored {
		if keep[p.ID] {
			continue
		}
		if err := s.pics.Delete(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("删除联系人失败: %w", err)
		}
	}

	for i, in := range req.PICs {
		pic := picFromInput(objID, in)
		if !picIDs[i].IsZero() {
			pic.ID = picIDs[i]
			if err := s.pics.Update(ctx, &pic); err != nil {
				return nil, fmt.Errorf("更新联系人失败: %w", err)
			}
			continue
		}
		if in.IsEmpty() {
			continue
		}
		if err := s.pics.Create(ctx, &pic); err != nil {
			return nil, fmt.Errorf("创建联系人失败: %w", err)
		}
	}

	return s.detail(ctx, customer)
}

// HasProjects 客户下是否还有项目
func (s *CustomerService) HasProjects(ctx context.Context, customerID primitive.ObjectID) (bool, error) {
	count, err := s.projects.CountByCustomer(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("查询客户项目失败: %w", err)
	}
	return count > 0, nil
}

// Delete 删除客户，仅管理员可操作，有关联项目时拒绝
func (s *CustomerService) Delete(ctx context.Context, id string, user *models.CurrentUser) error {
	if !user.IsAdmin() {
		return utils.CreateForbiddenError("only admins can delete customers")
	}
	objID, err := parseObjectID(id, "customer")
	if err != nil {
		return err
	}
	if _, err := s.getCustomer(ctx, objID); err != nil {
		return err
	}

	hasProjects, err := s.HasProjects(ctx, objID)
	if err != nil {
		return err
	}
	if hasProjects {
		return utils.CreateConflictError("customer still has projects")
	}

	if err := s.pics.DeleteByCustomer(ctx, objID); err != nil {
		return fmt.Errorf("删除联系人失败: %w", err)
	}
	if err := s.customers.Delete(ctx, objID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.CreateNotFoundError("customer")
		}
		return fmt.Errorf("删除客户失败: %w", err)
	}

	utils.Logger.Info().Str("customerId", objID.Hex()).Str("operator", user.ID).Msg("删除客户")
	return nil
}
