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

// SnippetLength 列表中进展摘要的最大字符数
const SnippetLength = 40

// UpdateSnippet 截断进展内容用于列表展示
func UpdateSnippet(text string) string {
	t := []rune(strings.TrimSpace(text))
	if len(t) <= SnippetLength {
		return string(t)
	}
	return string(t[:SnippetLength]) + "…"
}

// ParseProgressFilter 解析阶段筛选，未知值视为不过滤
func ParseProgressFilter(raw string) models.ProgressType {
	p := models.ProgressType(strings.TrimSpace(raw))
	if p.IsValid() {
		return p
	}
	return ""
}

// ProjectService 项目
type ProjectService struct {
	projects  repository.ProjectRepository
	customers repository.CustomerRepository
	updates   repository.ProjectUpdateRepository
	now       func() time.Time
}

// NewProjectService 创建项目服务
func NewProjectService(projects repository.ProjectRepository, customers repository.CustomerRepository, updates repository.ProjectUpdateRepository) *ProjectService {
	return &ProjectService{projects: projects, customers: customers, updates: updates, now: time.Now}
}

// List 项目列表，按创建时间倒序，附带客户名称和最近进展
func (s *ProjectService) List(ctx context.Context, progressType models.ProgressType) ([]models.ProjectListItem, error) {
	projects, err := s.projects.List(ctx, repository.ProjectFilter{ProgressType: progressType})
	if err != nil {
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return s.decorate(ctx, projects)
}

func (s *ProjectService) decorate(ctx context.Context, projects []models.Project) ([]models.ProjectListItem, error) {
	items := make([]models.ProjectListItem, 0, len(projects))
	if len(projects) == 0 {
		return items, nil
	}

	projectIDs := make([]primitive.ObjectID, 0, len(projects))
	seen := make(map[primitive.ObjectID]bool)
	customerIDs := make([]primitive.ObjectID, 0)
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
		if !seen[p.CustomerID] {
			seen[p.CustomerID] = true
			customerIDs = append(customerIDs, p.CustomerID)
		}
	}

	names, err := s.customers.Names(ctx, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("查询客户名称失败: %w", err)
	}
	latest, err := s.updates.LatestByProjects(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("查询最近进展失败: %w", err)
	}

	for _, p := range projects {
		item := models.ProjectListItem{Project: p, CustomerName: names[p.CustomerID]}
		if u, ok := latest[p.ID]; ok {
			item.LatestUpdate = &models.LatestUpdate{
				UpdateText: u.UpdateText,
				Snippet:    UpdateSnippet(u.UpdateText),
				CreatedAt:  u.CreatedAt,
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Get 项目详情
func (s *ProjectService) Get(ctx context.Context, id string) (*models.ProjectListItem, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.decorate(ctx, []models.Project{*project})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *ProjectService) getProject(ctx context.Context, id string) (*models.Project, error) {
	objID, err := parseObjectID(id, "project")
	if err != nil {
		return nil, err
	}
	project, err := s.projects.Get(ctx, objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateNotFoundError("project")
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return project, nil
}

// normalizeProjectRequest 校验请求并补齐默认阶段和热度
func (s *ProjectService) normalizeProjectRequest(ctx context.Context, req *models.ProjectRequest) (primitive.ObjectID, error) {
	req.NoQuote = strings.TrimSpace(req.NoQuote)
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	if req.Value == nil {
		return primitive.NilObjectID, utils.CreateBadRequestError(models.ErrInvalidAmount.Error())
	}
	if req.ProgressType == "" {
		req.ProgressType = models.ProgressBudgetary
	}
	if !req.ProgressType.IsValid() {
		return primitive.NilObjectID, utils.CreateBadRequestError("invalid progress type").
			WithDetails(map[string]interface{}{"allowed": models.ProgressTypes})
	}
	if req.Prospect == "" {
		req.Prospect = models.ProspectNormal
	}
	if !req.Prospect.IsValid() {
		return primitive.NilObjectID, utils.CreateBadRequestError("invalid prospect")
	}

	customerID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return primitive.NilObjectID, utils.CreateBadRequestError("customer does not exist")
	}
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, utils.CreateBadRequestError("customer does not exist")
		}
		return primitive.NilObjectID, fmt.Errorf("查询客户失败: %w", err)
	}
	return customerID, nil
}

// Create 新建项目，记录创建人
func (s *ProjectService) Create(ctx context.Context, req models.ProjectRequest, user *models.CurrentUser) (*models.Project, error) {
	customerID, err := s.normalizeProjectRequest(ctx, &req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	project := &models.Project{
		CreatedAt:     now,
		UpdatedAt:     now,
		NoQuote:       req.NoQuote,
		ProjectName:   req.ProjectName,
		CustomerID:    customerID,
		Value:         float64(*req.Value),
		ProgressType:  req.ProgressType,
		Prospect:      req.Prospect,
		CreatedBy:     user.ID,
		CreatedByName: user.Name,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("创建项目失败: %w", err)
	}

	utils.Logger.Info().Str("projectId", project.ID.Hex()).Str("operator", user.ID).Msg("新建项目")
	return project, nil
}

// Update 更新项目，没有创建人的项目由本次编辑者认领
func (s *ProjectService) Update(ctx context.Context, id string, req models.ProjectRequest, user *models.CurrentUser) (*models.Project, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	customerID, err := s.normalizeProjectRequest(ctx, &req)
	if err != nil {
		return nil, err
	}

	project.NoQuote = req.NoQuote
	project.ProjectName = req.ProjectName
	project.CustomerID = customerID
	project.Value = float64(*req.Value)
	project.ProgressType = req.ProgressType
	project.Prospect = req.Prospect
	project.UpdatedAt = s.now()
	if project.CreatedBy == "" {
		project.CreatedBy = user.ID
		project.CreatedByName = user.Name
	}

	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateNotFoundError("project")
		}
		return nil, fmt.Errorf("更新项目失败: %w", err)
	}
	return project, nil
}

// Delete 删除项目及其进展，仅创建人或管理员
func (s *ProjectService) Delete(ctx context.Context, id string, user *models.CurrentUser) error {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsAdmin() && project.CreatedBy != user.ID {
		return utils.CreateForbiddenError("only the creator or an admin can delete this project")
	}

	if err := s.updates.DeleteByProject(ctx, project.ID); err != nil {
		return fmt.Errorf("删除项目进展失败: %w", err)
	}
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.CreateNotFoundError("project")
		}
		return fmt.Errorf("删除项目失败: %w", err)
	}

	utils.Logger.Info().Str("projectId", project.ID.Hex()).Str("operator", user.ID).Msg("删除项目")
	return nil
}
