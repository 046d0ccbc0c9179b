package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/repository"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// ProjectUpdateService 项目进展
type ProjectUpdateService struct {
	projects repository.ProjectRepository
	updates  repository.ProjectUpdateRepository
	now      func() time.Time
}

// NewProjectUpdateService 创建项目进展服务
func NewProjectUpdateService(projects repository.ProjectRepository, updates repository.ProjectUpdateRepository) *ProjectUpdateService {
	return &ProjectUpdateService{projects: projects, updates: updates, now: time.Now}
}

func (s *ProjectUpdateService) getProject(ctx context.Context, id string) (*models.Project, error) {
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

// List 项目进展，最新的在前
func (s *ProjectUpdateService) List(ctx context.Context, projectID string) ([]models.ProjectUpdate, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	updates, err := s.updates.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("查询项目进展失败: %w", err)
	}
	return updates, nil
}

// Add 新增进展并刷新项目更新时间
func (s *ProjectUpdateService) Add(ctx context.Context, projectID, text string, user *models.CurrentUser) (*models.ProjectUpdate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.CreateBadRequestError("update text is required")
	}
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	update := &models.ProjectUpdate{
		ProjectID:     project.ID,
		UpdateText:    text,
		CreatedAt:     now,
		CreatedBy:     user.ID,
		CreatedByName: user.Name,
	}
	if err := s.updates.Create(ctx, update); err != nil {
		return nil, fmt.Errorf("创建项目进展失败: %w", err)
	}

	// 刷新失败不影响进展本身
	if err := s.projects.Touch(ctx, project.ID, now); err != nil {
		utils.LogError(err, map[string]interface{}{"projectId": project.ID.Hex()}, "更新项目时间失败")
	}
	return update, nil
}

// Delete 删除进展，仅作者或管理员
func (s *ProjectUpdateService) Delete(ctx context.Context, updateID string, user *models.CurrentUser) error {
	objID, err := parseObjectID(updateID, "project update")
	if err != nil {
		return err
	}
	update, err := s.updates.Get(ctx, objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.CreateNotFoundError("project update")
		}
		return fmt.Errorf("查询项目进展失败: %w", err)
	}
	if !user.IsAdmin() && update.CreatedBy != user.ID {
		return utils.CreateForbiddenError("only the author or an admin can delete this update")
	}

	if err := s.updates.Delete(ctx, objID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.CreateNotFoundError("project update")
		}
		return fmt.Errorf("删除项目进展失败: %w", err)
	}
	return nil
}
