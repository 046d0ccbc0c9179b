package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/service"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// ProjectController 项目与项目进展接口
type ProjectController struct {
	projects *service.ProjectService
	updates  *service.ProjectUpdateService
}

// NewProjectController 创建项目控制器
func NewProjectController(projects *service.ProjectService, updates *service.ProjectUpdateService) *ProjectController {
	return &ProjectController{projects: projects, updates: updates}
}

// GetAllProjects 项目列表，progress_type 可选
func (h *ProjectController) GetAllProjects(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.projects.List(ctx, service.ParseProgressFilter(c.Query("progress_type")))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, models.ProjectListResponse{Projects: items}, "")
}

// GetProjectDetail 项目详情
func (h *ProjectController) GetProjectDetail(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.projects.Get(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, item, "")
}

// CreateProject 新建项目
func (h *ProjectController) CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	project, err := h.projects.Create(ctx, req, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, project, "project created", http.StatusCreated)
}

// UpdateProject 更新项目
func (h *ProjectController) UpdateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	project, err := h.projects.Update(ctx, c.Param("id"), req, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, project, "project updated")
}

// DeleteProject 删除项目
func (h *ProjectController) DeleteProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.projects.Delete(ctx, c.Param("id"), user); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "project deleted")
}

// GetProjectUpdates 项目进展列表
func (h *ProjectController) GetProjectUpdates(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	updates, err := h.updates.List(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"updates": updates}, "")
}

// CreateProjectUpdate 新增项目进展
func (h *ProjectController) CreateProjectUpdate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateProjectUpdateInput
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	update, err := h.updates.Add(ctx, c.Param("id"), req.UpdateText, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, update, "update added", http.StatusCreated)
}

// DeleteProjectUpdate 删除项目进展
func (h *ProjectController) DeleteProjectUpdate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.updates.Delete(ctx, c.Param("id"), user); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "update deleted")
}
