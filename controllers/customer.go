package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/service"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// CustomerController 客户接口
type CustomerController struct {
	customers *service.CustomerService
}

// NewCustomerController 创建客户控制器
func NewCustomerController(customers *service.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

// GetCustomerList 客户列表
func (h *CustomerController) GetCustomerList(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	customers, err := h.customers.List(ctx)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"customers": customers,
		"sectors":   models.CustomerSectors,
	}, "")
}

// GetCustomerDetail 客户详情
func (h *CustomerController) GetCustomerDetail(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	detail, err := h.customers.Get(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, detail, "")
}

// CreateCustomer 新建客户
func (h *CustomerController) CreateCustomer(c *gin.Context) {
	var req models.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	detail, err := h.customers.Create(ctx, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, detail, "customer created", http.StatusCreated)
}

// UpdateCustomer 更新客户
func (h *CustomerController) UpdateCustomer(c *gin.Context) {
	var req models.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	detail, err := h.customers.Update(ctx, c.Param("id"), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, detail, "customer updated")
}

// DeleteCustomer 删除客户
func (h *CustomerController) DeleteCustomer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.customers.Delete(ctx, c.Param("id"), user); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "customer deleted")
}
