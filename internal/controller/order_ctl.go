package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/middleware"
	"storefront_v1_202608/internal/service"
)

// ==================== OrderController 订单控制器 ====================

type OrderController struct {
	orderSvc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderSvc *service.OrderService) *OrderController {
	return &OrderController{orderSvc: orderSvc}
}

// Create 公开结账提交（无需登录）
// @Summary 公开结账提交
// @Description 按 slug 给店铺下单；伪造的 slug 直接 404
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Param request body dto.OrderCreateReq true "结账参数"
// @Success 200 {object} model.Order "创建的订单，状态固定为 new"
// @Failure 400 {object} map[string]string "必填字段缺失"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.OrderCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	order, err := c.orderSvc.CreateOrder(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// List 店铺订单列表
// @Summary 店铺订单列表
// @Description 当前店铺的订单，按创建时间倒序
// @Tags Order (订单)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Router /api/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	orders, err := c.orderSvc.ListOrders(ctx.Request.Context(), store.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// Get 订单详情
// @Summary 订单详情
// @Tags Order (订单)
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Success 200 {object} model.Order
// @Failure 404 {object} map[string]string "订单不存在或不属于当前店铺"
// @Router /api/orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的订单ID"})
		return
	}

	order, err := c.orderSvc.GetOrder(ctx.Request.Context(), store.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// UpdateStatus 修改订单状态
// @Summary 修改订单状态
// @Description 店主修改订单状态（自由文本，常见取值 new/processing/fulfilled）
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Param request body dto.OrderStatusReq true "新状态"
// @Success 200 {object} model.Order
// @Failure 400 {object} map[string]string "status 为空"
// @Failure 404 {object} map[string]string "订单不存在或不属于当前店铺"
// @Router /api/orders/{id}/status [put]
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的订单ID"})
		return
	}

	var req dto.OrderStatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	order, err := c.orderSvc.UpdateStatus(ctx.Request.Context(), store.ID, id, req.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}
