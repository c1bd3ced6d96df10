package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/middleware"
	"storefront_v1_202608/internal/service"
)

// ==================== StoreController 店铺控制器 ====================

type StoreController struct {
	storeSvc  *service.StoreService
	tenantSvc *service.TenantService
}

// NewStoreController 创建店铺控制器
func NewStoreController(storeSvc *service.StoreService, tenantSvc *service.TenantService) *StoreController {
	return &StoreController{
		storeSvc:  storeSvc,
		tenantSvc: tenantSvc,
	}
}

// Create 开店
// @Summary 开店
// @Description 为当前用户创建店铺（含设置行）；一个用户只能开一家店
// @Tags Store (店铺管理)
// @Accept json
// @Produce json
// @Param request body dto.StoreCreateReq true "开店参数"
// @Success 200 {object} model.Store "创建的店铺"
// @Failure 400 {object} map[string]string "缺少店铺名称"
// @Failure 401 {object} map[string]string "未登录"
// @Failure 409 {object} map[string]string "已有店铺"
// @Router /api/stores/create [post]
func (c *StoreController) Create(ctx *gin.Context) {
	user := middleware.GetSessionUser(ctx)

	var req dto.StoreCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	store, err := c.storeSvc.CreateStore(ctx.Request.Context(), user.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, store)
}

// UpdateSettings 更新店铺设置
// @Summary 更新店铺设置
// @Description 更新店铺基础信息和支付设置，只更新提交了的字段
// @Tags Store (店铺管理)
// @Accept json
// @Produce json
// @Param request body dto.StoreSettingsReq true "设置参数"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "缺少 storeId"
// @Failure 404 {object} map[string]string "storeId 与会话店铺不符"
// @Router /api/stores/settings [post]
func (c *StoreController) UpdateSettings(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	var req dto.StoreSettingsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if req.StoreID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "storeId 不能为空"})
		return
	}
	// 请求体里的 storeId 只用来和会话解析出的店铺对账，绝不直接拿去查库
	// 对不上就当不存在处理，不给跨租户探测留口子
	if req.StoreID != store.ID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		return
	}

	if err := c.storeSvc.UpdateSettings(ctx.Request.Context(), store.ID, req); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Me 当前会话对应的店铺
// @Summary 当前会话对应的店铺
// @Description 解析当前用户的店铺；没开店返回 404，前端跳开店流程
// @Tags Store (店铺管理)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Store
// @Failure 404 {object} map[string]string "尚未开店"
// @Router /api/stores/me [get]
func (c *StoreController) Me(ctx *gin.Context) {
	user := middleware.GetSessionUser(ctx)

	store, err := c.tenantSvc.ResolveBySession(ctx.Request.Context(), user.ID, user.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, store)
}
