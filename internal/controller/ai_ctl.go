package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/middleware"
	"storefront_v1_202608/internal/service"
)

// ==================== AIController AI 文案控制器 ====================

type AIController struct {
	aiSvc     *service.AIService
	tenantSvc *service.TenantService
}

// NewAIController 创建 AI 控制器
func NewAIController(aiSvc *service.AIService, tenantSvc *service.TenantService) *AIController {
	return &AIController{
		aiSvc:     aiSvc,
		tenantSvc: tenantSvc,
	}
}

// GenerateProduct 生成商品文案
// @Summary 生成商品文案
// @Description 按商品标题生成描述和 SEO 文案；没开店的用户返回 400
// @Tags AI (文案生成)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AIGenerateReq true "生成参数"
// @Success 200 {object} dto.AIGenerateResp
// @Failure 400 {object} map[string]string "title 为空或尚无店铺"
// @Failure 429 {object} map[string]string "限流或配额耗尽"
// @Router /api/ai/generate-product [post]
func (c *AIController) GenerateProduct(ctx *gin.Context) {
	user := middleware.GetSessionUser(ctx)

	var req dto.AIGenerateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}
	if req.Title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "title 不能为空"})
		return
	}

	// 这里不用 RequireStore：没开店要报 400 而不是 404，前端据此提示先建店
	store, err := c.tenantSvc.ResolveBySession(ctx.Request.Context(), user.ID, user.Email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "尚无可用店铺"})
			return
		}
		respondError(ctx, err)
		return
	}

	result, err := c.aiSvc.GenerateProductCopy(ctx.Request.Context(), store, req.Title, req.Category)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
