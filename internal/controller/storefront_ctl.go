package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/service"
)

// ==================== StorefrontController 公开店面 ====================

// 匿名访客按 slug 读店面数据，全部只读
// slug 解析出的店铺 id 是这些查询唯一的范围来源
type StorefrontController struct {
	tenantSvc  *service.TenantService
	productSvc *service.ProductService
}

// NewStorefrontController 创建公开店面控制器
func NewStorefrontController(tenantSvc *service.TenantService, productSvc *service.ProductService) *StorefrontController {
	return &StorefrontController{
		tenantSvc:  tenantSvc,
		productSvc: productSvc,
	}
}

// GetStore 店面信息
// @Summary 店面信息
// @Description 按 slug 读店铺公开信息；是否已配置支付只给布尔值，不下发凭证
// @Tags Storefront (公开店面)
// @Produce json
// @Param slug path string true "店铺 slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shop/{slug} [get]
func (c *StorefrontController) GetStore(ctx *gin.Context) {
	store, err := c.tenantSvc.ResolveBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	// 没有设置行等价于"未配置支付"
	paymentConfigured := store.Settings != nil && store.Settings.PaymentProvider != ""

	ctx.JSON(http.StatusOK, gin.H{
		"id":                 store.ID,
		"slug":               store.Slug,
		"name":               store.Name,
		"phone":              store.Phone,
		"address":            store.Address,
		"logo_url":           store.LogoUrl,
		"payment_configured": paymentConfigured,
	})
}

// ListProducts 店面商品列表
// @Summary 店面商品列表
// @Description 按 slug 读店铺商品；?limit= 用于首页精选位；零商品返回空数组
// @Tags Storefront (公开店面)
// @Produce json
// @Param slug path string true "店铺 slug"
// @Param limit query int false "最多返回条数"
// @Success 200 {array} model.Product
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shop/{slug}/products [get]
func (c *StorefrontController) ListProducts(ctx *gin.Context) {
	store, err := c.tenantSvc.ResolveBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, perr := strconv.Atoi(limitStr)
		if perr != nil || limit <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的 limit"})
			return
		}
		products, err := c.productSvc.ListFeatured(ctx.Request.Context(), store.ID, limit)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, products)
		return
	}

	products, err := c.productSvc.ListProducts(ctx.Request.Context(), store.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// GetProduct 店面商品详情
// @Summary 店面商品详情
// @Description 商品必须属于 slug 解析出的店铺，否则 404
// @Tags Storefront (公开店面)
// @Produce json
// @Param slug path string true "店铺 slug"
// @Param id path int true "商品ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} map[string]string "店铺或商品不存在"
// @Router /api/shop/{slug}/products/{id} [get]
func (c *StorefrontController) GetProduct(ctx *gin.Context) {
	store, err := c.tenantSvc.ResolveBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	product, err := c.productSvc.GetProduct(ctx.Request.Context(), store.ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}
