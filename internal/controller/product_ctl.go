package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/middleware"
	"storefront_v1_202608/internal/service"
)

// ==================== ProductController 商品控制器 ====================

// 所有操作都落在会话解析出的店铺上，请求体/路径里的 id 只在该店铺范围内生效
type ProductController struct {
	productSvc *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// Create 创建商品
// @Summary 创建商品
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param request body dto.ProductCreateReq true "商品参数"
// @Success 200 {object} model.Product
// @Failure 400 {object} map[string]string "必填字段缺失"
// @Router /api/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	var req dto.ProductCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if req.StoreID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "storeId 不能为空"})
		return
	}
	if req.StoreID != store.ID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		return
	}

	product, err := c.productSvc.CreateProduct(ctx.Request.Context(), store.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// List 店铺商品列表
// @Summary 店铺商品列表
// @Description 当前店铺的商品，按创建时间倒序；没有商品返回空数组
// @Tags Product (商品管理)
// @Produce json
// @Success 200 {array} model.Product
// @Router /api/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	products, err := c.productSvc.ListProducts(ctx.Request.Context(), store.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// Update 更新商品
// @Summary 更新商品
// @Tags Product (商品管理)
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param request body dto.ProductUpdateReq true "更新参数"
// @Success 200 {object} model.Product
// @Failure 404 {object} map[string]string "商品不存在或不属于当前店铺"
// @Router /api/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	var req dto.ProductUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	product, err := c.productSvc.UpdateProduct(ctx.Request.Context(), store.ID, id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// Delete 删除商品
// @Summary 删除商品
// @Tags Product (商品管理)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "商品不存在或不属于当前店铺"
// @Router /api/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	store := middleware.GetCurrentStore(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	if err := c.productSvc.DeleteProduct(ctx.Request.Context(), store.ID, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已删除"})
}
