package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/service"
)

// ==================== UploadController 图片上传 ====================

type UploadController struct {
	storageSvc *service.StorageService
}

// NewUploadController 创建上传控制器
func NewUploadController(storageSvc *service.StorageService) *UploadController {
	return &UploadController{storageSvc: storageSvc}
}

// Upload 上传图片
// @Summary 上传图片
// @Description 接收 Base64 Data URI，落存储后返回公开 URL
// @Tags Upload (上传)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UploadReq true "图片数据"
// @Success 200 {object} dto.UploadResp
// @Failure 400 {object} map[string]string "imageData 为空或解码失败"
// @Failure 503 {object} map[string]string "存储不可用"
// @Router /api/uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	// 存储服务初始化失败时依赖容器里是 nil，这里降级成 503 而不是崩掉
	if c.storageSvc == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "存储服务不可用，请稍后重试"})
		return
	}

	var req dto.UploadReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}
	if req.ImageData == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "imageData 不能为空"})
		return
	}

	url, err := c.storageSvc.SaveBase64(ctx.Request.Context(), req.ImageData, req.Prefix)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UploadResp{Url: url})
}
