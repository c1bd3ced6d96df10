package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/service"
)

// respondError 业务错误 -> HTTP 状态码的统一映射
// 分类见 service 包的错误定义；这里不吞错误，所有失败都有响应体
func respondError(ctx *gin.Context, err error) {
	switch {
	case service.IsValidationError(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
	case errors.Is(err, service.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "存储服务不可用，请稍后重试"})
	default:
		if ue, ok := service.AsUpstreamError(err); ok {
			respondUpstreamError(ctx, ue)
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// respondUpstreamError 上游错误按类别转状态码
// quota 和 rate_limit 都回 429，前端提示语不同
func respondUpstreamError(ctx *gin.Context, ue *service.UpstreamError) {
	switch ue.Kind {
	case service.UpstreamKindAuth:
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": ue.Message})
	case service.UpstreamKindQuota, service.UpstreamKindRateLimit:
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": ue.Message})
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{"error": ue.Message})
	}
}
