package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/service"
	"storefront_v1_202608/pkg/utils"
)

// ==================== 上下文 Key ====================

const (
	ctxKeyUser  = "session_user"
	ctxKeyStore = "current_store"
	ctxKeyToken = "access_token"
)

// 会话校验结果的缓存时长
// 太长会延迟登出/封禁生效，太短等于每个请求都打身份服务
const sessionCacheTTL = 60 * time.Second

// ==================== SessionAuth 会话中间件 ====================

// SessionAuth Bearer token -> 身份服务校验 -> 租户解析
type SessionAuth struct {
	identity service.IdentityProvider
	tenant   *service.TenantService
}

// NewSessionAuth 创建会话中间件
func NewSessionAuth(identity service.IdentityProvider, tenant *service.TenantService) *SessionAuth {
	return &SessionAuth{
		identity: identity,
		tenant:   tenant,
	}
}

// RequireUser 要求已登录会话
// 校验 token 并把身份服务侧的用户放进上下文；没 token / token 失效一律 401
func (m *SessionAuth) RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractBearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			return
		}

		user, err := m.verifyToken(ctx, token)
		if err != nil {
			if ue, ok := service.AsUpstreamError(err); ok {
				ctx.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": ue.Message})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "会话已失效，请重新登录"})
			return
		}

		// 不显式调 ctx.Next()：RequireStore 会内联复用本闭包做校验，
		// 这里一旦推进处理链，后续 handler 就会抢在店铺解析之前执行
		ctx.Set(ctxKeyUser, user)
		ctx.Set(ctxKeyToken, token)
	}
}

// RequireStore 要求已登录且已开店
// 解析会话对应的店铺放进上下文；没开店返回 404，前端据此跳开店流程
func (m *SessionAuth) RequireStore() gin.HandlerFunc {
	requireUser := m.RequireUser()
	return func(ctx *gin.Context) {
		requireUser(ctx)
		if ctx.IsAborted() {
			return
		}

		user := GetSessionUser(ctx)
		store, err := m.tenant.ResolveBySession(ctx.Request.Context(), user.ID, user.Email)
		if err != nil {
			if err == service.ErrNotFound {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "尚未开店"})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "存储服务不可用"})
			return
		}

		ctx.Set(ctxKeyStore, store)
	}
}

// verifyToken 校验会话 token，结果短暂缓存
func (m *SessionAuth) verifyToken(ctx *gin.Context, token string) (*service.IdentityUser, error) {
	cacheKey := "session:" + token
	if cached, ok := utils.GetCache(cacheKey); ok {
		if user, ok := cached.(*service.IdentityUser); ok {
			return user, nil
		}
	}

	user, err := m.identity.GetUser(ctx.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	utils.SetCache(cacheKey, user, sessionCacheTTL)
	return user, nil
}

// InvalidateSession 登出时立即失效缓存的会话
func InvalidateSession(token string) {
	utils.DeleteCache("session:" + token)
}

func extractBearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ==================== 上下文取值 ====================

// GetSessionUser 从上下文取当前会话用户
func GetSessionUser(ctx *gin.Context) *service.IdentityUser {
	if v, ok := ctx.Get(ctxKeyUser); ok {
		if user, ok := v.(*service.IdentityUser); ok {
			return user
		}
	}
	return nil
}

// GetCurrentStore 从上下文取当前解析出的店铺
func GetCurrentStore(ctx *gin.Context) *model.Store {
	if v, ok := ctx.Get(ctxKeyStore); ok {
		if store, ok := v.(*model.Store); ok {
			return store
		}
	}
	return nil
}

// GetAccessToken 从上下文取原始会话 token
func GetAccessToken(ctx *gin.Context) string {
	return ctx.GetString(ctxKeyToken)
}
