package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/middleware"
	"storefront_v1_202608/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
// 密码校验全部委托身份服务，这边只做会话透传和本地用户懒创建
type AuthController struct {
	identity  service.IdentityProvider
	tenantSvc *service.TenantService
}

// NewAuthController 创建认证控制器
func NewAuthController(identity service.IdentityProvider, tenantSvc *service.TenantService) *AuthController {
	return &AuthController{
		identity:  identity,
		tenantSvc: tenantSvc,
	}
}

// SignUp 注册
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpReq true "注册信息"
// @Success 200 {object} dto.AuthResp
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/auth/signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email 和 password 不能为空"})
		return
	}

	session, err := c.identity.SignUp(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// 注册成功顺手建本地用户行，省一次首登时的懒创建
	if _, err := c.tenantSvc.EnsureUser(ctx.Request.Context(), session.User.ID, session.User.Email); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sessionToResp(session))
}

// Login 登录
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginReq true "登录信息"
// @Success 200 {object} dto.AuthResp
// @Failure 401 {object} map[string]string "凭证无效"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	session, err := c.identity.SignIn(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if _, err := c.tenantSvc.EnsureUser(ctx.Request.Context(), session.User.ID, session.User.Email); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sessionToResp(session))
}

// Logout 登出
// @Summary 登出
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	token := middleware.GetAccessToken(ctx)

	if err := c.identity.SignOut(ctx.Request.Context(), token); err != nil {
		respondError(ctx, err)
		return
	}
	middleware.InvalidateSession(token)

	ctx.JSON(http.StatusOK, gin.H{"message": "已登出"})
}

// Profile 当前用户信息
// @Summary 当前用户信息
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Failure 401 {object} map[string]string
// @Router /api/auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	user := middleware.GetSessionUser(ctx)
	ctx.JSON(http.StatusOK, dto.UserInfo{ID: user.ID, Email: user.Email})
}

func sessionToResp(session *service.IdentitySession) dto.AuthResp {
	return dto.AuthResp{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresIn:   session.ExpiresIn,
		User:        dto.UserInfo{ID: session.User.ID, Email: session.User.Email},
	}
}
