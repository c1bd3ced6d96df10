package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/controller"
	"storefront_v1_202608/internal/middleware"
)

// AI 文案生成的冷却间隔，按用户维度限
const aiCooldownInterval = 10 * time.Second

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	auth *middleware.SessionAuth,
	limiter *middleware.RateLimiter,
	authCtl *controller.AuthController,
	storeCtl *controller.StoreController,
	productCtl *controller.ProductController,
	orderCtl *controller.OrderController,
	storefrontCtl *controller.StorefrontController,
	aiCtl *controller.AIController,
	uploadCtl *controller.UploadController) {
	// 本地存储模式下的静态文件
	r.Static("/static", "./static")

	api := r.Group("/api")
	{
		// auth 认证组
		authGroup := api.Group("/auth")
		{
			// POST /api/auth/signup
			authGroup.POST("/signup", authCtl.SignUp)
			authGroup.POST("/login", authCtl.Login)
			authGroup.POST("/logout", auth.RequireUser(), authCtl.Logout)
			authGroup.GET("/profile", auth.RequireUser(), authCtl.Profile)
		}

		// store 店铺管理（开店只要求登录，其余要求已开店）
		stores := api.Group("/stores")
		{
			stores.POST("/create", auth.RequireUser(), storeCtl.Create)
			stores.GET("/me", auth.RequireUser(), storeCtl.Me)
			stores.POST("/settings", auth.RequireStore(), storeCtl.UpdateSettings)
		}

		// product 商品管理（仪表盘侧，店铺范围内）
		products := api.Group("/products", auth.RequireStore())
		{
			products.POST("", productCtl.Create)
			products.GET("", productCtl.List)
			products.PUT("/:id", productCtl.Update)
			products.DELETE("/:id", productCtl.Delete)
		}

		// order 订单：下单是公开的，查单/改状态要求已开店
		orders := api.Group("/orders")
		{
			// POST /api/orders —— 买家结账提交，不带会话
			orders.POST("", orderCtl.Create)
			orders.GET("", auth.RequireStore(), orderCtl.List)
			orders.GET("/:id", auth.RequireStore(), orderCtl.Get)
			orders.PUT("/:id/status", auth.RequireStore(), orderCtl.UpdateStatus)
		}

		// ai 文案生成，按用户冷却限流
		ai := api.Group("/ai", auth.RequireUser())
		{
			ai.POST("/generate-product",
				limiter.Cooldown("ai", aiCooldownInterval, func(ctx *gin.Context) string {
					if user := middleware.GetSessionUser(ctx); user != nil {
						return user.ID
					}
					return ""
				}),
				aiCtl.GenerateProduct)
		}

		// upload 图片上传
		api.POST("/uploads", auth.RequireStore(), uploadCtl.Upload)

		// shop 公开店面，按 slug 访问，无需登录
		shop := api.Group("/shop")
		{
			shop.GET("/:slug", storefrontCtl.GetStore)
			shop.GET("/:slug/products", storefrontCtl.ListProducts)
			shop.GET("/:slug/products/:id", storefrontCtl.GetProduct)
		}
	}
}
