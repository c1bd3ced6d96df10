package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"storefront_v1_202608/internal/controller"
	"storefront_v1_202608/internal/middleware"
	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
	"storefront_v1_202608/internal/router"
	"storefront_v1_202608/internal/service"
	"storefront_v1_202608/internal/task"
	"storefront_v1_202608/pkg/database"
)

func main() {
	// 0. 加载环境变量（.env 不存在也没关系，走系统环境）
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.SessionAuth,
		deps.RateLimiter,
		deps.Controllers.Auth,
		deps.Controllers.Store,
		deps.Controllers.Product,
		deps.Controllers.Order,
		deps.Controllers.Storefront,
		deps.Controllers.AI,
		deps.Controllers.Upload,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	SessionAuth *middleware.SessionAuth
	RateLimiter *middleware.RateLimiter
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User      repository.UserRepository
	Store     repository.StoreRepository
	Product   repository.ProductRepository
	Order     repository.OrderRepository
	AiCallLog repository.AICallLogRepository
}

// Services 服务集合
type Services struct {
	Identity service.IdentityProvider
	Tenant   *service.TenantService
	Store    *service.StoreService
	Product  *service.ProductService
	Order    *service.OrderService
	AI       *service.AIService
	Storage  *service.StorageService
}

// Controllers 控制器集合
type Controllers struct {
	Auth       *controller.AuthController
	Store      *controller.StoreController
	Product    *controller.ProductController
	Order      *controller.OrderController
	Storefront *controller.StorefrontController
	AI         *controller.AIController
	Upload     *controller.UploadController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=storefront port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// Tenant
		&model.User{}, &model.Store{}, &model.StoreSettings{},
		// Catalog
		&model.Product{},
		// Order
		&model.Order{},
		// AI
		&model.AICallLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:      repository.NewUserRepository(db),
		Store:     repository.NewStoreRepository(db),
		Product:   repository.NewProductRepository(db),
		Order:     repository.NewOrderRepository(db),
		AiCallLog: repository.NewAICallLogRepository(db),
	}

	// -------- 基础服务 --------
	identity := initIdentityProvider()
	tenantSvc := service.NewTenantService(repos.User, repos.Store)

	// -------- 存储 & AI 服务 --------
	storageSvc := initStorageService()
	aiSvc := service.NewAIService(&service.AIConfig{
		ApiKey: getEnv("GEMINI_API_KEY", ""),
	}, repos.AiCallLog)

	// -------- 业务服务 --------
	services := &Services{
		Identity: identity,
		Tenant:   tenantSvc,
		Store:    service.NewStoreService(repos.Store, tenantSvc),
		Product:  service.NewProductService(repos.Product),
		Order:    service.NewOrderService(repos.Order, tenantSvc),
		AI:       aiSvc,
		Storage:  storageSvc,
	}

	// -------- 中间件 & Controller 层 --------
	sessionAuth := middleware.NewSessionAuth(identity, tenantSvc)
	controllers := &Controllers{
		Auth:       controller.NewAuthController(identity, tenantSvc),
		Store:      controller.NewStoreController(services.Store, tenantSvc),
		Product:    controller.NewProductController(services.Product),
		Order:      controller.NewOrderController(services.Order),
		Storefront: controller.NewStorefrontController(tenantSvc, services.Product),
		AI:         controller.NewAIController(aiSvc, tenantSvc),
		Upload:     controller.NewUploadController(storageSvc),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		SessionAuth: sessionAuth,
		RateLimiter: middleware.NewRateLimiter(),
		Controllers: controllers,
	}
}

// initIdentityProvider 初始化身份服务
// 生产走 GoTrue/Supabase，本地开发可切换为内置实现
func initIdentityProvider() service.IdentityProvider {
	switch getEnv("AUTH_PROVIDER", "gotrue") {
	case "local":
		log.Println("警告: 使用本地身份服务，仅限开发环境")
		return service.NewLocalIdentityProvider(getEnv("AUTH_LOCAL_SECRET", "dev-secret"))
	default:
		return service.NewGoTrueProvider(&service.GoTrueConfig{
			BaseURL: getEnv("SUPABASE_URL", ""),
			AnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		})
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "s3"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "storefront"),
		LocalDir:  getEnv("STORAGE_LOCAL_DIR", ""),
		LocalURL:  getEnv("STORAGE_LOCAL_URL", ""),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return storageSvc
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// AI 日志清理
	purgeTask := task.NewAILogPurgeTask(deps.Repos.AiCallLog)
	purgeTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
