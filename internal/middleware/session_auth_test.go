package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
	"storefront_v1_202608/internal/service"
)

func setupAuthTest(t *testing.T) (*SessionAuth, *service.LocalIdentityProvider, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Store{}, &model.StoreSettings{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	identity := service.NewLocalIdentityProvider("test-secret")
	tenant := service.NewTenantService(
		repository.NewUserRepository(db),
		repository.NewStoreRepository(db),
	)
	return NewSessionAuth(identity, tenant), identity, db
}

func authCall(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser(t *testing.T) {
	auth, identity, _ := setupAuthTest(t)

	r := gin.New()
	r.GET("/protected", auth.RequireUser(), func(ctx *gin.Context) {
		user := GetSessionUser(ctx)
		if user == nil {
			t.Error("处理链末端拿不到会话用户")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"email": user.Email})
	})

	session, err := identity.SignUp(context.Background(), "a@b.com", "pw123456")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	if w := authCall(r, session.AccessToken); w.Code != http.StatusOK {
		t.Errorf("有效会话期望 200，得到 %d", w.Code)
	}
	if w := authCall(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("无 token 期望 401，得到 %d", w.Code)
	}
	if w := authCall(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("伪造 token 期望 401，得到 %d", w.Code)
	}
}

// RequireStore 内联复用 RequireUser 做校验。末端 handler 必须在店铺
// 解析完成之后才执行，且拿到的店铺非 nil —— 这里显式验证执行顺序。
func TestRequireStoreRunsBeforeHandler(t *testing.T) {
	auth, identity, db := setupAuthTest(t)

	handlerRan := false
	r := gin.New()
	r.GET("/protected", auth.RequireStore(), func(ctx *gin.Context) {
		handlerRan = true
		store := GetCurrentStore(ctx)
		if store == nil {
			t.Error("处理链末端拿不到解析出的店铺")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"slug": store.Slug})
	})

	session, err := identity.SignUp(context.Background(), "owner@b.com", "pw123456")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 没开店：handler 一步都不能执行，直接 404
	if w := authCall(r, session.AccessToken); w.Code != http.StatusNotFound {
		t.Errorf("没开店期望 404，得到 %d", w.Code)
	}
	if handlerRan {
		t.Fatal("没开店时末端 handler 不应执行")
	}

	// 开店后：handler 执行且店铺已注入
	store := &model.Store{Slug: "shop-a", Name: "Shop A", OwnerID: session.User.ID}
	if err := repository.NewStoreRepository(db).CreateWithSettings(context.Background(), store); err != nil {
		t.Fatalf("预置店铺失败: %v", err)
	}

	w := authCall(r, session.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("已开店期望 200，得到 %d %s", w.Code, w.Body.String())
	}
	if !handlerRan {
		t.Fatal("已开店时末端 handler 应执行")
	}
}
