package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
)

func newStoreService(db *gorm.DB) *StoreService {
	storeRepo := repository.NewStoreRepository(db)
	return NewStoreService(storeRepo, newTenantService(db))
}

func strPtr(s string) *string { return &s }

// ==================== 开店 ====================

func TestCreateStore(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	store, err := svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{
		Name:    "My Cool Store",
		Phone:   "050-1234567",
		Address: "Tel Aviv",
	})
	if err != nil {
		t.Fatalf("开店失败: %v", err)
	}
	if store.Slug != "my-cool-store" {
		t.Errorf("期望 slug my-cool-store，得到 %s", store.Slug)
	}
	if store.Settings == nil {
		t.Fatal("期望开店时同事务创建设置行")
	}
	if store.Settings.StoreID != store.ID {
		t.Errorf("设置行归属不对: %d != %d", store.Settings.StoreID, store.ID)
	}
}

func TestCreateStoreOnePerOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	if _, err := svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{Name: "First"}); err != nil {
		t.Fatalf("开店失败: %v", err)
	}

	// 第二家店直接拒
	_, err := svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{Name: "Second"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("重复开店期望 ErrConflict，得到 %v", err)
	}

	var count int64
	db.Model(&model.Store{}).Count(&count)
	if count != 1 {
		t.Errorf("期望 1 家店，实际 %d 家", count)
	}
}

func TestCreateStoreSlugSuffix(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	s1, err := svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{Name: "Same Name"})
	if err != nil {
		t.Fatalf("开店失败: %v", err)
	}
	s2, err := svc.CreateStore(ctx, "owner-2", dto.StoreCreateReq{Name: "Same Name"})
	if err != nil {
		t.Fatalf("开店失败: %v", err)
	}

	if s1.Slug != "same-name" || s2.Slug != "same-name-1" {
		t.Errorf("重名店铺期望 same-name / same-name-1，得到 %s / %s", s1.Slug, s2.Slug)
	}
}

func TestCreateStoreRequiresName(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)

	if _, err := svc.CreateStore(context.Background(), "owner-1", dto.StoreCreateReq{}); !IsValidationError(err) {
		t.Errorf("缺店名期望校验错误，得到 %v", err)
	}
}

func TestCreateStoreExplicitSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)

	store, err := svc.CreateStore(context.Background(), "owner-1", dto.StoreCreateReq{
		Name: "显示名随意",
		Slug: "Custom Slug",
	})
	if err != nil {
		t.Fatalf("开店失败: %v", err)
	}
	if store.Slug != "custom-slug" {
		t.Errorf("显式 slug 也应走清洗，得到 %s", store.Slug)
	}
}

// ==================== 设置更新 ====================

func TestUpdateSettingsPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	store, err := svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{
		Name:  "Shop",
		Phone: "111",
	})
	if err != nil {
		t.Fatalf("开店失败: %v", err)
	}

	// 只提交 phone 和支付提供商，其余字段不能被动到
	err = svc.UpdateSettings(ctx, store.ID, dto.StoreSettingsReq{
		StoreID:          store.ID,
		Phone:            strPtr("222"),
		PaymentProvider:  strPtr("tranzila"),
		PaymentSecretKey: strPtr("sk-secret"),
	})
	if err != nil {
		t.Fatalf("更新设置失败: %v", err)
	}

	got, err := svc.GetStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("读店铺失败: %v", err)
	}
	if got.Phone != "222" {
		t.Errorf("phone 未更新: %s", got.Phone)
	}
	if got.Name != "Shop" {
		t.Errorf("未提交的 name 被改动: %s", got.Name)
	}
	if got.Settings == nil || got.Settings.PaymentProvider != "tranzila" {
		t.Errorf("支付提供商未更新: %+v", got.Settings)
	}
	if got.Settings.PaymentSecretKey != "sk-secret" {
		t.Error("支付密钥未写入")
	}
}

func TestUpdateSettingsProviderNone(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	store, _ := svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{Name: "Shop"})

	if err := svc.UpdateSettings(ctx, store.ID, dto.StoreSettingsReq{
		StoreID:         store.ID,
		PaymentProvider: strPtr("cardcom"),
	}); err != nil {
		t.Fatalf("更新设置失败: %v", err)
	}

	// "none" 表示清空支付配置
	if err := svc.UpdateSettings(ctx, store.ID, dto.StoreSettingsReq{
		StoreID:         store.ID,
		PaymentProvider: strPtr("none"),
	}); err != nil {
		t.Fatalf("更新设置失败: %v", err)
	}

	got, _ := svc.GetStore(ctx, store.ID)
	if got.Settings.PaymentProvider != "" {
		t.Errorf("期望支付提供商被清空，得到 %q", got.Settings.PaymentProvider)
	}
}

func TestUpdateSettingsRejectsUnusableSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	store, _ := svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{Name: "Shop"})

	// 清洗后为空的 slug 会让公开站点失联，必须整体拒绝
	err := svc.UpdateSettings(ctx, store.ID, dto.StoreSettingsReq{
		StoreID: store.ID,
		Slug:    strPtr("!!!"),
	})
	if !IsValidationError(err) {
		t.Errorf("全符号 slug 期望校验错误，得到 %v", err)
	}

	got, _ := svc.GetStore(ctx, store.ID)
	if got.Slug != "shop" {
		t.Errorf("拒绝后原 slug 不应被改动: %s", got.Slug)
	}
}

func TestUpdateSettingsSlugConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	svc.CreateStore(ctx, "owner-1", dto.StoreCreateReq{Name: "Alpha"})
	store2, _ := svc.CreateStore(ctx, "owner-2", dto.StoreCreateReq{Name: "Beta"})

	// 改成已被占用的 slug 要报冲突
	err := svc.UpdateSettings(ctx, store2.ID, dto.StoreSettingsReq{
		StoreID: store2.ID,
		Slug:    strPtr("alpha"),
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("slug 冲突期望 ErrConflict，得到 %v", err)
	}
}
