package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/repository"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(repository.NewProductRepository(db))
}

func intPtr(v int) *int { return &v }

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	store := seedStore(t, db, "owner-1", "shop-a", "Shop A")

	p, err := svc.CreateProduct(ctx, store.ID, dto.ProductCreateReq{
		Title:       "Handmade Mug",
		Description: "A nice mug",
		Price:       int64Ptr(1050),
		Stock:       intPtr(5),
		Category:    "kitchen",
	})
	if err != nil {
		t.Fatalf("建商品失败: %v", err)
	}
	if p.StoreID != store.ID {
		t.Errorf("商品归属错误: %d", p.StoreID)
	}
	if p.Price != 1050 || p.Stock != 5 {
		t.Errorf("价格/库存不符: %d / %d", p.Price, p.Stock)
	}

	// 0 元是合法价格，缺 price 才是错误
	if _, err := svc.CreateProduct(ctx, store.ID, dto.ProductCreateReq{
		Title: "Free", Description: "d", Price: int64Ptr(0),
	}); err != nil {
		t.Errorf("0 元商品应允许: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, store.ID, dto.ProductCreateReq{
		Title: "No Price", Description: "d",
	}); !IsValidationError(err) {
		t.Errorf("缺价格期望校验错误，得到 %v", err)
	}
	if _, err := svc.CreateProduct(ctx, store.ID, dto.ProductCreateReq{
		Title: "Negative", Description: "d", Price: int64Ptr(-1),
	}); !IsValidationError(err) {
		t.Errorf("负价格期望校验错误，得到 %v", err)
	}
}

func TestProductScopedByStore(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	storeA := seedStore(t, db, "owner-1", "shop-a", "Shop A")
	storeB := seedStore(t, db, "owner-2", "shop-b", "Shop B")

	p, err := svc.CreateProduct(ctx, storeA.ID, dto.ProductCreateReq{
		Title: "A's Mug", Description: "d", Price: int64Ptr(100),
	})
	if err != nil {
		t.Fatalf("建商品失败: %v", err)
	}

	// 换一家店的 id 读/改/删，一律表现为不存在
	if _, err := svc.GetProduct(ctx, storeB.ID, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("跨店铺读期望 ErrNotFound，得到 %v", err)
	}
	if _, err := svc.UpdateProduct(ctx, storeB.ID, p.ID, dto.ProductUpdateReq{Title: strPtr("hacked")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("跨店铺改期望 ErrNotFound，得到 %v", err)
	}
	if err := svc.DeleteProduct(ctx, storeB.ID, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("跨店铺删期望 ErrNotFound，得到 %v", err)
	}

	// 本店正常可见
	if _, err := svc.GetProduct(ctx, storeA.ID, p.ID); err != nil {
		t.Errorf("本店读商品失败: %v", err)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	store := seedStore(t, db, "owner-1", "shop-a", "Shop A")
	p, _ := svc.CreateProduct(ctx, store.ID, dto.ProductCreateReq{
		Title: "Mug", Description: "Original", Price: int64Ptr(1000), Stock: intPtr(3),
	})

	updated, err := svc.UpdateProduct(ctx, store.ID, p.ID, dto.ProductUpdateReq{
		Price: int64Ptr(1200),
	})
	if err != nil {
		t.Fatalf("改商品失败: %v", err)
	}
	if updated.Price != 1200 {
		t.Errorf("价格未更新: %d", updated.Price)
	}
	if updated.Title != "Mug" || updated.Description != "Original" || updated.Stock != 3 {
		t.Errorf("未提交字段被改动: %+v", updated)
	}
}

func TestListProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	store := seedStore(t, db, "owner-1", "shop-a", "Shop A")

	// 空店返回空切片
	products, err := svc.ListProducts(ctx, store.ID)
	if err != nil {
		t.Fatalf("列商品失败: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("零商品期望空切片，得到 %v", products)
	}

	for i := 0; i < 8; i++ {
		if _, err := svc.CreateProduct(ctx, store.ID, dto.ProductCreateReq{
			Title: "P", Description: "d", Price: int64Ptr(int64(i * 100)),
		}); err != nil {
			t.Fatalf("建商品失败: %v", err)
		}
	}

	products, _ = svc.ListProducts(ctx, store.ID)
	if len(products) != 8 {
		t.Errorf("期望 8 个商品，得到 %d", len(products))
	}

	// 精选位带上限
	featured, err := svc.ListFeatured(ctx, store.ID, 6)
	if err != nil {
		t.Fatalf("列精选失败: %v", err)
	}
	if len(featured) != 6 {
		t.Errorf("精选位期望 6 个，得到 %d", len(featured))
	}
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	store := seedStore(t, db, "owner-1", "shop-a", "Shop A")
	p, _ := svc.CreateProduct(ctx, store.ID, dto.ProductCreateReq{
		Title: "Mug", Description: "d", Price: int64Ptr(100),
	})

	if err := svc.DeleteProduct(ctx, store.ID, p.ID); err != nil {
		t.Fatalf("删商品失败: %v", err)
	}
	if _, err := svc.GetProduct(ctx, store.ID, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("删除后读取期望 ErrNotFound，得到 %v", err)
	}
}
