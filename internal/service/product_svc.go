package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// 所有读写都以 storeID 为边界，storeID 一律来自租户解析，
// 跨店铺的 id 在这里表现为"不存在"
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(ctx context.Context, storeID int64, req dto.ProductCreateReq) (*model.Product, error) {
	if req.Title == "" || req.Description == "" || req.Price == nil {
		return nil, NewValidationError("title、description、price 为必填字段")
	}
	if *req.Price < 0 {
		return nil, NewValidationError("价格不能为负数")
	}

	stock := 0
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, NewValidationError("库存不能为负数")
		}
		stock = *req.Stock
	}

	product := &model.Product{
		StoreID:        storeID,
		Title:          req.Title,
		Description:    req.Description,
		Price:          *req.Price,
		Stock:          stock,
		ImageUrl:       req.ImageUrl,
		Category:       req.Category,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, wrapStorageErr(err)
	}
	return product, nil
}

// UpdateProduct 更新商品，只动提交了的字段
func (s *ProductService) UpdateProduct(ctx context.Context, storeID, productID int64, req dto.ProductUpdateReq) (*model.Product, error) {
	product, err := s.getForStore(ctx, productID, storeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, NewValidationError("价格不能为负数")
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, NewValidationError("库存不能为负数")
		}
		product.Stock = *req.Stock
	}
	if req.ImageUrl != nil {
		product.ImageUrl = *req.ImageUrl
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.SeoTitle != nil {
		product.SeoTitle = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		product.SeoDescription = *req.SeoDescription
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, wrapStorageErr(err)
	}
	return product, nil
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, storeID, productID int64) error {
	if _, err := s.getForStore(ctx, productID, storeID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID, storeID); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

// GetProduct 读取单个商品（带店铺约束）
func (s *ProductService) GetProduct(ctx context.Context, storeID, productID int64) (*model.Product, error) {
	return s.getForStore(ctx, productID, storeID)
}

// ListProducts 店铺商品列表，按创建时间倒序
// 零商品返回空切片，不是错误（空态由前端渲染）
func (s *ProductService) ListProducts(ctx context.Context, storeID int64) ([]model.Product, error) {
	products, err := s.productRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// ListFeatured 店铺首页的最新 N 个商品
func (s *ProductService) ListFeatured(ctx context.Context, storeID int64, limit int) ([]model.Product, error) {
	products, err := s.productRepo.ListFeatured(ctx, storeID, limit)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *ProductService) getForStore(ctx context.Context, productID, storeID int64) (*model.Product, error) {
	product, err := s.productRepo.GetByIDForStore(ctx, productID, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return product, nil
}
