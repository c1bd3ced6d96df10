package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
)

// ==================== StoreService 店铺服务 ====================

// slug 分配是乐观的：应用层先探测，真正的防线是唯一索引
// 撞索引就换个候选值重来，最多试这么多次
const slugAllocateRetries = 3

type StoreService struct {
	storeRepo repository.StoreRepository
	tenantSvc *TenantService
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository, tenantSvc *TenantService) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		tenantSvc: tenantSvc,
	}
}

// ==================== 开店 ====================

// CreateStore 为用户开店（连同设置行，一个事务）
// 一个用户只能开一家店：先查做快速报错，owner_id 唯一索引兜底并发
func (s *StoreService) CreateStore(ctx context.Context, ownerID string, req dto.StoreCreateReq) (*model.Store, error) {
	if req.Name == "" {
		return nil, NewValidationError("店铺名称不能为空")
	}

	if err := s.checkOwnerHasNoStore(ctx, ownerID); err != nil {
		return nil, err
	}

	// 显式 slug 和店名派生 slug 走同一条分配路径：占用就追加数字后缀
	base := req.Slug
	if base == "" {
		base = req.Name
	}

	var lastErr error
	for attempt := 0; attempt < slugAllocateRetries; attempt++ {
		slug, err := s.tenantSvc.AllocateSlug(ctx, base)
		if err != nil {
			return nil, err
		}

		store := &model.Store{
			Slug:    slug,
			Name:    req.Name,
			OwnerID: ownerID,
			Phone:   req.Phone,
			Address: req.Address,
			LogoUrl: req.LogoUrl,
		}

		err = s.storeRepo.CreateWithSettings(ctx, store)
		if err == nil {
			return store, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, wrapStorageErr(err)
		}

		// 唯一索引冲突有两种：slug 被并发抢走（换个 slug 重试），
		// 或者同一用户并发建了两家店（owner_id 撞索引，直接报冲突）
		if cerr := s.checkOwnerHasNoStore(ctx, ownerID); cerr != nil {
			return nil, cerr
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: slug 分配持续冲突: %v", ErrConflict, lastErr)
}

func (s *StoreService) checkOwnerHasNoStore(ctx context.Context, ownerID string) error {
	_, err := s.storeRepo.GetByOwnerID(ctx, ownerID)
	if err == nil {
		return fmt.Errorf("%w: 该用户已有店铺", ErrConflict)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return wrapStorageErr(err)
}

// ==================== 设置更新 ====================

// UpdateSettings 更新店铺基础信息和支付设置，只动提交了的字段
// storeID 必须是会话解析出的店铺 —— 控制器层已校验，这里不再信任请求体
func (s *StoreService) UpdateSettings(ctx context.Context, storeID int64, req dto.StoreSettingsReq) error {
	storeFields := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		storeFields["name"] = *req.Name
	}
	if req.Slug != nil && *req.Slug != "" {
		// 改 slug 会改公开站点地址；同样靠唯一索引挡重复
		// 全符号输入会被清洗成空串，落库会让公开站点失联，直接拒绝
		slug := Slugify(*req.Slug)
		if slug == "" {
			return NewValidationError("slug 不合法: %q", *req.Slug)
		}
		storeFields["slug"] = slug
	}
	if req.Phone != nil {
		storeFields["phone"] = *req.Phone
	}
	if req.Address != nil {
		storeFields["address"] = *req.Address
	}
	if req.LogoUrl != nil {
		storeFields["logo_url"] = *req.LogoUrl
	}

	if len(storeFields) > 0 {
		if err := s.storeRepo.UpdateFields(ctx, storeID, storeFields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: slug 已被占用", ErrConflict)
			}
			return wrapStorageErr(err)
		}
	}

	settingsFields := map[string]interface{}{}
	if req.PaymentProvider != nil {
		provider := *req.PaymentProvider
		// 前端下拉用 "none" 表示清空
		if provider == "none" {
			provider = ""
		}
		settingsFields["payment_provider"] = provider
	}
	if req.PaymentPublicKey != nil {
		settingsFields["payment_public_key"] = *req.PaymentPublicKey
	}
	if req.PaymentSecretKey != nil {
		settingsFields["payment_secret_key"] = *req.PaymentSecretKey
	}
	if req.PaymentRedirectUrl != nil {
		settingsFields["payment_redirect_url"] = *req.PaymentRedirectUrl
	}

	if len(settingsFields) > 0 {
		if err := s.storeRepo.UpsertSettings(ctx, storeID, settingsFields); err != nil {
			return wrapStorageErr(err)
		}
	}

	return nil
}

// GetStore 读取店铺（含设置）
func (s *StoreService) GetStore(ctx context.Context, storeID int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return store, nil
}
