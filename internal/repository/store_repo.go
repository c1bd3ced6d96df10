package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// StoreRepository 店铺仓储接口
type StoreRepository interface {
	// CreateWithSettings 同事务创建店铺和设置行
	CreateWithSettings(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	// GetBySlug 按 slug 精确匹配（区分大小写，不做归一化），预加载设置
	GetBySlug(ctx context.Context, slug string) (*model.Store, error)
	// GetByOwnerID 按归属用户查店铺；当前设计下最多命中一条
	GetByOwnerID(ctx context.Context, ownerID string) (*model.Store, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	// 设置相关
	GetSettings(ctx context.Context, storeID int64) (*model.StoreSettings, error)
	UpsertSettings(ctx context.Context, storeID int64, fields map[string]interface{}) error
}

// ==================== 仓储实现 ====================

type storeRepo struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓储
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) CreateWithSettings(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(store).Error; err != nil {
			return err
		}
		settings := &model.StoreSettings{StoreID: store.ID}
		if err := tx.Create(settings).Error; err != nil {
			return err
		}
		store.Settings = settings
		return nil
	})
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).
		Preload("Settings").
		First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).
		Preload("Settings").
		Where("slug = ?", slug).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetByOwnerID(ctx context.Context, ownerID string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).
		Preload("Settings").
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *storeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// GetSettings 读取设置行，没有则返回 (nil, nil)
func (r *storeRepo) GetSettings(ctx context.Context, storeID int64) (*model.StoreSettings, error) {
	var settings model.StoreSettings
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings 更新设置行，不存在就补一条
// 设置行正常随店铺同事务创建，这里兜底老数据
func (r *storeRepo) UpsertSettings(ctx context.Context, storeID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var settings model.StoreSettings
		err := tx.Where("store_id = ?", storeID).First(&settings).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = model.StoreSettings{StoreID: storeID}
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&model.StoreSettings{}).
			Where("store_id = ?", storeID).
			Updates(fields).Error
	})
}
