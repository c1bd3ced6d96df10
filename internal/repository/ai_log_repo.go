package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storefront_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// AICallLogRepository AI 调用日志仓储接口
type AICallLogRepository interface {
	Create(ctx context.Context, log *model.AICallLog) error
	ListByStore(ctx context.Context, storeID int64, limit int) ([]model.AICallLog, error)
	// DeleteBefore 清理指定时间之前的日志，返回删除行数
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 仓储实现 ====================

type aiCallLogRepo struct {
	db *gorm.DB
}

// NewAICallLogRepository 创建 AI 调用日志仓储
func NewAICallLogRepository(db *gorm.DB) AICallLogRepository {
	return &aiCallLogRepo{db: db}
}

func (r *aiCallLogRepo) Create(ctx context.Context, log *model.AICallLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *aiCallLogRepo) ListByStore(ctx context.Context, storeID int64, limit int) ([]model.AICallLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.AICallLog
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *aiCallLogRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("created_at < ?", before).
		Delete(&model.AICallLog{})
	return result.RowsAffected, result.Error
}
