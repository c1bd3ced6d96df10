package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
)

// ==================== TenantService 租户解析 ====================

// TenantService 负责把请求映射到唯一的权威店铺：
// 已登录会话 -> 店主的店铺，公开 slug -> 对应店铺
// 本身无状态，读写都落在 User/Store 表
type TenantService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
}

// NewTenantService 创建租户解析服务
func NewTenantService(userRepo repository.UserRepository, storeRepo repository.StoreRepository) *TenantService {
	return &TenantService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
	}
}

// ==================== 会话解析 ====================

// EnsureUser 按身份服务的 subject id 查找用户，首次见到时懒创建
// 先查后插，重复解析同一会话不会插两行；并发首登撞主键时回读兜底
func (s *TenantService) EnsureUser(ctx context.Context, subjectID, email string) (*model.User, error) {
	if subjectID == "" || email == "" {
		return nil, NewValidationError("身份信息不完整: subject id 和 email 均不能为空")
	}

	user, err := s.userRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	if user != nil {
		return user, nil
	}

	user = &model.User{ID: subjectID, Email: email}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发首登：另一条请求已经插入，回读即可
			existing, gerr := s.userRepo.GetByID(ctx, subjectID)
			if gerr != nil {
				return nil, wrapStorageErr(gerr)
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, wrapStorageErr(err)
	}
	return user, nil
}

// ResolveBySession 已登录会话 -> 店主的店铺
// 当前单店设计下每个用户最多解析出一个店铺
// 没有店铺返回 ErrNotFound，调用方引导到开店流程
func (s *TenantService) ResolveBySession(ctx context.Context, subjectID, email string) (*model.Store, error) {
	user, err := s.EnsureUser(ctx, subjectID, email)
	if err != nil {
		return nil, err
	}

	store, err := s.storeRepo.GetByOwnerID(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return store, nil
}

// ResolveBySlug 公开 slug -> 店铺（含设置）
// slug 原样匹配，区分大小写，不做归一化
// 未知 slug 返回 ErrNotFound，调用方渲染 404 页
func (s *TenantService) ResolveBySlug(ctx context.Context, slug string) (*model.Store, error) {
	if slug == "" {
		return nil, ErrNotFound
	}

	store, err := s.storeRepo.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return store, nil
}

// ==================== slug 分配 ====================

var (
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugInvalidRe  = regexp.MustCompile(`[^\w-]+`)
	slugCollapseRe = regexp.MustCompile(`-{2,}`)
)

// Slugify 把人类可读名称转成 URL 安全的 slug
// 小写、空格转连字符、去掉非单词字符、折叠并修剪连字符
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	slug = slugInvalidRe.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, "_", "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug
}

// AllocateSlug 为新店铺分配未占用的 slug
// 候选值取显式 slug 或名称派生值，占用时追加 -1、-2 … 递增后缀
// 检查和插入之间存在竞态窗口，slug 列的唯一索引才是最终保障；
// 建店流程在撞唯一索引时用本函数重新分配（见 StoreService）
func (s *TenantService) AllocateSlug(ctx context.Context, nameOrSlug string) (string, error) {
	base := Slugify(nameOrSlug)
	if base == "" {
		// 全符号名称会被清洗成空串，给个兜底前缀
		base = "store"
	}

	slug := base
	for counter := 1; ; counter++ {
		exists, err := s.storeRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", wrapStorageErr(err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
