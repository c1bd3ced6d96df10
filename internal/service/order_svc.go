package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
	"storefront_v1_202608/pkg/utils"
)

// ==================== OrderService 订单服务 ====================

type OrderService struct {
	orderRepo repository.OrderRepository
	tenantSvc *TenantService
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, tenantSvc *TenantService) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		tenantSvc: tenantSvc,
	}
}

// ==================== 公开结账 ====================

// CreateOrder 公开结账提交
// slug 解析失败直接拒绝，防止伪造 slug 往不存在的店铺下单
// 注意：单价和总价信任客户端提交值，服务端不按当前商品价格重算
// —— 这是当前设计的既定行为，改掉会悄悄改变对外可见语义
func (s *OrderService) CreateOrder(ctx context.Context, req dto.OrderCreateReq) (*model.Order, error) {
	if req.StoreSlug == "" || req.CustomerName == "" || len(req.Items) == 0 || req.TotalPrice == nil {
		return nil, NewValidationError("storeSlug、customerName、items、totalPrice 为必填字段")
	}

	store, err := s.tenantSvc.ResolveBySlug(ctx, req.StoreSlug)
	if err != nil {
		return nil, err
	}

	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return nil, NewValidationError("items 格式不合法: %v", err)
	}

	// TODO: 支付网关在这里接入（Tranzila/Cardcom），目前直接落单
	order := &model.Order{
		StoreID:       store.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Items:         datatypes.JSON(itemsJSON),
		TotalPrice:    *req.TotalPrice,
		Status:        model.OrderStatusNew,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, wrapStorageErr(err)
	}

	log.Printf("[Order] 店铺 [%s] 新订单 #%d，金额 %s", store.Slug, order.ID, utils.FormatPrice(order.TotalPrice))
	return order, nil
}

// ==================== 仪表盘 ====================

// ListOrders 店铺订单列表，按创建时间倒序
func (s *OrderService) ListOrders(ctx context.Context, storeID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// GetOrder 读取单个订单（带店铺约束）
func (s *OrderService) GetOrder(ctx context.Context, storeID, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDForStore(ctx, orderID, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	return order, nil
}

// UpdateStatus 店主修改订单状态
// status 是自由文本列，常见取值见 model.OrderStatus* 常量，不做状态机校验
func (s *OrderService) UpdateStatus(ctx context.Context, storeID, orderID int64, status string) (*model.Order, error) {
	if status == "" {
		return nil, NewValidationError("status 不能为空")
	}

	if _, err := s.GetOrder(ctx, storeID, orderID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, storeID, status); err != nil {
		return nil, wrapStorageErr(err)
	}
	return s.GetOrder(ctx, storeID, orderID)
}

// ParseItems 反序列化订单行项目
func ParseItems(order *model.Order) ([]model.OrderItem, error) {
	var items []model.OrderItem
	if len(order.Items) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(order.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}
