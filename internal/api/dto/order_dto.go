package dto

import (
	"storefront_v1_202608/internal/model"
)

// ==================== 订单 ====================

// OrderCreateReq 公开结账提交
// items 的结构必须与浏览器购物车条目 (cart_{storeSlug}) 保持一字不差
// totalPrice 用指针区分"没传"和"0"
type OrderCreateReq struct {
	StoreSlug     string            `json:"storeSlug"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerPhone string            `json:"customerPhone"`
	Items         []model.OrderItem `json:"items"`
	TotalPrice    *int64            `json:"totalPrice"`
}

// OrderStatusReq 店主修改订单状态
type OrderStatusReq struct {
	Status string `json:"status"`
}
