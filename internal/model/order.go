package model

import (
	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
// 状态列是自由文本，这里只是观测到的取值，不构成状态机
const (
	OrderStatusNew        = "new"        // 新订单
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusFulfilled  = "fulfilled"  // 已完成
)

// ==================== Order 订单主表 ====================

// Order 订单
// 只能由公开结账提交创建；买家不可修改，店主只改 status
type Order struct {
	BaseModel
	StoreID int64  `gorm:"index;not null" json:"store_id"`
	Store   *Store `gorm:"foreignKey:StoreID" json:"-"`

	// 买家信息（name 必填，email/phone 可选）
	CustomerName  string `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone string `gorm:"size:50" json:"customer_phone,omitempty"`

	// 行项目以 JSON 整体存储，不做行表规范化
	// 结构见 OrderItem，下单时价格快照存在 priceAtPurchase
	Items datatypes.JSON `gorm:"type:jsonb" json:"items"`

	// 金额（最小货币单位）
	// 注意：当前设计信任客户端提交的单价与总价，服务端不重算（见结账流程）
	TotalPrice int64 `gorm:"not null" json:"total_price"`

	Status string `gorm:"size:32;index;default:new" json:"status"`
}

// OrderItem 订单行项目
// 与浏览器本地购物车条目 (cart_{storeSlug}) 字段一一对应，修改需双端同步
type OrderItem struct {
	ProductID       int64  `json:"productId"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase int64  `json:"priceAtPurchase"`
	Title           string `json:"title"`
	ImageUrl        string `json:"imageUrl,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
