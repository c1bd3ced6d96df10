package model

// Store 店铺（租户），商品和订单的归属单位
type Store struct {
	BaseModel
	// 1. 核心身份
	// slug 是店铺公开站点的 URL 标识，全局唯一
	// 唯一索引是防并发分配的真正保障，应用层探测只负责挑候选值
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name string `gorm:"size:255;not null" json:"name"`

	// 2. 归属关系
	// OwnerID 指向身份服务签发的用户 UUID
	// uniqueIndex 保证一个用户最多一个店铺
	OwnerID string `gorm:"size:36;uniqueIndex;not null" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"-"`

	// 3. 联系方式（可选）
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Address string `gorm:"size:255" json:"address,omitempty"`
	LogoUrl string `gorm:"size:512" json:"logo_url,omitempty"`

	// 4. 关联关系
	// 设置表与店铺同事务创建，1:1
	Settings *StoreSettings `gorm:"foreignKey:StoreID" json:"settings,omitempty"`
	Products []Product      `gorm:"foreignKey:StoreID" json:"-"`
	Orders   []Order        `gorm:"foreignKey:StoreID" json:"-"`
}

// StoreSettings 店铺设置（敏感表）
// 支付字段目前只是占位：没有网关接入，没有设置行等价于"未配置支付"
type StoreSettings struct {
	BaseModel
	// uniqueIndex 确保 1:1 关系
	StoreID int64 `gorm:"uniqueIndex;not null" json:"store_id"`

	PaymentProvider    string `gorm:"size:50" json:"payment_provider,omitempty"`
	PaymentPublicKey   string `gorm:"size:255" json:"payment_public_key,omitempty"`
	PaymentSecretKey   string `gorm:"size:255" json:"-"` // 不下发给前端
	PaymentRedirectUrl string `gorm:"size:512" json:"payment_redirect_url,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

func (StoreSettings) TableName() string {
	return "store_settings"
}
