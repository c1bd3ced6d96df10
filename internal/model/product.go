package model

// Product 商品
type Product struct {
	BaseModel
	// 店铺 ID（多租户隔离核心）
	// 仪表盘的所有多行查询必须按它过滤，且只能用解析出的 store id
	StoreID int64  `gorm:"index;not null" json:"store_id"`
	Store   *Store `gorm:"foreignKey:StoreID" json:"-"`

	// 商品基本信息
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	// 价格以最小货币单位存整数（分/agorot），避免浮点舍入
	Price int64 `gorm:"not null" json:"price"`
	Stock int   `gorm:"default:0" json:"stock"`

	// 可选展示字段
	ImageUrl string `gorm:"size:512" json:"image_url,omitempty"`
	Category string `gorm:"size:100" json:"category,omitempty"`

	// SEO 字段（可由 AI 文案生成填充）
	SeoTitle       string `gorm:"size:255" json:"seo_title,omitempty"`
	SeoDescription string `gorm:"size:512" json:"seo_description,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
