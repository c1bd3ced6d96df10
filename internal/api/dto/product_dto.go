package dto

// ==================== 商品 ====================

// ProductCreateReq 创建商品请求
// price 用指针是为了区分"没传"和"0 元"（0 是合法价格）
type ProductCreateReq struct {
	StoreID        int64  `json:"storeId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Price          *int64 `json:"price"`
	ImageUrl       string `json:"imageUrl"`
	Category       string `json:"category"`
	Stock          *int   `json:"stock"`
	SeoTitle       string `json:"seoTitle"`
	SeoDescription string `json:"seoDescription"`
}

// ProductUpdateReq 更新商品请求，只更新出现的字段
type ProductUpdateReq struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Price          *int64  `json:"price"`
	ImageUrl       *string `json:"imageUrl"`
	Category       *string `json:"category"`
	Stock          *int    `json:"stock"`
	SeoTitle       *string `json:"seoTitle"`
	SeoDescription *string `json:"seoDescription"`
}
