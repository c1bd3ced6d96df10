package dto

// ==================== 店铺 ====================

// StoreCreateReq 开店请求
// 字段名沿用前端既有契约（camelCase）
type StoreCreateReq struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	LogoUrl string `json:"logoUrl"`
}

// StoreSettingsReq 店铺设置更新请求
// 指针字段区分"未提交"和"提交了空值"，只更新出现的字段
type StoreSettingsReq struct {
	StoreID int64 `json:"storeId"`

	Name    *string `json:"name"`
	Slug    *string `json:"slug"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	LogoUrl *string `json:"logoUrl"`

	PaymentProvider    *string `json:"paymentProvider"`
	PaymentPublicKey   *string `json:"paymentPublicKey"`
	PaymentSecretKey   *string `json:"paymentSecretKey"`
	PaymentRedirectUrl *string `json:"paymentRedirectUrl"`
}
