package dto

// ==================== AI 文案 ====================

// AIGenerateReq 商品文案生成请求
type AIGenerateReq struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// AIGenerateResp 商品文案生成结果
// 字段名是前端既有契约，改动需同步前端表单
type AIGenerateResp struct {
	Description    string `json:"description"`
	SeoTitle       string `json:"seoTitle"`
	SeoDescription string `json:"seoDescription"`
}

// ==================== 上传 ====================

// UploadReq 图片上传请求（base64 Data URI）
type UploadReq struct {
	ImageData string `json:"imageData"`
	Prefix    string `json:"prefix"`
}

// UploadResp 上传结果
type UploadResp struct {
	Url string `json:"url"`
}
