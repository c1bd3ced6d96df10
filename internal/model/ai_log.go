package model

// AICallLog AI 调用日志
// 每次文案生成落一条，方便排查上游配额/限流问题和统计用量
type AICallLog struct {
	BaseModel
	StoreID int64 `gorm:"index" json:"store_id"`

	Model       string `gorm:"size:100" json:"model"`
	InputTitle  string `gorm:"size:255" json:"input_title"`
	Status      string `gorm:"size:20;index" json:"status"` // success / failed
	DurationMs  int64  `json:"duration_ms"`
	ErrorDetail string `gorm:"type:text" json:"error_detail,omitempty"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}
