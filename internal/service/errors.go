package service

import (
	"errors"
	"fmt"
)

// ==================== 错误分类 ====================

// 业务错误哨兵值，控制器层据此映射 HTTP 状态码
// 约定：NotFound 对解析器来说是正常结果（引导到 404 页或开店流程），不是故障
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrUnauthorized       = errors.New("未登录或会话已失效")
	ErrConflict           = errors.New("资源已存在")
	ErrStorageUnavailable = errors.New("存储服务不可用")
)

// ValidationError 参数校验错误（必填缺失/格式不对）
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError 创建校验错误
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError 判断是否校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ==================== 上游错误 ====================

// 上游错误类别，按上游返回的状态码归类
const (
	UpstreamKindAuth      = "auth"       // API Key 无效 / 未授权
	UpstreamKindQuota     = "quota"      // 配额耗尽
	UpstreamKindRateLimit = "rate_limit" // 触发限流
	UpstreamKindGeneric   = "generic"    // 其他
)

// UpstreamError 外部服务（身份服务/AI 服务）调用失败
type UpstreamError struct {
	Kind    string // 见 UpstreamKind* 常量
	Status  int    // 上游报告的 HTTP 状态码，0 表示网络层失败
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("上游服务错误 [%d/%s]: %s", e.Status, e.Kind, e.Message)
	}
	return fmt.Sprintf("上游服务错误 [%s]: %s", e.Kind, e.Message)
}

// AsUpstreamError 提取上游错误
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// wrapStorageErr 把持久层故障统一包装成 StorageUnavailable，原样向上传递，不做重试
func wrapStorageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
