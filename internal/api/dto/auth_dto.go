package dto

// ==================== 认证 ====================

// SignUpReq 注册请求
type SignUpReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResp 登录/注册响应
type AuthResp struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserInfo `json:"user"`
}
