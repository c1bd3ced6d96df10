package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ==================== 身份服务适配 ====================

// IdentityUser 身份服务侧的用户（subject id + 邮箱）
type IdentityUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IdentitySession 登录成功后的会话凭证
type IdentitySession struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        IdentityUser `json:"user"`
}

// IdentityProvider 外部身份服务的能力抽象
// 本系统不管密码：注册/登录/登出/会话校验全部委托给身份服务
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*IdentitySession, error)
	SignIn(ctx context.Context, email, password string) (*IdentitySession, error)
	SignOut(ctx context.Context, accessToken string) error
	// GetUser 校验会话 token，返回 subject id 和邮箱
	GetUser(ctx context.Context, accessToken string) (*IdentityUser, error)
}

// ==================== GoTrue 实现（生产） ====================

// GoTrueConfig GoTrue/Supabase 风格身份服务配置
type GoTrueConfig struct {
	BaseURL string // 如 https://xxx.supabase.co
	AnonKey string // 项目公开 key，随每个请求带上
}

// GoTrueProvider 通过 REST 调用身份服务
type GoTrueProvider struct {
	client *resty.Client
}

// NewGoTrueProvider 创建 GoTrue 适配器
func NewGoTrueProvider(cfg *GoTrueConfig) *GoTrueProvider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2). // 只重试网络层失败，4xx 不会触发
		SetHeader("apikey", cfg.AnonKey)

	return &GoTrueProvider{client: client}
}

// gotrueErrorBody 身份服务的错误响应体
type gotrueErrorBody struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (b *gotrueErrorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.ErrorDescription
}

func (p *GoTrueProvider) SignUp(ctx context.Context, email, password string) (*IdentitySession, error) {
	var session IdentitySession
	var errBody gotrueErrorBody

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		SetError(&errBody).
		Post("/auth/v1/signup")
	if err != nil {
		return nil, &UpstreamError{Kind: UpstreamKindGeneric, Message: err.Error()}
	}

	if resp.IsError() {
		return nil, classifyIdentityError(resp.StatusCode(), errBody.text())
	}
	return &session, nil
}

func (p *GoTrueProvider) SignIn(ctx context.Context, email, password string) (*IdentitySession, error) {
	var session IdentitySession
	var errBody gotrueErrorBody

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		SetError(&errBody).
		Post("/auth/v1/token")
	if err != nil {
		return nil, &UpstreamError{Kind: UpstreamKindGeneric, Message: err.Error()}
	}

	if resp.IsError() {
		return nil, classifyIdentityError(resp.StatusCode(), errBody.text())
	}
	return &session, nil
}

func (p *GoTrueProvider) SignOut(ctx context.Context, accessToken string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/auth/v1/logout")
	if err != nil {
		return &UpstreamError{Kind: UpstreamKindGeneric, Message: err.Error()}
	}
	// 登出时 token 已失效也视为成功
	if resp.IsError() && resp.StatusCode() != http.StatusUnauthorized {
		return classifyIdentityError(resp.StatusCode(), "")
	}
	return nil
}

func (p *GoTrueProvider) GetUser(ctx context.Context, accessToken string) (*IdentityUser, error) {
	var user IdentityUser
	var errBody gotrueErrorBody

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&user).
		SetError(&errBody).
		Get("/auth/v1/user")
	if err != nil {
		return nil, &UpstreamError{Kind: UpstreamKindGeneric, Message: err.Error()}
	}

	if resp.IsError() {
		return nil, classifyIdentityError(resp.StatusCode(), errBody.text())
	}
	return &user, nil
}

// classifyIdentityError 把身份服务的状态码归类到本地错误
func classifyIdentityError(status int, msg string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		// GoTrue 把"密码错误/用户已存在"这类业务拒绝也报 400
		if msg == "" {
			msg = "请求被身份服务拒绝"
		}
		return NewValidationError("%s", msg)
	case http.StatusTooManyRequests:
		return &UpstreamError{Kind: UpstreamKindRateLimit, Status: status, Message: msg}
	default:
		return &UpstreamError{Kind: UpstreamKindGeneric, Status: status, Message: msg}
	}
}

// ==================== 本地实现（开发/测试） ====================

// LocalIdentityProvider 纯内存实现，AUTH_PROVIDER=local 时启用
// 凭证存 bcrypt 哈希，会话 token 用 HS256 JWT，进程重启全部失效
type LocalIdentityProvider struct {
	mu       sync.RWMutex
	accounts map[string]*localAccount // email -> 账号

	secret []byte
	ttl    time.Duration
}

type localAccount struct {
	id           string
	email        string
	passwordHash []byte
}

// localClaims 本地会话 JWT 声明
type localClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewLocalIdentityProvider 创建本地身份服务
func NewLocalIdentityProvider(secret string) *LocalIdentityProvider {
	return &LocalIdentityProvider{
		accounts: make(map[string]*localAccount),
		secret:   []byte(secret),
		ttl:      2 * time.Hour,
	}
}

func (p *LocalIdentityProvider) SignUp(ctx context.Context, email, password string) (*IdentitySession, error) {
	if email == "" || password == "" {
		return nil, NewValidationError("email 和 password 不能为空")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[email]; ok {
		return nil, fmt.Errorf("%w: 该邮箱已注册", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &localAccount{
		id:           uuid.NewString(),
		email:        email,
		passwordHash: hash,
	}
	p.accounts[email] = acc

	return p.issueSession(acc)
}

func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (*IdentitySession, error) {
	p.mu.RLock()
	acc, ok := p.accounts[email]
	p.mu.RUnlock()

	if !ok {
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	return p.issueSession(acc)
}

func (p *LocalIdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	// 无服务端会话表，登出由调用方丢弃 token + 失效缓存完成
	return nil
}

func (p *LocalIdentityProvider) GetUser(ctx context.Context, accessToken string) (*IdentityUser, error) {
	token, err := jwt.ParseWithClaims(accessToken, &localClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(*localClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	return &IdentityUser{ID: claims.Subject, Email: claims.Email}, nil
}

func (p *LocalIdentityProvider) issueSession(acc *localAccount) (*IdentitySession, error) {
	now := time.Now()
	claims := &localClaims{
		Email: acc.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "storefront-local",
			Subject:   acc.id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, err
	}

	return &IdentitySession{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(p.ttl.Seconds()),
		User:        IdentityUser{ID: acc.id, Email: acc.email},
	}, nil
}
