package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ==================== 本地实现 ====================

func TestLocalIdentityRoundTrip(t *testing.T) {
	p := NewLocalIdentityProvider("test-secret")
	ctx := context.Background()

	session, err := p.SignUp(ctx, "a@b.com", "hunter42")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if session.AccessToken == "" || session.User.ID == "" {
		t.Fatal("注册应返回 token 和用户 id")
	}

	// token 能换回同一个用户
	user, err := p.GetUser(ctx, session.AccessToken)
	if err != nil {
		t.Fatalf("校验 token 失败: %v", err)
	}
	if user.ID != session.User.ID || user.Email != "a@b.com" {
		t.Errorf("token 解析出的用户不符: %+v", user)
	}

	// 重新登录拿到新 token，subject 不变
	session2, err := p.SignIn(ctx, "a@b.com", "hunter42")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if session2.User.ID != session.User.ID {
		t.Errorf("同一账号两次登录 subject 不一致")
	}
}

func TestLocalIdentityRejects(t *testing.T) {
	p := NewLocalIdentityProvider("test-secret")
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "a@b.com", "pw123456"); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 重复注册
	if _, err := p.SignUp(ctx, "a@b.com", "other"); !errors.Is(err, ErrConflict) {
		t.Errorf("重复注册期望 ErrConflict，得到 %v", err)
	}
	// 错误密码
	if _, err := p.SignIn(ctx, "a@b.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("错误密码期望 ErrUnauthorized，得到 %v", err)
	}
	// 不存在的账号
	if _, err := p.SignIn(ctx, "ghost@b.com", "pw"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("未注册账号期望 ErrUnauthorized，得到 %v", err)
	}
	// 伪造 token
	if _, err := p.GetUser(ctx, "not-a-jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("伪造 token 期望 ErrUnauthorized，得到 %v", err)
	}
}

// ==================== GoTrue 实现 ====================

func TestGoTrueProviderSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// resty 只对 JSON Content-Type 的响应做反序列化
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/v1/token":
			if r.URL.Query().Get("grant_type") != "password" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.Header.Get("apikey") != "anon-key" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "correct" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok-abc",
				"token_type":   "bearer",
				"expires_in":   3600,
				"user":         map[string]string{"id": "sub-1", "email": "a@b.com"},
			})
		case "/auth/v1/user":
			if r.Header.Get("Authorization") != "Bearer tok-abc" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "sub-1", "email": "a@b.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewGoTrueProvider(&GoTrueConfig{BaseURL: srv.URL, AnonKey: "anon-key"})
	ctx := context.Background()

	session, err := p.SignIn(ctx, "a@b.com", "correct")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if session.AccessToken != "tok-abc" || session.User.ID != "sub-1" {
		t.Errorf("会话解析不符: %+v", session)
	}

	user, err := p.GetUser(ctx, "tok-abc")
	if err != nil {
		t.Fatalf("校验 token 失败: %v", err)
	}
	if user.ID != "sub-1" || user.Email != "a@b.com" {
		t.Errorf("用户解析不符: %+v", user)
	}

	// 身份服务的业务拒绝（400）归类为校验错误
	if _, err := p.SignIn(ctx, "a@b.com", "wrong"); !IsValidationError(err) {
		t.Errorf("错误密码期望校验错误，得到 %v", err)
	}
	// 失效 token 归类为 401
	if _, err := p.GetUser(ctx, "stale"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("失效 token 期望 ErrUnauthorized，得到 %v", err)
	}
}

func TestGoTrueProviderRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"msg": "over_request_rate_limit"})
	}))
	defer srv.Close()

	p := NewGoTrueProvider(&GoTrueConfig{BaseURL: srv.URL, AnonKey: "anon-key"})

	_, err := p.SignIn(context.Background(), "a@b.com", "pw")
	ue, ok := AsUpstreamError(err)
	if !ok || ue.Kind != UpstreamKindRateLimit {
		t.Errorf("限流期望 rate_limit 上游错误，得到 %v", err)
	}
}
