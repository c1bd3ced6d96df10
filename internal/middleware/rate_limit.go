package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== RateLimiter 冷却限流器 ====================

// RateLimiter 按 key 的冷却限流器
// AI 文案生成这类贵操作，防止用户连点把上游配额打穿
type RateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewRateLimiter 创建限流器
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "ai:user:xxx"
// interval: 冷却间隔
func (r *RateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	// 更新最后执行时间
	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// ==================== Gin 中间件 ====================

// Cooldown 冷却限流中间件
// keyFn 从请求里取限流键（通常是用户/店铺维度）；空键不限流
func (r *RateLimiter) Cooldown(name string, interval time.Duration, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := keyFn(ctx)
		if key == "" {
			ctx.Next()
			return
		}

		result := r.Check(fmt.Sprintf("%s:%s", name, key), interval)
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds()) + 1
			ctx.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("操作过于频繁，请 %d 秒后重试", retryAfter),
			})
			return
		}

		ctx.Next()
	}
}
