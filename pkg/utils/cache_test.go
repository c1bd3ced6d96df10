package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	SetCache("k1", "v1", time.Minute)

	v, ok := GetCache("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// 未写入的键
	_, ok = GetCache("missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	SetCache("short", 42, 10*time.Millisecond)

	v, ok := GetCache("short")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	// 过期后惰性剔除
	time.Sleep(20 * time.Millisecond)
	_, ok = GetCache("short")
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	SetCache("gone", "x", time.Minute)
	DeleteCache("gone")

	_, ok := GetCache("gone")
	assert.False(t, ok)
}
