package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// 带合法文件头的最小 PNG 字节串，够触发类型探测
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E,
	0x44, 0xAE, 0x42, 0x60, 0x82,
}

func newLocalStorageService(t *testing.T) (*StorageService, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewStorageService(&StorageConfig{
		Provider: "local",
		LocalDir: dir,
		LocalURL: "/static/uploads",
	})
	if err != nil {
		t.Fatalf("初始化本地存储失败: %v", err)
	}
	return svc, dir
}

func TestSaveBase64DataURI(t *testing.T) {
	svc, dir := newLocalStorageService(t)

	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)
	url, err := svc.SaveBase64(context.Background(), dataURI, "logo")
	if err != nil {
		t.Fatalf("保存 base64 失败: %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/") {
		t.Errorf("期望公开 URL 带访问前缀，得到 %s", url)
	}

	// 文件真的落了盘，内容一致
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("期望目录里有 1 个文件: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if len(data) != len(tinyPNG) {
		t.Errorf("落盘内容不一致: %d != %d 字节", len(data), len(tinyPNG))
	}
}

func TestSaveBase64RejectsGarbage(t *testing.T) {
	svc, _ := newLocalStorageService(t)

	if _, err := svc.SaveBase64(context.Background(), "data:image/png;base64,!!!not-base64!!!", ""); !IsValidationError(err) {
		t.Errorf("坏 base64 期望校验错误，得到 %v", err)
	}
}

func TestLocalStorageDelete(t *testing.T) {
	svc, dir := newLocalStorageService(t)

	url, err := svc.Upload(context.Background(), tinyPNG, "x.png", "image/png")
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}

	if err := svc.Delete(context.Background(), url); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("删除后目录应为空，实际 %d 个文件", len(entries))
	}
}

func TestNewStorageProviderUnknown(t *testing.T) {
	if _, err := NewStorageProvider(&StorageConfig{Provider: "ftp"}); err == nil {
		t.Error("未知存储提供者应报错")
	}
}
