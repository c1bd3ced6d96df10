package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront_v1_202608/internal/api/dto"
)

// 存储初始化失败时容器里注入的是 nil，上传接口要降级成 503 而不是崩掉
func TestUploadWithoutStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/uploads", NewUploadController(nil).Upload)

	body, _ := json.Marshal(dto.UploadReq{ImageData: "data:image/png;base64,aGk="})
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("无存储服务期望 503，得到 %d %s", w.Code, w.Body.String())
	}
}
