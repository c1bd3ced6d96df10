package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront_v1_202608/internal/api/dto"
	"storefront_v1_202608/internal/model"
	"storefront_v1_202608/internal/repository"
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
// 显式注入，不走全局变量；一个进程初始化一次
type AIConfig struct {
	ApiKey    string
	TextModel string
	BaseURL   string // 留空用官方端点，测试时指向 mock server
}

// ==================== 服务 ====================

type AIService struct {
	Config      *AIConfig
	client      *http.Client
	callLogRepo repository.AICallLogRepository
}

// NewAIService 创建 AI 服务
func NewAIService(cfg *AIConfig, callLogRepo repository.AICallLogRepository) *AIService {
	// 固定模型配置
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-2.0-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}

	return &AIService{
		Config:      cfg,
		client:      &http.Client{Timeout: 60 * time.Second},
		callLogRepo: callLogRepo,
	}
}

// ==================== 文案生成 ====================

// GenerateProductCopy 根据商品标题生成店铺文案
// 返回商品描述 + SEO 标题 + SEO 描述，字段名与前端表单契约一致
func (s *AIService) GenerateProductCopy(ctx context.Context, store *model.Store, title, category string) (*dto.AIGenerateResp, error) {
	if s.Config.ApiKey == "" {
		return nil, &UpstreamError{Kind: UpstreamKindAuth, Message: "Gemini API Key 未配置"}
	}
	if title == "" {
		return nil, NewValidationError("title 不能为空")
	}

	start := time.Now()
	result, err := s.generate(ctx, store.Name, title, category)
	s.logCall(store.ID, title, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AIService) generate(ctx context.Context, storeName, title, category string) (*dto.AIGenerateResp, error) {
	if category == "" {
		category = "not specified"
	}

	prompt := fmt.Sprintf(`You are a marketing copywriter for e-commerce storefronts.

Product: %s
Category: %s
Store Name: %s

Write:
1. description: an engaging product description, one or two paragraphs, at most 120 words
2. seoTitle: a short SEO title, at most 60 characters
3. seoDescription: an SEO meta description, at most 150 characters

Output Format (JSON only, no markdown):
{
  "description": "...",
  "seoTitle": "...",
  "seoDescription": "..."
}`, title, category, storeName)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.Config.BaseURL, s.Config.TextModel, s.Config.ApiKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Kind: UpstreamKindGeneric, Message: fmt.Sprintf("请求失败: %v", err)}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, classifyGeminiError(resp.StatusCode, string(respBody))
	}

	// 解析响应
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return nil, &UpstreamError{Kind: UpstreamKindGeneric, Message: fmt.Sprintf("解析响应失败: %v", err)}
	}

	if len(geminiResp.Candidates) == 0 {
		return nil, &UpstreamError{Kind: UpstreamKindGeneric, Message: "无生成结果"}
	}

	// 提取 JSON 文本
	var jsonText string
	for _, candidate := range geminiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				jsonText = part.Text
				break
			}
		}
	}

	var result dto.AIGenerateResp
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, &UpstreamError{Kind: UpstreamKindGeneric, Message: fmt.Sprintf("解析生成结果失败: %v, raw: %s", err, jsonText)}
	}

	return &result, nil
}

// classifyGeminiError 按上游状态码归类错误
// 429 里再区分配额耗尽和普通限流，前端提示不一样
func classifyGeminiError(status int, body string) error {
	switch status {
	case http.StatusTooManyRequests:
		if strings.Contains(body, "RESOURCE_EXHAUSTED") || strings.Contains(body, "quota") {
			return &UpstreamError{Kind: UpstreamKindQuota, Status: status, Message: "配额已耗尽，请检查账单"}
		}
		return &UpstreamError{Kind: UpstreamKindRateLimit, Status: status, Message: "触发限流，请稍后重试"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &UpstreamError{Kind: UpstreamKindAuth, Status: status, Message: "API Key 无效或无权限"}
	default:
		return &UpstreamError{Kind: UpstreamKindGeneric, Status: status, Message: body}
	}
}

// logCall 落调用日志；日志写失败只打 log，不影响主流程
func (s *AIService) logCall(storeID int64, title string, duration time.Duration, callErr error) {
	if s.callLogRepo == nil {
		return
	}

	entry := &model.AICallLog{
		StoreID:    storeID,
		Model:      s.Config.TextModel,
		InputTitle: title,
		Status:     "success",
		DurationMs: duration.Milliseconds(),
	}
	if callErr != nil {
		entry.Status = "failed"
		entry.ErrorDetail = callErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.callLogRepo.Create(ctx, entry); err != nil {
		log.Printf("[AI] 调用日志写入失败: %v", err)
	}
}
