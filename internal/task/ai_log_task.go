package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"storefront_v1_202608/internal/repository"
)

// ==================== AILogPurgeTask AI 调用日志清理 ====================

// AILogPurgeTask 定期清理过期的 AI 调用日志
// 日志只用于排查和用量观察，留太久没意义还拖慢表
type AILogPurgeTask struct {
	callLogRepo repository.AICallLogRepository
	Cron        *cron.Cron

	retention time.Duration // 日志保留时长
}

func NewAILogPurgeTask(callLogRepo repository.AICallLogRepository) *AILogPurgeTask {
	return &AILogPurgeTask{
		callLogRepo: callLogRepo,
		Cron:        cron.New(cron.WithSeconds()), // 支持秒级控制
		retention:   30 * 24 * time.Hour,          // 保留 30 天
	}
}

// SetRetention 覆盖默认保留时长
func (t *AILogPurgeTask) SetRetention(d time.Duration) {
	if d > 0 {
		t.retention = d
	}
}

// Start 启动定时任务
func (t *AILogPurgeTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次 AI 日志清理...")
		t.purgeJob(ctx)
	}()

	// 每天凌晨 4 点清一次，避开业务高峰
	_, err := t.Cron.AddFunc("0 0 4 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.purgeJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动 AI 日志清理任务: %v", err)
	}

	t.Cron.Start()
	log.Println("AI 日志清理任务已启动 (每天 04:00 执行)")
}

// Stop 停止定时任务
func (t *AILogPurgeTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
	log.Println("AI 日志清理任务已停止")
}

func (t *AILogPurgeTask) purgeJob(ctx context.Context) {
	before := time.Now().Add(-t.retention)

	deleted, err := t.callLogRepo.DeleteBefore(ctx, before)
	if err != nil {
		log.Printf("[Cron] AI 日志清理失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] AI 日志清理完成，删除 %d 条 (早于 %s)", deleted, before.Format("2006-01-02"))
	}
}
