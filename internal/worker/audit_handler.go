package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cvpress/internal/database"
	"cvpress/internal/errcode"
	"cvpress/internal/layout"
	"cvpress/internal/measure"
	"cvpress/internal/metrics"
	"cvpress/internal/pdf"
	"cvpress/internal/render"
	"cvpress/internal/resume"
	"cvpress/internal/tasks"
)

// AuditTaskHandler 消费 layout:audit 任务：在无头浏览器中实际渲染
// 预览分页，逐页用 MeasurementPort 驱动 Page Frame，记录预估与实测
// 不一致（溢出）的页面。只记录，不自动重排。
type AuditTaskHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewAuditTaskHandler 创建审计处理器。
func NewAuditTaskHandler(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *AuditTaskHandler {
	return &AuditTaskHandler{db: db, redisClient: redisClient, logger: logger}
}

// ProcessTask 实现 asynq.Handler。
func (h *AuditTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log := h.logger

	var payload tasks.LayoutAuditPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal audit payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("starting layout overflow audit")

	var row database.Resume
	if err := h.db.WithContext(ctx).First(&row, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping audit")
			return nil
		}
		return err
	}

	var doc resume.Document
	if err := json.Unmarshal(row.Content, &doc); err != nil {
		// 坏内容审计不重试；入库校验才是防线。
		log.Error("decode resume document failed", slog.Any("error", err))
		return nil
	}

	renderer := render.NewRenderer(render.ThemeByName(doc.Template))
	previewHTML, pages, err := renderer.RenderPreview(&doc)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}

	page, cleanup, err := pdf.RenderDocument(previewHTML)
	if err != nil {
		return fmt.Errorf("render preview in browser: %w", err)
	}
	defer cleanup()

	overflowPages := make([]int, 0)
	for _, p := range pages {
		frame := layout.NewFrame(layout.FrameOptions{
			ShowPageNumbers: doc.Customization.Layout.ShowPageNumbers,
			Logger:          log,
		})
		port := measure.NewRodPort(page, fmt.Sprintf("#page-content-%d", p.Number))
		// RodPort 的首个采样在 Observe 内同步完成，Mount 返回时
		// Frame 已经 Settled（或降级）。
		frame.Mount(port)

		metrics.ObservePageAudit(frame.ContentHeight(), frame.AvailableHeight())
		if frame.Overflow() {
			overflowPages = append(overflowPages, p.Number)
			log.Warn("page content overflows its frame",
				slog.Int("page", p.Number),
				slog.Int("measured_px", frame.ContentHeight()),
				slog.Int("available_px", frame.AvailableHeight()),
				slog.Bool("predicted", p.PredictedOverflow),
			)
		}
		frame.Close()
	}

	overflowJSON, err := json.Marshal(overflowPages)
	if err != nil {
		return fmt.Errorf("marshal overflow pages: %w", err)
	}
	now := time.Now()
	update := map[string]any{
		"overflow_pages": datatypes.JSON(overflowJSON),
		"audited_at":     &now,
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(update).Error; err != nil {
		return fmt.Errorf("persist audit result: %w", err)
	}

	notify := ExportNotifyMessage{
		Type:          notifyTypeAudit,
		Status:        "completed",
		ResumeID:      row.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if len(overflowPages) > 0 {
		notify.ErrorCode = errcode.LayoutOverflow
		notify.ErrorMessage = fmt.Sprintf("%d page(s) overflow the page frame", len(overflowPages))
		notify.OverflowPages = overflowPages
	}
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal audit notification: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", row.UserID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish audit notification: %w", err)
	}

	log.Info("layout overflow audit completed",
		slog.Int("pages", len(pages)),
		slog.Int("overflow_pages", len(overflowPages)),
	)
	return nil
}
