package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvpress/internal/database"
	"cvpress/internal/errcode"
	"cvpress/internal/pdf"
	"cvpress/internal/render"
	"cvpress/internal/resume"
	"cvpress/internal/storage"
	"cvpress/internal/tasks"
)

const thumbnailQuality = 80

// ExportTaskHandler 消费 pdf:generate 任务：渲染导出文档、打印 PDF、
// 上传存储并通知用户。
type ExportTaskHandler struct {
	db                 *gorm.DB
	storage            *storage.Client
	redisClient        *redis.Client
	logger             *slog.Logger
	internalSecret     string
	internalAPIBaseURL string
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	internalSecret string,
	internalAPIBaseURL string,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:                 db,
		storage:            storageClient,
		redisClient:        redisClient,
		logger:             logger,
		internalSecret:     internalSecret,
		internalAPIBaseURL: strings.TrimRight(strings.TrimSpace(internalAPIBaseURL), "/"),
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("starting pdf export task")

	var row database.Resume
	if err := h.db.WithContext(ctx).First(&row, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(row.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}
		notify := ExportNotifyMessage{
			Type:          notifyTypeExport,
			Status:        "error",
			ResumeID:      row.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishNotify(ctx, row.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	doc, err := h.fetchDocument(ctx, row.ID, payload.CorrelationID)
	if err != nil {
		log.Error("fetch print document failed", slog.Any("error", err))
		return err
	}

	renderer := render.NewRenderer(render.ThemeByName(doc.Template))
	exportHTML, err := renderer.RenderExport(doc)
	if err != nil {
		log.Error("render export document failed", slog.Any("error", err))
		return err
	}

	page, cleanup, err := pdf.RenderDocument(exportHTML)
	if err != nil {
		log.Error("render document in browser failed", slog.Any("error", err))
		return err
	}
	defer cleanup()

	pdfBytes, err := pdf.PrintToPDF(page, doc.Customization.Layout.PageWidthIn, doc.Customization.Layout.PageHeightIn)
	if err != nil {
		log.Error("print pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("generated-resumes/%d/%s.pdf", row.UserID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_url": objectName,
		"status":  "completed",
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(update).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Type:          notifyTypeExport,
		Status:        "completed",
		ResumeID:      row.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishNotify(ctx, row.UserID, notify); err != nil {
		log.Error("publish export notification failed", slog.Any("error", err))
		return err
	}

	if err := h.generateThumbnail(ctx, &row, page); err != nil {
		log.Warn("generate resume thumbnail failed", slog.Any("error", err))
	}

	log.Info("pdf export task completed")
	return nil
}

func (h *ExportTaskHandler) fetchDocument(ctx context.Context, resumeID uint, correlationID string) (*resume.Document, error) {
	raw, err := fetchPrintDocument(ctx, h.internalAPIBaseURL, resumeID, h.internalSecret, correlationID)
	if err != nil {
		return nil, err
	}
	var doc resume.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode print document: %w", err)
	}
	return &doc, nil
}

func (h *ExportTaskHandler) generateThumbnail(ctx context.Context, row *database.Resume, page *rod.Page) error {
	const presignTTL = 7 * 24 * time.Hour

	thumbBytes, err := pdf.CaptureThumbnail(page, thumbnailQuality)
	if err != nil {
		return fmt.Errorf("capture thumbnail: %w", err)
	}

	objectName := fmt.Sprintf("thumbnails/resume/%d/preview.jpg", row.ID)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(thumbBytes), int64(len(thumbBytes)), "image/jpeg"); err != nil {
		return fmt.Errorf("upload thumbnail: %w", err)
	}

	presignedURL, err := h.storage.GeneratePresignedURL(ctx, objectName, presignTTL)
	if err != nil {
		return fmt.Errorf("generate thumbnail presigned url: %w", err)
	}

	if err := h.db.WithContext(ctx).Model(row).Update("preview_image_url", presignedURL).Error; err != nil {
		return fmt.Errorf("update resume thumbnail url: %w", err)
	}

	return nil
}

func (h *ExportTaskHandler) publishNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
