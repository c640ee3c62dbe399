package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cvpress/internal/api/middleware"
	"cvpress/internal/database"
	"cvpress/internal/layout"
	"cvpress/internal/model"
	"cvpress/internal/render"
	"cvpress/internal/resume"
	"cvpress/internal/storage"
	"cvpress/internal/tasks"
)

// ResumeHandler 负责处理与简历相关的 API 请求。
type ResumeHandler struct {
	db            *gorm.DB
	asynqClient   *asynq.Client
	storage       *storage.Client
	redisClient   *redis.Client
	maxResumes    int
	debugOverflow bool
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(
	db *gorm.DB,
	asynqClient *asynq.Client,
	storageClient *storage.Client,
	redisClient *redis.Client,
	maxResumes int,
	debugOverflow bool,
) *ResumeHandler {
	return &ResumeHandler{
		db:            db,
		asynqClient:   asynqClient,
		storage:       storageClient,
		redisClient:   redisClient,
		maxResumes:    maxResumes,
		debugOverflow: debugOverflow,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type createResumeRequest struct {
	Title   string         `json:"title" binding:"required"`
	Content datatypes.JSON `json:"content" binding:"required"`
}

type resumeResponse struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	Content         datatypes.JSON `json:"content"`
	Status          string         `json:"status,omitempty"`
	OverflowPages   datatypes.JSON `json:"overflow_pages,omitempty"`
	PreviewImageURL string         `json:"preview_image_url,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func newResumeResponse(row database.Resume) resumeResponse {
	return resumeResponse{
		ID:              row.ID,
		Title:           row.Title,
		Content:         row.Content,
		Status:          row.Status,
		OverflowPages:   row.OverflowPages,
		PreviewImageURL: row.PreviewImageURL,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func resumeIDFromParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidResumeID
	}
	return uint(id), nil
}

func (h *ResumeHandler) ownedResume(c *gin.Context) (*database.Resume, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}
	id, err := resumeIDFromParam(c)
	if err != nil {
		BadRequest(c, err.Error())
		return nil, false
	}

	var row database.Resume
	err = h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "resume not found")
		} else {
			Internal(c, "failed to query resume")
		}
		return nil, false
	}
	return &row, true
}

// CreateResume 保存一份新的简历，内容先过 JSON Schema 校验。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	if err := model.ValidateDocument(req.Content); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.Resume{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count resumes")
		return
	}
	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	row := database.Resume{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
		Status:  "draft",
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(row))
}

// UpdateResume 覆盖简历标题与内容。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	row, ok := h.ownedResume(c)
	if !ok {
		return
	}

	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := model.ValidateDocument(req.Content); err != nil {
		BadRequest(c, err.Error())
		return
	}

	update := map[string]any{
		"title":   req.Title,
		"content": req.Content,
		// 内容变化使上一次审计结果失效
		"overflow_pages": nil,
		"audited_at":     nil,
	}
	if err := h.db.WithContext(c.Request.Context()).Model(row).Updates(update).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}
	row.Title = req.Title
	row.Content = req.Content
	row.OverflowPages = nil

	c.JSON(http.StatusOK, newResumeResponse(*row))
}

// GetResume 返回一份简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	row, ok := h.ownedResume(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*row))
}

// GetLatestResume 返回用户最近更新的简历。
func (h *ResumeHandler) GetLatestResume(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var row database.Resume
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "no resume yet")
		} else {
			Internal(c, "failed to query resume")
		}
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(row))
}

type previewPageResponse struct {
	Number            int      `json:"number"`
	SectionIDs        []string `json:"section_ids"`
	EstimatedHeight   int      `json:"estimated_height"`
	PredictedOverflow bool     `json:"predicted_overflow"`
}

type previewResponse struct {
	Pages           []previewPageResponse `json:"pages"`
	PageWidth       int                   `json:"page_width"`
	PageHeight      int                   `json:"page_height"`
	PageMargin      int                   `json:"page_margin"`
	AvailableHeight int                   `json:"available_height"`
}

// PreviewResume 在服务端运行估算+分发，返回页面划分。
// format=html 时返回完整的预览 HTML（分页权威仍是同一个 Distributor）。
func (h *ResumeHandler) PreviewResume(c *gin.Context) {
	row, ok := h.ownedResume(c)
	if !ok {
		return
	}

	var doc resume.Document
	if err := json.Unmarshal(row.Content, &doc); err != nil {
		Internal(c, "stored resume content is unreadable")
		return
	}

	if c.Query("format") == "html" {
		opts := []render.Option{}
		if h.debugOverflow {
			opts = append(opts, render.WithDebugOverflow())
		}
		renderer := render.NewRenderer(render.ThemeByName(doc.Template), opts...)
		html, _, err := renderer.RenderPreview(&doc)
		if err != nil {
			Internal(c, "failed to render preview")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	pages := render.Paginate(&doc)
	resp := previewResponse{
		Pages:           make([]previewPageResponse, 0, len(pages)),
		PageWidth:       layout.PageWidthPx,
		PageHeight:      layout.PageHeightPx,
		PageMargin:      layout.PageMarginPx,
		AvailableHeight: layout.AvailableContentHeight(doc.Customization.Layout.ShowPageNumbers),
	}
	for _, p := range pages {
		ids := make([]string, 0, len(p.Sections))
		for _, sec := range p.Sections {
			ids = append(ids, sec.ID)
		}
		resp.Pages = append(resp.Pages, previewPageResponse{
			Number:            p.Number,
			SectionIDs:        ids,
			EstimatedHeight:   p.EstimatedHeight,
			PredictedOverflow: p.PredictedOverflow,
		})
	}
	c.JSON(http.StatusOK, resp)
}

const (
	exportRateLimit  = 10
	exportRateWindow = time.Hour
)

// ExportResume 入队 PDF 导出与溢出审计任务。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	row, ok := h.ownedResume(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if h.redisClient != nil {
		key := "export_rate:" + strconv.FormatUint(uint64(row.UserID), 10)
		count, err := incrWithTTL(ctx, h.redisClient, key, exportRateWindow)
		if err == nil && count > exportRateLimit {
			Error(c, http.StatusTooManyRequests, "export rate limit reached")
			return
		}
	}

	correlationID := middleware.GetCorrelationID(c)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	exportTask, err := tasks.NewPDFGenerateTask(row.ID, correlationID)
	if err != nil {
		Internal(c, "failed to build export task")
		return
	}
	if _, err := h.asynqClient.EnqueueContext(ctx, exportTask); err != nil {
		Internal(c, "failed to enqueue export task")
		return
	}

	auditTask, err := tasks.NewLayoutAuditTask(row.ID, correlationID)
	if err != nil {
		Internal(c, "failed to build audit task")
		return
	}
	if _, err := h.asynqClient.EnqueueContext(ctx, auditTask); err != nil {
		Internal(c, "failed to enqueue audit task")
		return
	}

	if err := h.db.WithContext(ctx).Model(row).Update("status", "processing").Error; err != nil {
		Internal(c, "failed to mark resume processing")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":         "queued",
		"correlation_id": correlationID,
	})
}

// GetDownloadLink 返回最近一次导出 PDF 的限时下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	row, ok := h.ownedResume(c)
	if !ok {
		return
	}
	if row.PdfURL == "" {
		NotFound(c, "no generated pdf yet")
		return
	}

	url, err := h.storage.GeneratePresignedURL(c.Request.Context(), row.PdfURL, 15*time.Minute)
	if err != nil {
		if storage.IsNoSuchKey(err) {
			NotFound(c, "generated pdf is gone")
			return
		}
		Internal(c, "failed to generate download link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PrintDocument 是 worker 回源拉取 Document JSON 的内部端点，
// 由 X-Internal-Secret 保护，不走用户身份。
func (h *ResumeHandler) PrintDocument(c *gin.Context) {
	id, err := resumeIDFromParam(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	var row database.Resume
	if err := h.db.WithContext(c.Request.Context()).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "resume not found")
		} else {
			Internal(c, "failed to query resume")
		}
		return
	}

	c.Data(http.StatusOK, "application/json", row.Content)
}
