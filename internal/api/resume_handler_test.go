package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cvpress/internal/database"
	"cvpress/internal/layout"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// 每个测试独立的内存库，cache=shared 让连接池里的连接看到同一份数据
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestHandler(db *gorm.DB) *ResumeHandler {
	return NewResumeHandler(db, nil, nil, nil, 20, false)
}

// validContent 覆盖多个分区，带一段较长的 summary，保证预览会分页。
const validContent = `{
  "data": {
    "personal": {"full_name": "测试用户", "summary": "多年后端开发经验。"},
    "experience": [
      {"id": "exp-1", "company": "Example Corp", "position": "工程师", "visible": true},
      {"id": "exp-2", "company": "Another Inc", "position": "高级工程师", "visible": true}
    ],
    "skills": [
      {"id": "sk-1", "category": "语言", "skills": ["Go"], "visible": true}
    ]
  },
  "sections": [
    {"id": "s-personal", "title": "个人信息", "component": "personal", "visible": true, "order": 0},
    {"id": "s-experience", "title": "工作经历", "component": "experience", "visible": true, "order": 1},
    {"id": "s-skills", "title": "技能", "component": "skills", "visible": true, "order": 2}
  ]
}`

func performRequest(t *testing.T, method, target string, body []byte, userID uint, handler gin.HandlerFunc, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	if userID != 0 {
		c.Set("userID", userID)
	}
	handler(c)
	return w
}

func TestCreateResume_RejectsInvalidDocument(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newTestHandler(db)

	// sections 缺失，schema 校验应拒绝
	body := []byte(`{"title": "bad", "content": {"data": {}}}`)
	w := performRequest(t, http.MethodPost, "/v1/resume", body, 1, h.CreateResume, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&database.Resume{}).Count(&count).Error; err != nil {
		t.Fatalf("count resumes: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows persisted, got %d", count)
	}
}

func TestCreateResume_PersistsDraft(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newTestHandler(db)

	body := []byte(`{"title": "我的简历", "content": ` + validContent + `}`)
	w := performRequest(t, http.MethodPost, "/v1/resume", body, 7, h.CreateResume, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var row database.Resume
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("load created resume: %v", err)
	}
	if row.UserID != 7 {
		t.Fatalf("expected user 7, got %d", row.UserID)
	}
	if row.Status != "draft" {
		t.Fatalf("expected status draft, got %q", row.Status)
	}
}

func TestCreateResume_EnforcesLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := NewResumeHandler(db, nil, nil, nil, 1, false)

	seed := database.Resume{Title: "existing", Content: []byte(validContent), UserID: 3, Status: "draft"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	body := []byte(`{"title": "second", "content": ` + validContent + `}`)
	w := performRequest(t, http.MethodPost, "/v1/resume", body, 3, h.CreateResume, nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetResume_ScopedToOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newTestHandler(db)

	seed := database.Resume{Title: "not yours", Content: []byte(validContent), UserID: 2, Status: "draft"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	params := gin.Params{{Key: "id", Value: "1"}}
	w := performRequest(t, http.MethodGet, "/v1/resume/1", nil, 1, h.GetResume, params)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPreviewResume_ReturnsPageLayout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newTestHandler(db)

	seed := database.Resume{Title: "preview", Content: []byte(validContent), UserID: 5, Status: "draft"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	params := gin.Params{{Key: "id", Value: "1"}}
	w := performRequest(t, http.MethodGet, "/v1/resume/1/preview", nil, 5, h.PreviewResume, params)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var resp previewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode preview response: %v", err)
	}
	if resp.PageWidth != layout.PageWidthPx || resp.PageHeight != layout.PageHeightPx {
		t.Fatalf("unexpected page geometry: %dx%d", resp.PageWidth, resp.PageHeight)
	}
	if len(resp.Pages) == 0 {
		t.Fatal("expected at least one page")
	}

	// 三个可见分区都应落在某一页上，且顺序保持
	var ids []string
	for _, p := range resp.Pages {
		ids = append(ids, p.SectionIDs...)
	}
	want := []string{"s-personal", "s-experience", "s-skills"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d sections across pages, got %v", len(want), ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("section order broken at %d: got %v", i, ids)
		}
	}
}

func TestUpdateResume_ResetsAuditState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newTestHandler(db)

	seed := database.Resume{
		Title:         "audited",
		Content:       []byte(validContent),
		UserID:        9,
		Status:        "completed",
		OverflowPages: []byte(`[2]`),
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	body := []byte(`{"title": "edited", "content": ` + validContent + `}`)
	params := gin.Params{{Key: "id", Value: "1"}}
	w := performRequest(t, http.MethodPut, "/v1/resume/1", body, 9, h.UpdateResume, params)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var row database.Resume
	if err := db.First(&row, seed.ID).Error; err != nil {
		t.Fatalf("reload resume: %v", err)
	}
	if len(row.OverflowPages) != 0 && string(row.OverflowPages) != "null" {
		t.Fatalf("expected overflow pages cleared, got %s", row.OverflowPages)
	}
	if row.AuditedAt != nil {
		t.Fatalf("expected audited_at cleared, got %v", row.AuditedAt)
	}
}

func TestPrintDocument_ReturnsRawContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newTestHandler(db)

	seed := database.Resume{Title: "print", Content: []byte(validContent), UserID: 4, Status: "draft"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	params := gin.Params{{Key: "id", Value: "1"}}
	w := performRequest(t, http.MethodGet, "/v1/resume/1/print", nil, 0, h.PrintDocument, params)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode print payload: %v", err)
	}
	if _, ok := doc["sections"]; !ok {
		t.Fatal("print payload missing sections")
	}
}
