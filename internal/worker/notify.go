package worker

// 统一的 WebSocket 消息协议（通过 Redis Pub/Sub 转发给前端）。
// 注意：这里的字段名与前端解析保持一致。
type ExportNotifyMessage struct {
	Type          string `json:"type"`
	Status        string `json:"status"`
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
	// OverflowPages 列出审计中超出预算的页号；仅 layout:audit 结果携带。
	OverflowPages []int `json:"overflow_pages,omitempty"`
}

const (
	notifyTypeExport = "pdf_export"
	notifyTypeAudit  = "layout_audit"
)
