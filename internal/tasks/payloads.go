package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFGenerate = "pdf:generate"
	TypeLayoutAudit = "layout:audit"
)

// PDFGeneratePayload 描述生成 PDF 所需的最小信息。
type PDFGeneratePayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFGenerateTask 构造一个新的简历 PDF 生成任务。
func NewPDFGenerateTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFGeneratePayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFGenerate, payload), nil
}

// LayoutAuditPayload 描述一次预览分页的溢出审计。
type LayoutAuditPayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewLayoutAuditTask 构造一个溢出审计任务：在无头浏览器中实测每一页
// 的内容高度，并与页面预算比对。
func NewLayoutAuditTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(LayoutAuditPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeLayoutAudit, payload), nil
}
