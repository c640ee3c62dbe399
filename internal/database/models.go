package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。认证由外部协作方负责；这里只承载归属关系。
type User struct {
	gorm.Model
	Username string   `gorm:"uniqueIndex;size:64"`
	Resumes  []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历。
// Content(JSONB) 存储 resume.Document：内容 + 分区顺序 + 样式配置。
type Resume struct {
	gorm.Model
	Title   string         `gorm:"size:255"`
	Content datatypes.JSON `gorm:"type:jsonb"`
	UserID  uint           `gorm:"index"`
	User    User           `gorm:"constraint:OnDelete:CASCADE"`
	PdfURL  string         `gorm:"size:512"`
	Status  string         `gorm:"size:32"`
	// OverflowPages 是最近一次溢出审计中超出页面预算的页号（JSON 数组），
	// 空值表示未审计或全部合规。溢出只记录，不自动纠正。
	OverflowPages   datatypes.JSON `gorm:"type:jsonb"`
	AuditedAt       *time.Time
	PreviewImageURL string `gorm:"size:1024"`
}
