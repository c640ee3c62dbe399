package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误（例如资源缺失但流程可继续）
// - 5xxx：系统错误（需要中断流程）
const (
	OK              = 0
	ResourceMissing = 4004
	// LayoutOverflow：导出完成但审计发现有页面内容超出预算；
	// 流程继续，由用户自行缩减内容。
	LayoutOverflow = 4005
	SystemError    = 5000
)
