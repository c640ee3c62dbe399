package layout

import (
	"log/slog"
	"sync"
)

// MeasurementPort 是 Frame 对宿主环境布局测量能力的抽象。
// Web 宿主用 ResizeObserver/MutationObserver 实现；无头渲染或测试
// 用手动回调实现。Observe 注册后，每次内容高度变化（以及首次布局
// 完成）都应回调一次当前内容高度。
type MeasurementPort interface {
	// Observe starts delivering content height samples to fn. It
	// returns an error when the host environment cannot measure at
	// all; the frame then degrades to no overflow detection.
	Observe(fn func(contentHeightPx int)) error
	// Unobserve tears the subscription down. Calling it more than
	// once must be safe.
	Unobserve()
}

// FrameState is the frame's lifecycle position.
type FrameState int

const (
	// FrameIdle: no content mounted, nothing observed.
	FrameIdle FrameState = iota
	// FrameMeasuring: mounted, waiting for a height sample.
	FrameMeasuring
	// FrameSettled: a height was computed; overflow flag is current.
	FrameSettled
)

func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "idle"
	case FrameMeasuring:
		return "measuring"
	case FrameSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Frame hosts one page's content inside the immutable page geometry and
// reconciles it with reality: the distributor placed content here based
// on estimates, the frame watches what actually rendered.
//
// 几何永远固定（816×1056，边距 48），Customization 无权改写；唯一被
// 尊重的样式是页码字体与颜色，由渲染层处理。Frame 只裁剪并上报溢出，
// 不做任何自动纠正。
type Frame struct {
	mu sync.Mutex

	available  int
	state      FrameState
	overflow   bool
	degraded   bool
	lastHeight int

	port       MeasurementPort
	onOverflow func(bool)
	logger     *slog.Logger
}

// FrameOptions configures a frame.
type FrameOptions struct {
	// ShowPageNumbers reserves the footer band inside the budget.
	ShowPageNumbers bool
	// OnOverflow is invoked exactly once per overflow transition
	// (false→true and true→false), never per measurement.
	OnOverflow func(overflow bool)
	Logger     *slog.Logger
}

// NewFrame builds an unmounted frame. The overflow flag starts false.
func NewFrame(opts FrameOptions) *Frame {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Frame{
		available:  AvailableContentHeight(opts.ShowPageNumbers),
		state:      FrameIdle,
		onOverflow: opts.OnOverflow,
		logger:     logger,
	}
}

// Mount attaches content measurement. When the port cannot observe,
// the frame logs and degrades: it renders normally but overflow stays
// false for its whole lifetime. Rendering never crashes over a missing
// observation API.
func (f *Frame) Mount(port MeasurementPort) {
	f.mu.Lock()
	if f.state != FrameIdle {
		f.mu.Unlock()
		return
	}
	f.state = FrameMeasuring
	f.port = port
	f.mu.Unlock()

	if err := port.Observe(f.handleMeasurement); err != nil {
		f.mu.Lock()
		f.degraded = true
		f.state = FrameSettled
		f.mu.Unlock()
		f.logger.Warn("frame measurement unavailable, overflow detection disabled",
			slog.Any("error", err),
		)
	}
}

// Invalidate marks mounted content as changed; the frame re-enters
// Measuring until the next sample arrives. Stale samples racing a
// newer distribution are acceptable: last write wins.
func (f *Frame) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FrameSettled && !f.degraded {
		f.state = FrameMeasuring
	}
}

func (f *Frame) handleMeasurement(contentHeightPx int) {
	f.mu.Lock()
	if f.state == FrameIdle || f.degraded {
		f.mu.Unlock()
		return
	}
	f.lastHeight = contentHeightPx
	f.state = FrameSettled

	over := contentHeightPx > f.available
	changed := over != f.overflow
	f.overflow = over
	cb := f.onOverflow
	f.mu.Unlock()

	// 回调在锁外触发：宿主可能在回调里重入 Frame（重新分发内容后
	// Invalidate），持锁回调会死锁。
	if changed && cb != nil {
		cb(over)
	}
}

// State reports the current lifecycle position.
func (f *Frame) State() FrameState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Overflow reports whether the last measurement exceeded the budget.
func (f *Frame) Overflow() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overflow
}

// Degraded reports whether overflow detection is disabled.
func (f *Frame) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

// ContentHeight returns the last measured content height in pixels.
func (f *Frame) ContentHeight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastHeight
}

// AvailableHeight returns the fixed content budget this frame measures
// against.
func (f *Frame) AvailableHeight() int {
	return f.available
}

// Close tears down the measurement subscription. Mandatory on unmount:
// a closed frame ignores late samples instead of invoking dangling
// callbacks.
func (f *Frame) Close() {
	f.mu.Lock()
	port := f.port
	f.port = nil
	f.state = FrameIdle
	f.mu.Unlock()

	if port != nil {
		port.Unobserve()
	}
}
