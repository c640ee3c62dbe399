// Package measure provides a layout.MeasurementPort backed by a go-rod
// headless chromium page: the server-side stand-in for the browser's
// ResizeObserver/MutationObserver pair.
package measure

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
)

const defaultSampleInterval = 200 * time.Millisecond

// RodPort samples one element's scrollHeight in a rendered page. The
// first sample is taken synchronously inside Observe, so a frame is
// settled by the time Observe returns; afterwards a polling goroutine
// keeps the frame reactive until Unobserve.
type RodPort struct {
	page     *rod.Page
	selector string
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	stopped sync.WaitGroup
}

// NewRodPort observes the element matching selector on an already
// rendered page. The page's lifetime belongs to the caller.
func NewRodPort(page *rod.Page, selector string) *RodPort {
	return &RodPort{
		page:     page,
		selector: selector,
		interval: defaultSampleInterval,
	}
}

func (p *RodPort) sample() (int, error) {
	js := fmt.Sprintf(`() => {
	  const el = document.querySelector(%q);
	  if (!el) return -1;
	  return el.scrollHeight;
	}`, p.selector)

	result, err := p.page.Timeout(5 * time.Second).Eval(js)
	if err != nil {
		return 0, fmt.Errorf("sample %q: %w", p.selector, err)
	}
	h := result.Value.Int()
	if h < 0 {
		return 0, fmt.Errorf("element %q not found", p.selector)
	}
	return h, nil
}

// Observe implements layout.MeasurementPort. It fails when the element
// cannot be measured at all, which the frame treats as degraded mode.
func (p *RodPort) Observe(fn func(contentHeightPx int)) error {
	first, err := p.sample()
	if err != nil {
		return err
	}
	fn(first)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return fmt.Errorf("port already observing %q", p.selector)
	}
	stop := make(chan struct{})
	p.stop = stop

	p.stopped.Add(1)
	go func() {
		defer p.stopped.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		last := first
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				h, err := p.sample()
				if err != nil {
					// 页面可能正被关闭；停止采样，Frame 保留最后状态。
					return
				}
				if h != last {
					last = h
					fn(h)
				}
			}
		}
	}()

	return nil
}

// Unobserve implements layout.MeasurementPort. Safe to call twice.
func (p *RodPort) Unobserve() {
	p.mu.Lock()
	stop := p.stop
	p.stop = nil
	p.mu.Unlock()

	if stop != nil {
		close(stop)
		p.stopped.Wait()
	}
}
