package layout

import (
	"errors"
	"testing"
)

// fakePort drives measurements by hand, standing in for a host layout
// observer.
type fakePort struct {
	fn         func(int)
	unobserved int
	observeErr error
}

func (p *fakePort) Observe(fn func(int)) error {
	if p.observeErr != nil {
		return p.observeErr
	}
	p.fn = fn
	return nil
}

func (p *fakePort) Unobserve() {
	p.unobserved++
	p.fn = nil
}

func (p *fakePort) measure(h int) {
	if p.fn != nil {
		p.fn(h)
	}
}

func TestFrame_OverflowTransitionsFireOnce(t *testing.T) {
	var calls []bool
	frame := NewFrame(FrameOptions{
		OnOverflow: func(over bool) { calls = append(calls, over) },
	})
	port := &fakePort{}
	frame.Mount(port)

	if got := frame.State(); got != FrameMeasuring {
		t.Fatalf("state after mount = %s, want measuring", got)
	}

	// available height without page numbers is 1056-96 = 960
	port.measure(1100)
	if got := frame.State(); got != FrameSettled {
		t.Fatalf("state after measurement = %s, want settled", got)
	}
	if !frame.Overflow() {
		t.Fatal("expected overflow after 1100px measurement against 960px budget")
	}

	// oscillate within the same boolean outcome: no further callbacks
	port.measure(1050)
	port.measure(1200)

	// shrink back under budget
	port.measure(900)
	if frame.Overflow() {
		t.Fatal("expected overflow cleared after 900px measurement")
	}
	port.measure(910)

	want := []bool{true, false}
	if len(calls) != len(want) {
		t.Fatalf("onOverflow fired %d times (%v), want %v", len(calls), calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("onOverflow sequence %v, want %v", calls, want)
		}
	}
}

func TestFrame_PageNumberBandShrinksBudget(t *testing.T) {
	frame := NewFrame(FrameOptions{ShowPageNumbers: true})
	if got := frame.AvailableHeight(); got != 930 {
		t.Fatalf("available height with page numbers = %d, want 930", got)
	}

	var fired bool
	frame = NewFrame(FrameOptions{
		ShowPageNumbers: true,
		OnOverflow:      func(bool) { fired = true },
	})
	port := &fakePort{}
	frame.Mount(port)

	// 940 fits the 960 budget but not the 930 one
	port.measure(940)
	if !fired || !frame.Overflow() {
		t.Fatal("expected 940px content to overflow the 930px budget")
	}
}

func TestFrame_CloseTearsDownObservation(t *testing.T) {
	var calls int
	frame := NewFrame(FrameOptions{
		OnOverflow: func(bool) { calls++ },
	})
	port := &fakePort{}
	frame.Mount(port)
	frame.Close()

	if port.unobserved != 1 {
		t.Fatalf("expected exactly one Unobserve call, got %d", port.unobserved)
	}
	if got := frame.State(); got != FrameIdle {
		t.Fatalf("state after close = %s, want idle", got)
	}

	// a sample arriving after teardown must be ignored
	frame.handleMeasurement(2000)
	if calls != 0 || frame.Overflow() {
		t.Fatal("late measurement after close must not fire callbacks")
	}
}

func TestFrame_DegradesWhenObservationUnavailable(t *testing.T) {
	var calls int
	frame := NewFrame(FrameOptions{
		OnOverflow: func(bool) { calls++ },
	})
	port := &fakePort{observeErr: errors.New("no observer api")}
	frame.Mount(port)

	if !frame.Degraded() {
		t.Fatal("expected degraded mode when Observe fails")
	}
	if got := frame.State(); got != FrameSettled {
		t.Fatalf("degraded frame state = %s, want settled", got)
	}

	// overflow is permanently false in degraded mode
	frame.handleMeasurement(5000)
	if frame.Overflow() || calls != 0 {
		t.Fatal("degraded frame must never report overflow")
	}
}

func TestFrame_ReentrantCallbackDoesNotDeadlock(t *testing.T) {
	port := &fakePort{}
	var frame *Frame
	frame = NewFrame(FrameOptions{
		OnOverflow: func(over bool) {
			// hosts redistribute and invalidate from inside the callback
			frame.Invalidate()
			_ = frame.Overflow()
		},
	})
	frame.Mount(port)

	port.measure(1200)
	if got := frame.State(); got != FrameMeasuring {
		t.Fatalf("state after re-entrant invalidate = %s, want measuring", got)
	}
	port.measure(800)
	if frame.Overflow() {
		t.Fatal("expected overflow cleared by follow-up measurement")
	}
}
