package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestProfilerLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var out bytes.Buffer
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(clock.now),
		WithLogger(log.New(&out, "", 0)),
	)

	for i := 0; i < 9; i++ {
		clock.t = clock.t.Add(100 * time.Millisecond)
		if p.Tick(10 * time.Millisecond) {
			t.Fatalf("tick %d logged before the interval elapsed", i)
		}
	}
	clock.t = clock.t.Add(100 * time.Millisecond)
	if !p.Tick(30 * time.Millisecond) {
		t.Fatal("tick at the interval boundary did not log")
	}

	s := p.Last()
	if s.FPS < 9.99 || s.FPS > 10.01 {
		t.Errorf("FPS = %v, want 10", s.FPS)
	}
	if s.AvgFrameTime != 12*time.Millisecond {
		t.Errorf("AvgFrameTime = %v, want 12ms", s.AvgFrameTime)
	}
	if s.MaxFrameTime != 30*time.Millisecond {
		t.Errorf("MaxFrameTime = %v, want 30ms", s.MaxFrameTime)
	}
	if !strings.Contains(out.String(), "[Profiler] FPS: 10.00") {
		t.Errorf("log output = %q", out.String())
	}
	if strings.Count(out.String(), "\n") != 1 {
		t.Errorf("expected exactly one log line, got %q", out.String())
	}
}

func TestProfilerResetsBetweenIntervals(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var out bytes.Buffer
	p := NewProfiler(WithClock(clock.now), WithLogger(log.New(&out, "", 0)))

	clock.t = clock.t.Add(time.Second)
	p.Tick(50 * time.Millisecond)

	clock.t = clock.t.Add(500 * time.Millisecond)
	p.Tick(5 * time.Millisecond)
	clock.t = clock.t.Add(500 * time.Millisecond)
	if !p.Tick(5 * time.Millisecond) {
		t.Fatal("second interval did not log")
	}
	if got := p.Last().MaxFrameTime; got != 5*time.Millisecond {
		t.Errorf("MaxFrameTime = %v, want 5ms after reset", got)
	}
	if got := p.Last().FPS; got < 1.99 || got > 2.01 {
		t.Errorf("FPS = %v, want 2", got)
	}
}
