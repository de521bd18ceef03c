package core

import (
	"errors"
	"testing"
	"time"
)

func TestEventFireStopsAtFirstHandler(t *testing.T) {
	if !EventSystemInitialize() {
		t.Fatal("initialize failed")
	}
	defer EventSystemShutdown()

	if EventSystemInitialize() {
		t.Error("second initialize should report false")
	}

	var calls []string
	EventRegister(EVENT_CODE_ASSET_RELOADED, func(ctx EventContext) bool {
		calls = append(calls, "first")
		return false
	})
	EventRegister(EVENT_CODE_ASSET_RELOADED, func(ctx EventContext) bool {
		calls = append(calls, "second:"+ctx.Data.(*AssetEvent).Path)
		return true
	})
	EventRegister(EVENT_CODE_ASSET_RELOADED, func(ctx EventContext) bool {
		calls = append(calls, "third")
		return true
	})

	handled := EventFire(EventContext{Type: EVENT_CODE_ASSET_RELOADED, Data: &AssetEvent{Path: "head.obj"}})
	if !handled {
		t.Error("event not reported as handled")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second:head.obj" {
		t.Errorf("calls = %v", calls)
	}
	if EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Error("event without listeners reported as handled")
	}
	if EventRegister(EVENT_CODE_APPLICATION_QUIT, nil) {
		t.Error("nil listener registered")
	}
}

func TestEventsAfterShutdown(t *testing.T) {
	EventSystemInitialize()
	EventSystemShutdown()
	if EventRegister(EVENT_CODE_KEY_PRESSED, func(EventContext) bool { return true }) {
		t.Error("register succeeded after shutdown")
	}
	if EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED}) {
		t.Error("fire handled after shutdown")
	}
}

func TestInputProcessKeyFiresOnChange(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()
	if err := InputInitialize(); err != nil {
		t.Fatal(err)
	}
	defer InputShutdown()

	var events []KeyEvent
	record := func(ctx EventContext) bool {
		events = append(events, *ctx.Data.(*KeyEvent))
		return true
	}
	EventRegister(EVENT_CODE_KEY_PRESSED, record)
	EventRegister(EVENT_CODE_KEY_RELEASED, record)

	InputProcessKey(KEY_W, true)
	InputProcessKey(KEY_W, true)
	if !InputIsKeyDown(KEY_W) || InputWasKeyDown(KEY_W) {
		t.Error("W should be down now and up in the previous frame")
	}
	InputUpdate()
	InputProcessKey(KEY_W, false)
	if InputIsKeyDown(KEY_W) || !InputWasKeyDown(KEY_W) {
		t.Error("W should be up now and down in the previous frame")
	}

	if len(events) != 2 || !events[0].Pressed || events[1].Pressed || events[1].KeyCode != KEY_W {
		t.Errorf("events = %+v", events)
	}
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock()
	c.now = func() time.Time { return now }

	c.Update()
	if c.Elapsed() != 0 {
		t.Errorf("stopped clock elapsed = %v", c.Elapsed())
	}
	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("elapsed = %v, want 1.5", c.Elapsed())
	}
	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("elapsed after stop = %v, want 1.5", c.Elapsed())
	}
}

func TestMetrics(t *testing.T) {
	if err := MetricsInitialize(); err != nil {
		t.Fatal(err)
	}
	*metricsState = MetricsState{}

	reported := 0
	for i := 0; i < int(AVG_COUNT); i++ {
		if MetricsUpdate(0.05, 42) {
			reported++
		}
	}
	// 30 frames of 50ms: one full second passed once.
	if reported != 1 {
		t.Errorf("fps reported %d times, want 1", reported)
	}
	fps, frameMS := MetricsFrame()
	if fps != 21 {
		t.Errorf("fps = %v, want 21", fps)
	}
	if frameMS < 49.99 || frameMS > 50.01 {
		t.Errorf("avg frame time = %v ms, want 50", frameMS)
	}
	if MetricsPixelsWritten() != 42 || MetricsFPS() != fps || MetricsFrameTime() != frameMS {
		t.Error("accessors disagree with MetricsFrame")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{" WARN ", WarnLevel, false},
		{"", InfoLevel, false},
		{"error", ErrorLevel, false},
		{"verbose", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %q, %v", tt.in, got, err)
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error %v does not wrap ErrInvalidConfig", err)
		}
	}
	SetLogLevel(DebugLevel)
	SetLogLevel(InfoLevel)
}
