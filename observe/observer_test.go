package observe_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/reoring/fmeaskema/observe"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observe.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observe.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observe.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observe.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observe.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_LogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level observe.Level
		want  log.Level
	}{
		{name: "verbose maps to Debug", level: observe.LevelVerbose, want: log.DebugLevel},
		{name: "info maps to Info", level: observe.LevelInfo, want: log.InfoLevel},
		{name: "warning maps to Warn", level: observe.LevelWarning, want: log.WarnLevel},
		{name: "error maps to Error", level: observe.LevelError, want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.LogLevel(); got != tt.want {
				t.Errorf("Level(%d).LogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNoOpObserver(t *testing.T) {
	obs := observe.NoOpObserver{}
	obs.OnEvent(context.Background(), observe.Event{
		Type:      observe.EventValidateStart,
		Level:     observe.LevelInfo,
		Timestamp: time.Now(),
		Source:    "test",
		Data:      map[string]any{"key": "value"},
	})
}

func TestMultiObserver(t *testing.T) {
	var events1, events2 []observe.Event

	multi := observe.NewMultiObserver(&captureObserver{events: &events1}, nil, &captureObserver{events: &events2})
	multi.OnEvent(context.Background(), observe.Event{Type: observe.EventValidateComplete, Level: observe.LevelInfo})

	if len(events1) != 1 || len(events2) != 1 {
		t.Fatalf("observers received %d and %d events, want 1 each", len(events1), len(events2))
	}
	if events1[0].Type != observe.EventValidateComplete {
		t.Errorf("event type = %q, want %q", events1[0].Type, observe.EventValidateComplete)
	}
}

func TestLogObserver_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     observe.Level
		minLevel  log.Level
		expectLog bool
	}{
		{name: "verbose at debug logger", level: observe.LevelVerbose, minLevel: log.DebugLevel, expectLog: true},
		{name: "verbose at info logger", level: observe.LevelVerbose, minLevel: log.InfoLevel, expectLog: false},
		{name: "warning at warn logger", level: observe.LevelWarning, minLevel: log.WarnLevel, expectLog: true},
		{name: "info at error logger", level: observe.LevelInfo, minLevel: log.ErrorLevel, expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: tt.minLevel})

			observe.NewLogObserver(logger).OnEvent(context.Background(), observe.Event{
				Type:   observe.EventValidateWarning,
				Level:  tt.level,
				Source: "test",
			})

			if got := buf.Len() > 0; got != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", got, tt.expectLog, buf.String())
			}
		})
	}
}

func TestLogObserver_EventTypeAsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	observe.NewLogObserver(logger).OnEvent(context.Background(), observe.Event{
		Type:   observe.EventValidateFailed,
		Level:  observe.LevelWarning,
		Source: "contracts.Validator",
		Data:   map[string]any{observe.KeyModel: "dfmea.response", observe.KeyIssues: 2},
	})

	out := buf.String()
	for _, want := range []string{"validate.failed", "source=contracts.Validator", "model=dfmea.response", "issues=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"noop", "log"} {
		if obs, err := observe.GetObserver(name); err != nil || obs == nil {
			t.Fatalf("GetObserver(%q) = %v, %v", name, obs, err)
		}
	}
	if _, err := observe.GetObserver("nonexistent"); err == nil {
		t.Fatal("expected error for unknown observer")
	}

	var events []observe.Event
	observe.RegisterObserver("test-custom", &captureObserver{events: &events})
	obs, err := observe.GetObserver("test-custom")
	if err != nil {
		t.Fatalf("GetObserver failed: %v", err)
	}
	obs.OnEvent(context.Background(), observe.Event{Type: observe.EventValidateStart})
	if len(events) != 1 {
		t.Errorf("received %d events, want 1", len(events))
	}

	found := false
	for _, n := range observe.ObserverNames() {
		if n == "test-custom" {
			found = true
		}
	}
	if !found {
		t.Error("ObserverNames does not list test-custom")
	}
}

type captureObserver struct {
	events *[]observe.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observe.Event) {
	*c.events = append(*c.events, event)
}
