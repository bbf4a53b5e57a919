// Package observe provides event hooks around contract validation. Level
// values follow OpenTelemetry SeverityNumbers so events can be forwarded to a
// collector without translation.
package observe

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Level represents event severity aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8)
	LevelInfo    Level = 9  // OTel INFO (9-12)
	LevelWarning Level = 13 // OTel WARN (13-16)
	LevelError   Level = 17 // OTel ERROR (17-20)
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// LogLevel maps this level to the charmbracelet/log level used by LogObserver.
func (l Level) LogLevel() log.Level {
	switch {
	case l <= 8:
		return log.DebugLevel
	case l <= 12:
		return log.InfoLevel
	case l <= 16:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}

// EventType identifies the kind of event.
type EventType string

const (
	EventValidateStart    EventType = "validate.start"
	EventValidateWarning  EventType = "validate.warning"
	EventValidateComplete EventType = "validate.complete"
	EventValidateFailed   EventType = "validate.failed"
)

// Well-known Data keys.
const (
	KeyValidationID = "validation_id"
	KeyModel        = "model"
	KeyDuration     = "duration"
	KeyKind         = "kind"
	KeyCodes        = "codes"
	KeyIssues       = "issues"
	KeyPath         = "path"
	KeyKeys         = "keys"
	KeyWarnings     = "warnings"
)

// Event is emitted once per validation phase. Fields map to OTel LogRecord
// fields: Type is the event name, Source the instrumentation scope and Data
// the attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives validation events for logging, tracing or metrics.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
