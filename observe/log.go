package observe

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/reoring/fmeaskema"
)

// LogObserver writes events to a charmbracelet/log logger. The event type
// becomes the message and Data keys are emitted in sorted order.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver creates a LogObserver that emits to logger. A nil logger
// follows fmeaskema.Logger at emission time.
func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnEvent(ctx context.Context, event Event) {
	keys := make([]string, 0, len(event.Data))
	for k := range event.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 2*len(keys)+2)
	kv = append(kv, "source", event.Source)
	for _, k := range keys {
		kv = append(kv, k, event.Data[k])
	}
	logger := o.logger
	if logger == nil {
		logger = fmeaskema.Logger()
	}
	logger.Log(event.Level.LogLevel(), string(event.Type), kv...)
}
