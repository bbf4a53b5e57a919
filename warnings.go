package fmeaskema

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Warning is a non-fatal diagnostic raised while parsing. The only producer
// today is the UnknownWarn policy, which reports the keys it dropped.
type Warning struct {
	Model string   // Name of the model whose record carried the keys.
	Path  string   // JSON Pointer of that record ("/" for the document root).
	Keys  []string // Sorted extraneous keys that were dropped.
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %s: ignored undefined fields [%s]", w.Model, w.Path, strings.Join(w.Keys, ", "))
}

// Issue converts the warning into an Issue with CodeUnknownField, for callers
// that promote warnings to errors.
func (w Warning) Issue() Issue {
	return Issue{
		Path:    w.Path,
		Code:    CodeUnknownField,
		Message: w.String(),
		Params:  map[string]any{"model": w.Model, "keys": append([]string(nil), w.Keys...)},
	}
}

// WarningSink receives warnings. Implementations must be safe for concurrent
// use when shared between parses.
type WarningSink func(ctx context.Context, w Warning)

// EmitWarning delivers w to the sink installed on ctx, falling back to the
// package logger when there is none.
func EmitWarning(ctx context.Context, w Warning) {
	if w.Path == "" {
		w.Path = "/"
	}
	if sink, ok := WarningSinkFrom(ctx); ok {
		sink(ctx, w)
		return
	}
	Logger().Warn("ignored undefined fields", "model", w.Model, "path", w.Path, "keys", w.Keys)
}

// WarningCollector accumulates warnings for one validation call.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []Warning
}

// Add records w. Its signature matches WarningSink.
func (c *WarningCollector) Add(_ context.Context, w Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
}

// Warnings returns a copy of the recorded warnings in emission order.
func (c *WarningCollector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Warning(nil), c.warnings...)
}

// Len reports how many warnings were recorded.
func (c *WarningCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}
