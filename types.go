package fmeaskema

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrict      UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                            // Drop unknown keys.
	UnknownWarn                             // Drop unknown keys and emit a Warning naming them.
	UnknownPassthrough                      // Preserve unknown keys in the parsed record.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrict:
		return "strict"
	case UnknownStrip:
		return "strip"
	case UnknownWarn:
		return "warn"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// NumberMode dictates how numbers are interpreted.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // Fast mode (with potential precision loss).
	NumberJSONNumber                   // Preserve json.Number.
)

// Strictness configures enforcement for duplicate keys and NaN handling.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
	AllowNaN       bool     // Allow NaN/±Inf values.
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseSeverity maps "ignore", "warn" and "error" to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "", "ignore":
		return Ignore, true
	case "warn":
		return Warn, true
	case "error":
		return Error, true
	}
	return Ignore, false
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	FailFast   bool
}
