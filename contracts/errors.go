package contracts

import (
	"errors"
	"fmt"

	"github.com/reoring/fmeaskema"
)

// Kind classifies a failed validation.
type Kind string

const (
	// KindSchemaMismatch: a tag outside the domain's set, or a declared field
	// failing its type, range or enum constraint.
	KindSchemaMismatch Kind = "SchemaMismatch"
	// KindMalformedFilter: a "nodes" filter entry without an integer uuid.
	KindMalformedFilter Kind = "MalformedFilter"
	// KindMalformedInput: the body is not a single well-formed JSON document.
	KindMalformedInput Kind = "MalformedInput"
)

// Sentinels for errors.Is.
var (
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrMalformedFilter = errors.New("malformed filter")
	ErrMalformedInput  = errors.New("malformed input")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMalformedFilter:
		return ErrMalformedFilter
	case KindMalformedInput:
		return ErrMalformedInput
	default:
		return ErrSchemaMismatch
	}
}

// ValidationError is the single error value returned for a failed
// validation. It names the model and lists every issue found.
type ValidationError struct {
	Model  string
	Kind   Kind
	Issues fmeaskema.Issues
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Model, e.Kind, e.Issues.Error())
}

// Is matches the sentinel of the error's kind.
func (e *ValidationError) Is(target error) bool { return target == e.Kind.sentinel() }

// Unwrap exposes the issues to errors.As.
func (e *ValidationError) Unwrap() error { return e.Issues }

// Classify returns the kind of error that iss describes.
func Classify(iss fmeaskema.Issues) Kind {
	if iss.HasCode(fmeaskema.CodeMalformedFilter) {
		return KindMalformedFilter
	}
	for _, it := range iss {
		switch it.Code {
		case fmeaskema.CodeParseError, fmeaskema.CodeTruncated, fmeaskema.CodeDuplicateKey:
			return KindMalformedInput
		}
	}
	return KindSchemaMismatch
}

// newValidationError wraps err for model. Errors that carry no issues are
// reported as a single parse_error issue; the document root is "/".
func newValidationError(model string, err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	iss := fmeaskema.IssuesFromErr("", err)
	for i := range iss {
		if iss[i].Path == "" {
			iss[i].Path = "/"
		}
	}
	return &ValidationError{Model: model, Kind: Classify(iss), Issues: iss}
}
