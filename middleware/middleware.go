// Package middleware validates JSON request bodies at an HTTP boundary.
package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/contracts"
)

// ctxKeyResult is a typed context key for storing contracts.Result[T].
// Using a generic struct type ensures uniqueness per T.
type ctxKeyResult[T any] struct{}

// ContextWithResult attaches a Result[T] to the context.
func ContextWithResult[T any](ctx context.Context, res contracts.Result[T]) context.Context {
	return context.WithValue(ctx, ctxKeyResult[T]{}, res)
}

// ResultFromContext retrieves the Result[T] stored by Validate.
func ResultFromContext[T any](ctx context.Context) (contracts.Result[T], bool) {
	v, ok := ctx.Value(ctxKeyResult[T]{}).(contracts.Result[T])
	return v, ok
}

// Validate reads the request body, validates it against m and calls next with
// the Result stored in the request context. On failure it answers with
// ErrorPayload: 422 for a schema mismatch, 400 otherwise.
func Validate[T any](v *contracts.Validator, m contracts.Model[T], next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := io.Reader(r.Body)
		if max := v.Options().ParseOpt.MaxBytes; max > 0 {
			body = io.LimitReader(r.Body, max+1)
		}
		data, err := io.ReadAll(body)
		if err != nil {
			WriteError(w, &contracts.ValidationError{
				Model:  m.Name(),
				Kind:   contracts.KindMalformedInput,
				Issues: fmeaskema.Issues{{Path: "/", Code: fmeaskema.CodeParseError, Message: err.Error(), Cause: err}},
			})
			return
		}
		res, err := contracts.Validate(r.Context(), v, m, data)
		if err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithResult(r.Context(), res)))
	})
}

// IssuePayload is the wire form of one issue.
type IssuePayload struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Rule    string         `json:"rule,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// ErrorPayload is the body written for a failed validation.
type ErrorPayload struct {
	Model  string         `json:"model"`
	Kind   string         `json:"kind"`
	Issues []IssuePayload `json:"issues"`
}

// NewErrorPayload shapes a ValidationError for JSON responses.
func NewErrorPayload(ve *contracts.ValidationError) ErrorPayload {
	out := ErrorPayload{Model: ve.Model, Kind: string(ve.Kind), Issues: make([]IssuePayload, len(ve.Issues))}
	for i, it := range ve.Issues {
		out.Issues[i] = IssuePayload{Path: it.Path, Code: it.Code, Message: it.Message, Hint: it.Hint, Rule: it.Rule, Params: it.Params}
	}
	return out
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(k contracts.Kind) int {
	if k == contracts.KindSchemaMismatch {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// WriteError writes err as an ErrorPayload. Errors that are not a
// *contracts.ValidationError become a 500 without details.
func WriteError(w http.ResponseWriter, err error) {
	var ve *contracts.ValidationError
	if !errors.As(err, &ve) {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data, merr := json.Marshal(NewErrorPayload(ve))
	if merr != nil {
		http.Error(w, merr.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(ve.Kind))
	_, _ = w.Write(data)
}
