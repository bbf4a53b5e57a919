package fmeaskema

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/fmeaskema/internal/engine"
)

// ParseFrom is the primary entry point. It consumes tokens from the Source,
// builds an any value, and delegates validation to the Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := DecodeAny(ctx, src, opt)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

// DecodeAny reads one JSON document from src into the untyped tree, applying
// duplicate key, depth and size enforcement from opt. Errors are Issues.
func DecodeAny(ctx context.Context, src Source, opt ParseOpt) (any, error) {
	inner := engineTokenSource(src)
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		FailFast:    opt.FailFast,
	}
	if eo.OnDuplicate == eng.DupWarn {
		eo.IssueSink = func(si eng.SimpleIssue) {
			Logger().Warn("duplicate key", "path", si.Path, "offset", src.Location())
		}
	}
	if eo.Enabled() {
		inner = eng.WrapWithEnforcement(inner, eo)
	}
	conv := eng.AsJSONNumber
	if src.NumberMode() == NumberFloat64 {
		conv = eng.AsFloat64
	}
	v, err := eng.DecodeDocument(inner, conv)
	if err != nil {
		return nil, toIssues(err, src.Location())
	}
	return v, nil
}

// StreamParse validates input by streaming tokens from an io.Reader.
// When MaxBytes is set it enforces the size cap up front, otherwise it
// delegates directly to ParseFrom via the Source driver.
func StreamParse[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		var zero T
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return zero, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			return zero, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ParseFrom(ctx, s, JSONBytes(data), opts...)
	}
	return ParseFrom(ctx, s, JSONReader(r), opts...)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func toIssues(err error, offset int64) Issues {
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: offset})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Offset: offset, Cause: err})
}
