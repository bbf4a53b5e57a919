// Package engine turns a stream of JSON tokens into the untyped tree consumed
// by schemas: map[string]any, []any, string, bool, nil and json.Number (or
// float64 when requested).
package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned when a document holds more than one top-level value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// NumberConv converts the textual form of a JSON number into the tree value.
type NumberConv func(string) (any, error)

// AsJSONNumber keeps numbers as json.Number so 64-bit ids survive intact.
func AsJSONNumber(s string) (any, error) { return json.Number(s), nil }

// AsFloat64 decodes numbers as float64.
func AsFloat64(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeDocument reads exactly one top-level value from src and verifies that
// nothing but EOF follows it.
func DecodeDocument(src TokenSource, conv NumberConv) (any, error) {
	if conv == nil {
		conv = AsJSONNumber
	}
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := decodeValue(src, tok, conv)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err == nil {
		return nil, ErrTrailingData
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}

func decodeValue(src TokenSource, tok Token, conv NumberConv) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, conv)
	case KindBeginArray:
		return decodeArray(src, conv)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource, conv NumberConv) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt, conv)
		if err != nil {
			return nil, err
		}
		// last occurrence wins, matching encoding/json
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource, conv NumberConv) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, conv)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
