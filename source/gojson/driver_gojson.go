// Package gojson is the goccy/go-json token driver.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/fmeaskema"
	eng "github.com/reoring/fmeaskema/internal/engine"
)

// Driver returns a fmeaskema.JSONDriver backed by goccy/go-json.
func Driver() fmeaskema.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) fmeaskema.Source {
	return fmeaskema.SourceFromEngine(NewReader(r), fmeaskema.NumberJSONNumber)
}
func (driverGoJSON) NewBytes(b []byte) fmeaskema.Source {
	return fmeaskema.SourceFromEngine(NewBytes(b), fmeaskema.NumberJSONNumber)
}
func (driverGoJSON) Name() string { return "go-json" }

type source struct {
	dec    *j.Decoder
	framer eng.Framer
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return s.framer.Begin(true, -1), nil
		case '}':
			return s.framer.End(true, -1), nil
		case '[':
			return s.framer.Begin(false, -1), nil
		default:
			return s.framer.End(false, -1), nil
		}
	case string:
		return s.framer.String(v, -1), nil
	case bool:
		return s.framer.Scalar(eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}), nil
	case j.Number:
		return s.framer.Scalar(eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}), nil
	case float64:
		return s.framer.Scalar(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}), nil
	}
	return s.framer.Scalar(eng.Token{Kind: eng.KindNull, Offset: -1}), nil
}

// Location is unknown: go-json's Decoder does not expose an input offset.
func (s *source) Location() int64 { return -1 }
