package engine

// Framer tracks container nesting for decoders whose token streams do not
// distinguish object keys from string values (encoding/json, go-json).
type Framer struct {
	stack []framerFrame
}

type framerFrame struct {
	object       bool
	expectingKey bool
}

// Begin records the start of an object or array.
func (f *Framer) Begin(object bool, off int64) Token {
	f.stack = append(f.stack, framerFrame{object: object, expectingKey: object})
	if object {
		return Token{Kind: KindBeginObject, Offset: off}
	}
	return Token{Kind: KindBeginArray, Offset: off}
}

// End records the end of the innermost container.
func (f *Framer) End(object bool, off int64) Token {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.memberDone()
	if object {
		return Token{Kind: KindEndObject, Offset: off}
	}
	return Token{Kind: KindEndArray, Offset: off}
}

// String classifies s as an object key or a string value.
func (f *Framer) String(s string, off int64) Token {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return Token{Kind: KindKey, String: s, Offset: off}
		}
	}
	f.memberDone()
	return Token{Kind: KindString, String: s, Offset: off}
}

// Scalar passes through a number, bool or null token.
func (f *Framer) Scalar(t Token) Token {
	f.memberDone()
	return t
}

func (f *Framer) memberDone() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
