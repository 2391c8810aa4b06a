package svcconfig

import (
	"fmt"
	"io"

	eng "github.com/rpckit/svcconfig/internal/engine"
)

// DecodeOpt bounds resource use while building the value tree. Zero values
// disable the corresponding limit.
type DecodeOpt struct {
	MaxDepth int
	MaxBytes int64
}

// DuplicateKeyError reports a repeated object key, a hard parse error. The
// offset is the byte position of the duplicate key token (-1 when the
// driver does not track offsets). Duplicate keys are never last-wins.
type DuplicateKeyError struct {
	Key    string
	Offset int64
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q at index %d", e.Key, e.Offset)
}

// SyntaxError reports malformed JSON input.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("JSON parse error at index %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("JSON parse error at index %d", e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// DecodeValue builds a Value tree from src with no resource limits.
func DecodeValue(src Source) (Value, error) {
	return DecodeValueOpt(src, DecodeOpt{})
}

// DecodeValueOpt builds a Value tree from src. It fails on malformed input,
// duplicate object keys, trailing non-whitespace content, and exceeded
// limits. Exactly one top-level value is consumed.
func DecodeValueOpt(src Source, opt DecodeOpt) (Value, error) {
	d := &decoder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		return Value{}, d.syntaxErr(err)
	}
	v, err := d.value(tok)
	if err != nil {
		return Value{}, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		return Value{}, &SyntaxError{Offset: src.Location(), Err: errTrailing}
	}
	return v, nil
}

var errTrailing = fmt.Errorf("unexpected trailing content")

type decoder struct {
	src   Source
	opt   DecodeOpt
	depth int
}

func (d *decoder) syntaxErr(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &SyntaxError{Offset: d.src.Location(), Err: err}
}

func (d *decoder) enter() error {
	d.depth++
	if d.opt.MaxDepth > 0 && d.depth > d.opt.MaxDepth {
		return &SyntaxError{Offset: d.src.Location(), Err: fmt.Errorf("exceeds maximum nesting depth %d", d.opt.MaxDepth)}
	}
	if d.opt.MaxBytes > 0 {
		if off := d.src.Location(); off > d.opt.MaxBytes {
			return &SyntaxError{Offset: off, Err: fmt.Errorf("exceeds maximum input size %d", d.opt.MaxBytes)}
		}
	}
	return nil
}

func (d *decoder) value(tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return d.object()
	case eng.KindBeginArray:
		return d.array()
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		return Number(tok.Number), nil
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null(), nil
	default:
		return Value{}, d.syntaxErr(io.ErrUnexpectedEOF)
	}
}

func (d *decoder) object() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	obj := NewObject()
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return Value{}, d.syntaxErr(err)
		}
		if tok.Kind == eng.KindEndObject {
			d.depth--
			return ObjectValue(obj), nil
		}
		if tok.Kind != eng.KindKey {
			return Value{}, d.syntaxErr(io.ErrUnexpectedEOF)
		}
		if _, exists := obj.Get(tok.String); exists {
			return Value{}, &DuplicateKeyError{Key: tok.String, Offset: tok.Offset}
		}
		vt, err := d.src.NextToken()
		if err != nil {
			return Value{}, d.syntaxErr(err)
		}
		v, err := d.value(vt)
		if err != nil {
			return Value{}, err
		}
		obj.Set(tok.String, v)
	}
}

func (d *decoder) array() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	var items []Value
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return Value{}, d.syntaxErr(err)
		}
		if tok.Kind == eng.KindEndArray {
			d.depth--
			return Array(items), nil
		}
		v, err := d.value(tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}
