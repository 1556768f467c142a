// Package schema describes cser encodings at runtime, so that tools can
// encode and decode values without Go types generated for them.
//
// A schema is written as a type expression:
//
//	bool u8 u16 u32 u64 i64 u56 u256 bytes string
//	[N]byte    fixed size byte array
//	[]T        sequence of T
//	?T         optional T
//	{a:T,b:U}  record with fields encoded in order
package schema

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Bool Kind = 1 + iota
	U8
	U16
	U32
	U64
	I64
	U56
	U256
	Bytes
	String
	Array
	Slice
	Option
	Record
)

var primitives = map[string]Kind{
	"bool":   Bool,
	"u8":     U8,
	"u16":    U16,
	"u32":    U32,
	"u64":    U64,
	"i64":    I64,
	"u56":    U56,
	"u256":   U256,
	"bytes":  Bytes,
	"string": String,
}

func (k Kind) String() string {
	for name, kind := range primitives {
		if kind == k {
			return name
		}
	}
	switch k {
	case Array:
		return "array"
	case Slice:
		return "slice"
	case Option:
		return "option"
	case Record:
		return "record"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is the descriptor of an encoded value.
type Type struct {
	Kind   Kind
	Size   int     // Array length.
	Elem   *Type   // Slice and Option element type.
	Fields []Field // Record fields, in encoding order.
}

type Field struct {
	Name string
	Type *Type
}

// String returns the type expression that Parse accepts for t.
func (t *Type) String() string {
	switch t.Kind {
	case Array:
		return fmt.Sprintf("[%d]byte", t.Size)
	case Slice:
		return "[]" + t.Elem.String()
	case Option:
		return "?" + t.Elem.String()
	case Record:
		fields := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			fields = append(fields, f.Name+":"+f.Type.String())
		}
		return "{" + strings.Join(fields, ",") + "}"
	default:
		return t.Kind.String()
	}
}

// zeroWidth reports whether values of t are encoded without any bits or bytes.
func (t *Type) zeroWidth() bool {
	switch t.Kind {
	case Array:
		return t.Size == 0
	case Record:
		for _, f := range t.Fields {
			if !f.Type.zeroWidth() {
				return false
			}
		}
		return true
	}
	return false
}
