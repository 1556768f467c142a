package schema

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/holiman/uint256"

	"github.com/spacemeshos/cser"
)

// ErrValueMismatch is returned when a value does not have the shape of its type.
var ErrValueMismatch = errors.New("value does not match schema")

// Limits bounds the allocations made while decoding untrusted input.
type Limits struct {
	MaxBytesLen uint64
	MaxElements uint32
}

// NoLimits accepts every length the format can express.
var NoLimits = Limits{MaxBytesLen: cser.MaxU56, MaxElements: math.MaxUint32}

func mismatch(t *Type, v any) error {
	return fmt.Errorf("%w: cannot encode %T as %v", ErrValueMismatch, v, t)
}

// Marshal encodes v as a value of type t.
//
// Values take the shape produced by decoding YAML or JSON: integers may be
// any Go integer, an integral float64, a json.Number or a decimal string;
// byte arrays and byte strings are hex strings; u256 is a decimal or 0x
// prefixed hex string; sequences are []any and records are maps keyed by
// field name.
func Marshal(t *Type, v any) ([]byte, error) {
	var err error
	data := cser.Serialize(func(w *cser.Writer) {
		err = Encode(w, t, v)
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Encode writes v as a value of type t. On error the writer holds a partial
// encoding and must be discarded.
func Encode(w *cser.Writer, t *Type, v any) error {
	switch t.Kind {
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(t, v)
		}
		w.Bool(b)

	case U8, U16, U32, U64, U56:
		n, err := toUint64(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		return encodeUnsigned(w, t, n)

	case I64:
		n, err := toInt64(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		w.Int64(n)

	case U256:
		n, err := toUint256(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		w.Uint256(n)

	case Bytes:
		p, err := toBytes(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		w.Bytes(p)

	case String:
		s, ok := v.(string)
		if !ok {
			return mismatch(t, v)
		}
		w.String(s)

	case Array:
		p, err := toBytes(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		if len(p) != t.Size {
			return fmt.Errorf("%w: %v holds %d bytes, given %d", ErrValueMismatch, t, t.Size, len(p))
		}
		w.FixedBytes(p)

	case Slice:
		items, ok := v.([]any)
		if v != nil && !ok {
			return mismatch(t, v)
		}
		if uint64(len(items)) > math.MaxUint32 {
			return fmt.Errorf("%w: %d elements", cser.ErrOverflow, len(items))
		}
		var err error
		cser.WriteSlice(w, items, func(w *cser.Writer, item any) {
			if err == nil {
				err = Encode(w, t.Elem, item)
			}
		})
		return err

	case Option:
		if v == nil {
			cser.WriteOption[any](w, nil, nil)
			return nil
		}
		var err error
		cser.WriteOption(w, &v, func(w *cser.Writer, item any) {
			err = Encode(w, t.Elem, item)
		})
		return err

	case Record:
		fields, err := toFields(v)
		if err != nil {
			return fmt.Errorf("%v: %w", t, err)
		}
		if len(fields) != len(t.Fields) {
			return fmt.Errorf("%w: record has %d fields, given %d", ErrValueMismatch, len(t.Fields), len(fields))
		}
		for _, f := range t.Fields {
			fv, ok := fields[f.Name]
			if !ok {
				return fmt.Errorf("%w: missing field %q", ErrValueMismatch, f.Name)
			}
			if err := Encode(w, f.Type, fv); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
		}

	default:
		return fmt.Errorf("schema: unknown kind %v", t.Kind)
	}
	return nil
}

func encodeUnsigned(w *cser.Writer, t *Type, n uint64) error {
	overflow := func() error {
		return fmt.Errorf("%w: %d exceeds %v", cser.ErrOverflow, n, t)
	}

	switch t.Kind {
	case U8:
		if n > math.MaxUint8 {
			return overflow()
		}
		w.Uint8(uint8(n))
	case U16:
		if n > math.MaxUint16 {
			return overflow()
		}
		w.Uint16(uint16(n))
	case U32:
		if n > math.MaxUint32 {
			return overflow()
		}
		w.Uint32(uint32(n))
	case U56:
		u, err := cser.NewU56(n)
		if err != nil {
			return err
		}
		w.U56(u)
	default:
		w.Uint64(n)
	}
	return nil
}

// Unmarshal decodes data as a value of type t, rejecting input that is not
// the canonical encoding of the decoded value.
func Unmarshal(data []byte, t *Type, limits Limits, opts ...cser.OptionFunc) (any, error) {
	var v any
	err := cser.Deserialize(data, func(r *cser.Reader) (err error) {
		v, err = Decode(r, t, limits)
		return err
	}, opts...)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Decode reads a value of type t. Unsigned integers decode as uint64, i64
// as int64, u256 as a decimal string, byte strings and byte arrays as hex
// strings, sequences as []any, absent optionals as nil and records as
// map[string]any.
func Decode(r *cser.Reader, t *Type, limits Limits) (any, error) {
	switch t.Kind {
	case Bool:
		return r.Bool()
	case U8:
		v, err := r.Uint8()
		return uint64(v), err
	case U16:
		v, err := r.Uint16()
		return uint64(v), err
	case U32:
		v, err := r.Uint32()
		return uint64(v), err
	case U64:
		return r.Uint64()
	case U56:
		v, err := r.U56()
		return v.Uint64(), err
	case I64:
		return r.Int64()

	case U256:
		v, err := r.Uint256()
		if err != nil {
			return nil, err
		}
		return v.Dec(), nil

	case Bytes:
		p, err := r.SliceBytes(limits.MaxBytesLen)
		if err != nil {
			return nil, err
		}
		return hex.EncodeToString(p), nil

	case String:
		p, err := r.SliceBytes(limits.MaxBytesLen)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(p) {
			return nil, cser.Custom("invalid utf-8 string")
		}
		return string(p), nil

	case Array:
		p := make([]byte, t.Size)
		if err := r.FixedBytes(p); err != nil {
			return nil, err
		}
		return hex.EncodeToString(p), nil

	case Slice:
		count, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		if count > limits.MaxElements {
			return nil, fmt.Errorf("%w: %d elements, max %d", cser.ErrTooLargeAlloc, count, limits.MaxElements)
		}
		if count > 0 && t.Elem.zeroWidth() {
			return nil, fmt.Errorf("%w: %d elements of zero-width %v", cser.ErrTooLargeAlloc, count, t.Elem)
		}
		items := make([]any, 0, min(count, 1024))
		for i := uint32(0); i < count; i++ {
			item, err := Decode(r, t.Elem, limits)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case Option:
		v, err := cser.ReadOption(r, func(r *cser.Reader) (any, error) {
			return Decode(r, t.Elem, limits)
		})
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil

	case Record:
		fields := make(map[string]any, len(t.Fields))
		for _, f := range t.Fields {
			v, err := Decode(r, f.Type, limits)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
		}
		return fields, nil
	}
	return nil, fmt.Errorf("schema: unknown kind %v", t.Kind)
}

func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case int, int8, int16, int32, int64:
		i, _ := toInt64(n)
		if i < 0 {
			return 0, fmt.Errorf("%w: negative value %d", ErrValueMismatch, i)
		}
		return uint64(i), nil
	case float64:
		if n < 0 || n >= 1<<64 || n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v is not an unsigned integer", ErrValueMismatch, n)
		}
		return uint64(n), nil
	case json.Number:
		return parseUint(string(n))
	case string:
		return parseUint(n)
	}
	return 0, fmt.Errorf("%w: %T is not an unsigned integer", ErrValueMismatch, v)
}

func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValueMismatch, err)
	}
	return n, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint, uint8, uint16, uint32, uint64:
		u, _ := toUint64(n)
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d exceeds i64", cser.ErrOverflow, u)
		}
		return int64(u), nil
	case float64:
		if n < math.MinInt64 || n >= math.MaxInt64 || n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrValueMismatch, n)
		}
		return int64(n), nil
	case json.Number:
		return parseInt(string(n))
	case string:
		return parseInt(n)
	}
	return 0, fmt.Errorf("%w: %T is not an integer", ErrValueMismatch, v)
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValueMismatch, err)
	}
	return n, nil
}

func toUint256(v any) (*uint256.Int, error) {
	var s string
	switch n := v.(type) {
	case string:
		s = n
	case json.Number:
		s = string(n)
	default:
		u, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		return uint256.NewInt(u), nil
	}

	if strings.HasPrefix(s, "0x") {
		n, err := uint256.FromHex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValueMismatch, err)
		}
		return n, nil
	}
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValueMismatch, err)
	}
	return n, nil
}

func toBytes(v any) ([]byte, error) {
	switch p := v.(type) {
	case []byte:
		return p, nil
	case string:
		b, err := hex.DecodeString(strings.TrimPrefix(p, "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValueMismatch, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %T is not a hex string", ErrValueMismatch, v)
}

func toFields(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		fields := make(map[string]any, len(m))
		for k, fv := range m {
			name, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: field name %v is not a string", ErrValueMismatch, k)
			}
			fields[name] = fv
		}
		return fields, nil
	}
	return nil, fmt.Errorf("%w: %T is not a record", ErrValueMismatch, v)
}
