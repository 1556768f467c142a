package cser

// Encodable is implemented by types that can write themselves to a Writer.
// Records call the codecs of their fields in declaration order.
type Encodable interface {
	EncodeCSER(w *Writer)
}

// Decodable is implemented by types that can read themselves from a Reader,
// calling the field codecs in the same order as EncodeCSER.
type Decodable interface {
	DecodeCSER(r *Reader) error
}

// Marshal returns the canonical encoding of v.
func Marshal(v Encodable) []byte {
	return Serialize(v.EncodeCSER)
}

// Unmarshal decodes data into v and verifies that data is the canonical
// encoding of the decoded value.
func Unmarshal(data []byte, v Decodable, opts ...OptionFunc) error {
	return Deserialize(data, v.DecodeCSER, opts...)
}

// maxPrealloc bounds the capacity reserved up front for decoded sequences,
// as element counts come from untrusted input.
const maxPrealloc = 1024

// WriteSlice writes a u32 element count followed by every element encoded
// with enc. Byte sequences use Writer.Bytes instead.
func WriteSlice[T any](w *Writer, items []T, enc func(*Writer, T)) {
	if uint64(len(items)) > 1<<32-1 {
		panic("cser: sequence longer than 2^32-1 elements")
	}
	w.Uint32(uint32(len(items)))
	for _, item := range items {
		enc(w, item)
	}
}

// ReadSlice reads a sequence written by WriteSlice, decoding every element
// with dec. An empty sequence is returned as nil.
//
// The element count is bounded only by the input if dec consumes input for
// every element. Elements that encode to nothing, such as empty records,
// need ReadBoundedSlice.
func ReadSlice[T any](r *Reader, dec func(*Reader) (T, error)) ([]T, error) {
	count, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	return readElements(r, count, dec)
}

// ReadBoundedSlice reads a sequence of at most max elements. A longer
// sequence does not fit and fails with ErrOverflow.
func ReadBoundedSlice[T any](r *Reader, max int, dec func(*Reader) (T, error)) ([]T, error) {
	count, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if uint64(count) > uint64(max) {
		return nil, ErrOverflow
	}
	return readElements(r, count, dec)
}

func readElements[T any](r *Reader, count uint32, dec func(*Reader) (T, error)) ([]T, error) {
	if count == 0 {
		return nil, nil
	}
	items := make([]T, 0, min(count, maxPrealloc))
	for i := uint32(0); i < count; i++ {
		item, err := dec(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteOption writes a presence bit, followed by *v when v is not nil.
func WriteOption[T any](w *Writer, v *T, enc func(*Writer, T)) {
	w.Bool(v != nil)
	if v != nil {
		enc(w, *v)
	}
}

// ReadOption reads a value written by WriteOption. An absent value is
// returned as nil.
func ReadOption[T any](r *Reader, dec func(*Reader) (T, error)) (*T, error) {
	present, err := r.Bool()
	if err != nil || !present {
		return nil, err
	}
	v, err := dec(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Encode adapts an Encodable to the element codec shape used by WriteSlice
// and WriteOption.
func Encode[T Encodable](w *Writer, v T) {
	v.EncodeCSER(w)
}

// Decode adapts a Decodable to the element codec shape used by ReadSlice and
// ReadOption.
func Decode[T any, PT interface {
	*T
	Decodable
}](r *Reader) (T, error) {
	var v T
	err := PT(&v).DecodeCSER(r)
	return v, err
}
