// Package bytestream provides append-only byte writing and bounds-checked
// sequential reading over a byte slice.
package bytestream

import "io"

// ErrShortRead is returned when fewer bytes remain than were requested.
var ErrShortRead = io.ErrUnexpectedEOF

// Writer appends raw bytes to a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns a new instance of Writer with room for size bytes.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Write appends p as is, without any framing.
func (w *Writer) Write(p []byte) {
	w.buf = append(w.buf, p...)
}

// AppendByte appends a single byte.
func (w *Writer) AppendByte(c byte) {
	w.buf = append(w.buf, c)
}

// Bytes returns the written bytes. The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reader reads bytes sequentially from a borrowed slice.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a new instance of Reader.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Next returns the next n bytes and advances the cursor past them.
// The returned slice aliases the underlying buffer.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || n > len(r.buf)-r.off {
		return nil, ErrShortRead
	}
	p := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return p, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrShortRead
	}
	c := r.buf[r.off]
	r.off++
	return c, nil
}

// Position returns the cursor offset from the start of the buffer.
func (r *Reader) Position() int {
	return r.off
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Empty reports whether the whole buffer has been consumed.
func (r *Reader) Empty() bool {
	return r.off == len(r.buf)
}
