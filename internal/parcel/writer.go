package parcel

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	// NullLength is the length prefix written for a null string.
	NullLength int32 = -1

	typedNull    int32 = 0
	typedPresent int32 = 1
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Writer appends primitives to a growing buffer. The zero value is ready to use.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteInt32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *Writer) WriteInt64(v int64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

// WriteString writes s as a length-prefixed, NUL-terminated UTF-16LE string
// padded to a 4-byte boundary.
// Invalid UTF-8 is rejected instead of being replaced.
func (w *Writer) WriteString(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("cant encode %q as utf-16: invalid utf-8", s)
	}
	units, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("cant encode %q as utf-16: %w", s, err)
	}
	count := len(units) / 2
	if count > math.MaxInt32-1 {
		return fmt.Errorf("string too long: %d code units", count)
	}

	w.WriteInt32(int32(count))
	w.buf = append(w.buf, units...)
	w.buf = append(w.buf, 0, 0)
	w.pad((count + 1) * 2)
	return nil
}

// WriteNullString writes the null string marker.
func (w *Writer) WriteNullString() {
	w.WriteInt32(NullLength)
}

// WriteTypedMarker writes the presence marker that precedes a typed object.
func (w *Writer) WriteTypedMarker(present bool) {
	if present {
		w.WriteInt32(typedPresent)
		return
	}
	w.WriteInt32(typedNull)
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written payload. The slice aliases the writer buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) pad(written int) {
	for written%4 != 0 {
		w.buf = append(w.buf, 0)
		written++
	}
}
