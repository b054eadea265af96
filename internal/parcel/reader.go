package parcel

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
)

// Reader consumes primitives from a payload in order.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// ReadString reads a string written by Writer.WriteString or
// Writer.WriteNullString. The boolean is false for a null string.
func (r *Reader) ReadString() (string, bool, error) {
	start := r.off
	count, err := r.ReadInt32()
	if err != nil {
		return "", false, err
	}
	if count == NullLength {
		return "", false, nil
	}
	if count < 0 {
		return "", false, fmt.Errorf("%w: negative string length %d at offset %d", errs.ErrMalformed, count, start)
	}

	size := (int64(count) + 1) * 2
	padded := (size + 3) &^ 3
	if padded > int64(r.Remaining()) {
		return "", false, fmt.Errorf("%w: string of %d code units at offset %d needs %d bytes, have %d",
			errs.ErrMalformed, count, start, padded, r.Remaining())
	}

	b, err := r.take(int(padded))
	if err != nil {
		return "", false, err
	}
	for _, trailing := range b[count*2:] {
		if trailing != 0 {
			return "", false, fmt.Errorf("%w: string at offset %d is not NUL terminated", errs.ErrMalformed, start)
		}
	}

	if i, ok := validUTF16(b[:count*2]); !ok {
		return "", false, fmt.Errorf("%w: string at offset %d has an unpaired surrogate at code unit %d",
			errs.ErrMalformed, start, i)
	}

	decoded, err := utf16le.NewDecoder().Bytes(b[:count*2])
	if err != nil {
		return "", false, fmt.Errorf("%w: string at offset %d is not valid utf-16: %w", errs.ErrMalformed, start, err)
	}
	return string(decoded), true, nil
}

// validUTF16 reports whether every surrogate in the little-endian code units
// is part of a pair, and the index of the first one that is not.
func validUTF16(b []byte) (int, bool) {
	units := len(b) / 2
	for i := 0; i < units; i++ {
		u := rune(binary.LittleEndian.Uint16(b[i*2:]))
		if !utf16.IsSurrogate(u) {
			continue
		}
		if i+1 < units {
			next := rune(binary.LittleEndian.Uint16(b[(i+1)*2:]))
			if utf16.DecodeRune(u, next) != utf8.RuneError {
				i++
				continue
			}
		}
		return i, false
	}
	return 0, true
}

// ReadTypedMarker reads the presence marker preceding a typed object.
func (r *Reader) ReadTypedMarker() (bool, error) {
	start := r.off
	marker, err := r.ReadInt32()
	if err != nil {
		return false, err
	}
	switch marker {
	case typedNull:
		return false, nil
	case typedPresent:
		return true, nil
	}
	return false, fmt.Errorf("%w: unexpected typed object marker %d at offset %d", errs.ErrMalformed, marker, start)
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) take(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrMalformed, n, r.off, r.Remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}
