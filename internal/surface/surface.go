// Package surface provides the rendering surface reference carried by a
// virtual display config and its payload codec.
package surface

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/parcel"
)

// Ref is a non-owning handle to a rendering surface. The surface itself is
// created and destroyed by whoever hands the reference out.
type Ref struct {
	Name   string
	Handle int64
}

func (r *Ref) Validate() error {
	if r.Name == "" {
		return errors.New("surface name cant be empty")
	}
	if !utf8.ValidString(r.Name) {
		return fmt.Errorf("surface name is not valid utf-8: %q", r.Name)
	}
	if r.Handle < 0 {
		return fmt.Errorf("surface handle cant be < 0, got %d", r.Handle)
	}
	return nil
}

func (r *Ref) String() string {
	return fmt.Sprintf("%s#%d", r.Name, r.Handle)
}

// Codec writes and reads the payload of a surface reference. Presence
// markers are handled by the caller.
type Codec interface {
	WriteTo(w *parcel.Writer, ref *Ref) error
	ReadFrom(r *parcel.Reader) (*Ref, error)
}

// ParcelCodec encodes a Ref as its text name followed by an int64 handle.
type ParcelCodec struct{}

func NewParcelCodec() *ParcelCodec {
	return &ParcelCodec{}
}

func (c *ParcelCodec) WriteTo(w *parcel.Writer, ref *Ref) error {
	if ref == nil {
		return errors.New("surface ref cant be nil")
	}
	if err := w.WriteString(ref.Name); err != nil {
		return fmt.Errorf("cant write surface name: %w", err)
	}
	w.WriteInt64(ref.Handle)
	return nil
}

func (c *ParcelCodec) ReadFrom(r *parcel.Reader) (*Ref, error) {
	name, ok, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("cant read surface name: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: surface name is null", errs.ErrMalformed)
	}
	handle, err := r.ReadInt64()
	if err != nil {
		return nil, fmt.Errorf("cant read surface handle: %w", err)
	}

	ref := &Ref{Name: name, Handle: handle}
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformed, err)
	}
	return ref, nil
}
