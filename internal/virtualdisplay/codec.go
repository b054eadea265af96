package virtualdisplay

import (
	"errors"
	"fmt"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/parcel"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
)

// Presence bits of the optional fields. The gaps are part of the wire format.
const (
	PresenceSurface  int32 = 0x20
	PresenceUniqueID int32 = 0x40

	presenceKnown = PresenceSurface | PresenceUniqueID
)

// Codec converts a VirtualDisplayConfig to and from its payload. Surface
// payloads are delegated to the surface codec. Codec is stateless and safe
// for concurrent use.
type Codec struct {
	surfaces surface.Codec
}

// NewCodec creates a codec. A nil surface codec is allowed for payloads that
// never carry a surface; encoding or decoding one then fails.
func NewCodec(surfaces surface.Codec) *Codec {
	return &Codec{surfaces: surfaces}
}

var defaultCodec = NewCodec(surface.NewParcelCodec())

// Encode serializes cfg with the default surface codec.
func Encode(cfg *VirtualDisplayConfig) ([]byte, error) {
	return defaultCodec.Encode(cfg)
}

// Decode deserializes data with the default surface codec.
func Decode(data []byte) (*VirtualDisplayConfig, error) {
	return defaultCodec.Decode(data)
}

// Encode serializes cfg.
// Format: [presence(4)][name][width(4)][height(4)][densityDpi(4)][flags(4)][surface?][uniqueId?][displayIdToMirror(4)]
func (c *Codec) Encode(cfg *VirtualDisplayConfig) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config cant be nil")
	}

	var presence int32
	if cfg.surface != nil {
		presence |= PresenceSurface
	}
	if cfg.hasUniqueID {
		presence |= PresenceUniqueID
	}

	w := parcel.NewWriter()
	w.WriteInt32(presence)
	if err := w.WriteString(cfg.name); err != nil {
		return nil, fmt.Errorf("cant write name: %w", err)
	}
	w.WriteInt32(cfg.width)
	w.WriteInt32(cfg.height)
	w.WriteInt32(cfg.densityDpi)
	w.WriteInt32(int32(cfg.flags))
	if cfg.surface != nil {
		if c.surfaces == nil {
			return nil, errors.New("config carries a surface but no surface codec is configured")
		}
		w.WriteTypedMarker(true)
		if err := c.surfaces.WriteTo(w, cfg.surface); err != nil {
			return nil, fmt.Errorf("cant write surface: %w", err)
		}
	}
	if cfg.hasUniqueID {
		if err := w.WriteString(cfg.uniqueID); err != nil {
			return nil, fmt.Errorf("cant write unique id: %w", err)
		}
	}
	w.WriteInt32(cfg.displayIDToMirror)

	return w.Bytes(), nil
}

// Decode deserializes a payload and validates it the same way Build does.
// Every failure wraps errs.ErrMalformed.
func (c *Codec) Decode(data []byte) (*VirtualDisplayConfig, error) {
	r := parcel.NewReader(data)

	presence, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("cant read presence bitmask: %w", err)
	}
	if unknown := presence &^ presenceKnown; unknown != 0 {
		return nil, fmt.Errorf("%w: unknown presence bits 0x%x", errs.ErrMalformed, uint32(unknown))
	}

	cfg := &VirtualDisplayConfig{}
	name, ok, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("cant read name: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: name is null", errs.ErrMalformed)
	}
	cfg.name = name

	ints := []struct {
		field string
		dst   *int32
	}{
		{field: "width", dst: &cfg.width},
		{field: "height", dst: &cfg.height},
		{field: "densityDpi", dst: &cfg.densityDpi},
		{field: "flags", dst: (*int32)(&cfg.flags)},
	}
	for _, v := range ints {
		if *v.dst, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("cant read %s: %w", v.field, err)
		}
	}

	if presence&PresenceSurface != 0 {
		if cfg.surface, err = c.readSurface(r); err != nil {
			return nil, err
		}
	}

	if presence&PresenceUniqueID != 0 {
		uniqueID, ok, err := r.ReadString()
		if err != nil {
			return nil, fmt.Errorf("cant read unique id: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: unique id marked present but is null", errs.ErrMalformed)
		}
		cfg.uniqueID = uniqueID
		cfg.hasUniqueID = true
	}

	if cfg.displayIDToMirror, err = r.ReadInt32(); err != nil {
		return nil, fmt.Errorf("cant read displayIdToMirror: %w", err)
	}

	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes at offset %d", errs.ErrMalformed, r.Remaining(), r.Offset())
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformed, err)
	}
	return cfg, nil
}

func (c *Codec) readSurface(r *parcel.Reader) (*surface.Ref, error) {
	present, err := r.ReadTypedMarker()
	if err != nil {
		return nil, fmt.Errorf("cant read surface marker: %w", err)
	}
	if !present {
		return nil, fmt.Errorf("%w: surface marked present but is null", errs.ErrMalformed)
	}
	if c.surfaces == nil {
		return nil, fmt.Errorf("%w: payload carries a surface but no surface codec is configured", errs.ErrMalformed)
	}
	ref, err := c.surfaces.ReadFrom(r)
	if err != nil {
		if errors.Is(err, errs.ErrMalformed) {
			return nil, fmt.Errorf("cant read surface: %w", err)
		}
		return nil, fmt.Errorf("%w: cant read surface: %w", errs.ErrMalformed, err)
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: surface codec returned no surface", errs.ErrMalformed)
	}
	return ref, nil
}
