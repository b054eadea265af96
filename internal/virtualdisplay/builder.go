package virtualdisplay

import (
	"errors"
	"fmt"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
)

type builderField uint16

const (
	fieldName builderField = 1 << iota
	fieldWidth
	fieldHeight
	fieldDensityDpi
	fieldFlags
	fieldSurface
	fieldUniqueID
	fieldDisplayIDToMirror
	builderUsed
)

// Builder accumulates fields of a VirtualDisplayConfig. It is single use:
// once Build was called every further call fails with errs.ErrIllegalState.
//
// Setters chain. The first failure is sticky, reported by Err and returned
// from Build. A Builder must not be shared between goroutines.
type Builder struct {
	name              string
	width             int32
	height            int32
	densityDpi        int32
	flags             Flags
	surface           *surface.Ref
	uniqueID          string
	displayIDToMirror int32

	fieldsSet builderField
	err       error
}

// NewBuilder validates the required fields and returns a fresh builder.
func NewBuilder(name string, width, height, densityDpi int32) (*Builder, error) {
	if err := validateRequired(name, width, height, densityDpi); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}
	return &Builder{
		name:       name,
		width:      width,
		height:     height,
		densityDpi: densityDpi,
	}, nil
}

func (b *Builder) SetName(value string) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	if err := validateName(value); err != nil {
		return b.fail(err)
	}
	b.fieldsSet |= fieldName
	b.name = value
	return b
}

func (b *Builder) SetWidth(value int32) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	if err := validatePositive("width", value); err != nil {
		return b.fail(err)
	}
	b.fieldsSet |= fieldWidth
	b.width = value
	return b
}

func (b *Builder) SetHeight(value int32) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	if err := validatePositive("height", value); err != nil {
		return b.fail(err)
	}
	b.fieldsSet |= fieldHeight
	b.height = value
	return b
}

func (b *Builder) SetDensityDpi(value int32) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	if err := validatePositive("densityDpi", value); err != nil {
		return b.fail(err)
	}
	b.fieldsSet |= fieldDensityDpi
	b.densityDpi = value
	return b
}

func (b *Builder) SetFlags(value Flags) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	b.fieldsSet |= fieldFlags
	b.flags = value
	return b
}

// SetSurface sets the surface to render into. To have no surface, do not call it.
func (b *Builder) SetSurface(value *surface.Ref) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	if value == nil {
		return b.fail(errors.New("surface cant be nil"))
	}
	b.fieldsSet |= fieldSurface
	b.surface = value
	return b
}

func (b *Builder) SetUniqueID(value string) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	if err := validateText("uniqueId", value); err != nil {
		return b.fail(err)
	}
	b.fieldsSet |= fieldUniqueID
	b.uniqueID = value
	return b
}

func (b *Builder) SetDisplayIDToMirror(value int32) *Builder {
	if !b.checkNotUsed() {
		return b
	}
	b.fieldsSet |= fieldDisplayIDToMirror
	b.displayIDToMirror = value
	return b
}

// Err returns the first error recorded by a setter.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the config. The builder should not be touched afterwards.
func (b *Builder) Build() (*VirtualDisplayConfig, error) {
	if !b.checkNotUsed() {
		return nil, b.err
	}
	b.fieldsSet |= builderUsed
	if b.err != nil {
		return nil, b.err
	}

	if b.fieldsSet&fieldFlags == 0 {
		b.flags = 0
	}
	if b.fieldsSet&fieldSurface == 0 {
		b.surface = nil
	}
	if b.fieldsSet&fieldUniqueID == 0 {
		b.uniqueID = ""
	}
	if b.fieldsSet&fieldDisplayIDToMirror == 0 {
		b.displayIDToMirror = DefaultDisplay
	}

	cfg := &VirtualDisplayConfig{
		name:              b.name,
		width:             b.width,
		height:            b.height,
		densityDpi:        b.densityDpi,
		flags:             b.flags,
		surface:           b.surface,
		uniqueID:          b.uniqueID,
		hasUniqueID:       b.fieldsSet&fieldUniqueID != 0,
		displayIDToMirror: b.displayIDToMirror,
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}
	return cfg, nil
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}
	return b
}

func (b *Builder) checkNotUsed() bool {
	if b.fieldsSet&builderUsed != 0 {
		b.err = fmt.Errorf("%w: this builder should not be reused, use a new builder instance instead",
			errs.ErrIllegalState)
		return false
	}
	return true
}
