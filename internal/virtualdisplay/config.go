package virtualdisplay

import (
	"fmt"

	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
)

// DefaultDisplay is the display id used when no display to mirror is set.
const DefaultDisplay int32 = 0

// VirtualDisplayConfig holds the parameters used to create a virtual display.
// Values are immutable; obtain one from Builder.Build or Codec.Decode.
type VirtualDisplayConfig struct {
	name              string
	width             int32
	height            int32
	densityDpi        int32
	flags             Flags
	surface           *surface.Ref
	uniqueID          string
	hasUniqueID       bool
	displayIDToMirror int32
}

// Name is the name of the virtual display, never empty.
func (c *VirtualDisplayConfig) Name() string {
	return c.name
}

// Width in pixels, at least 1.
func (c *VirtualDisplayConfig) Width() int32 {
	return c.width
}

// Height in pixels, at least 1.
func (c *VirtualDisplayConfig) Height() int32 {
	return c.height
}

// DensityDpi is the density in dpi, at least 1.
func (c *VirtualDisplayConfig) DensityDpi() int32 {
	return c.densityDpi
}

func (c *VirtualDisplayConfig) Flags() Flags {
	return c.flags
}

// Surface is the surface the display content is rendered into, or nil if
// there is none initially. The reference is shared with its owner.
func (c *VirtualDisplayConfig) Surface() *surface.Ref {
	return c.surface
}

// UniqueID returns the unique identifier of the display and whether one was
// set. It should not be shown to the user.
func (c *VirtualDisplayConfig) UniqueID() (string, bool) {
	return c.uniqueID, c.hasUniqueID
}

// DisplayIDToMirror is the id of the display to mirror, DefaultDisplay if
// there is none.
func (c *VirtualDisplayConfig) DisplayIDToMirror() int32 {
	return c.displayIDToMirror
}

// Equal reports whether both configs carry the same field values, including
// presence of the optional ones.
func (c *VirtualDisplayConfig) Equal(other *VirtualDisplayConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.name != other.name || c.width != other.width || c.height != other.height ||
		c.densityDpi != other.densityDpi || c.flags != other.flags ||
		c.hasUniqueID != other.hasUniqueID || c.uniqueID != other.uniqueID ||
		c.displayIDToMirror != other.displayIDToMirror {
		return false
	}
	if c.surface == nil || other.surface == nil {
		return c.surface == other.surface
	}
	return *c.surface == *other.surface
}

func (c *VirtualDisplayConfig) String() string {
	uniqueID := "unset"
	if c.hasUniqueID {
		uniqueID = "set"
	}
	surfaceRef := "none"
	if c.surface != nil {
		surfaceRef = c.surface.String()
	}
	return fmt.Sprintf(
		"VirtualDisplayConfig{name=%s, width=%d, height=%d, densityDpi=%d, flags=%s, surface=%s, uniqueId=%s, displayIdToMirror=%d}",
		c.name, c.width, c.height, c.densityDpi, c.flags, surfaceRef, uniqueID, c.displayIDToMirror)
}
