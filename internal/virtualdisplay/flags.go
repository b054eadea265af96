package virtualdisplay

import (
	"fmt"
	"strings"

	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
)

// Flags is a bitmask of virtual display creation flags. Bits without a name
// are carried through untouched.
type Flags int32

const (
	FlagPublic Flags = 1 << iota
	FlagPresentation
	FlagSecure
	FlagOwnContentOnly
	FlagAutoMirror
)

var knownFlags = []Flags{FlagPublic, FlagPresentation, FlagSecure, FlagOwnContentOnly, FlagAutoMirror}

func (f Flags) Value() string {
	switch f {
	case FlagPublic:
		return "public"
	case FlagPresentation:
		return "presentation"
	case FlagSecure:
		return "secure"
	case FlagOwnContentOnly:
		return "own_content_only"
	case FlagAutoMirror:
		return "auto_mirror"
	}
	return ""
}

func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Names lists the named bits set in f, followed by the remaining unnamed
// bits as a hex literal.
func (f Flags) Names() []string {
	names := []string{}
	rest := f
	for _, flag := range knownFlags {
		if f.Has(flag) {
			names = append(names, flag.Value())
			rest &^= flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return names
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// ParseFlag maps a flag name to its bit.
func ParseFlag(name string) (Flags, error) {
	for _, flag := range knownFlags {
		if flag.Value() == name {
			return flag, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q, expected one of %s", name, KnownFlagNames())
}

// ParseFlags ORs together the bits of every name.
func ParseFlags(names []string) (Flags, error) {
	var flags Flags
	for _, name := range names {
		flag, err := ParseFlag(strings.TrimSpace(name))
		if err != nil {
			return 0, err
		}
		flags |= flag
	}
	return flags, nil
}

func KnownFlagNames() string {
	return utils.FormatEnumTypes(knownFlags)
}
