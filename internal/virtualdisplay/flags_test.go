package virtualdisplay_test

import (
	"testing"

	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		expected    virtualdisplay.Flags
		expectError bool
	}{
		{name: "no flags", input: nil, expected: 0},
		{name: "single", input: []string{"public"}, expected: virtualdisplay.FlagPublic},
		{
			name:     "combined with whitespace",
			input:    []string{"presentation", " auto_mirror "},
			expected: virtualdisplay.FlagPresentation | virtualdisplay.FlagAutoMirror,
		},
		{name: "duplicates", input: []string{"secure", "secure"}, expected: virtualdisplay.FlagSecure},
		{name: "unknown", input: []string{"public", "bogus"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := virtualdisplay.ParseFlags(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), virtualdisplay.KnownFlagNames())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flags)
		})
	}
}

func TestFlags_String(t *testing.T) {
	tests := []struct {
		name     string
		flags    virtualdisplay.Flags
		expected string
	}{
		{name: "none", flags: 0, expected: "none"},
		{name: "named", flags: virtualdisplay.FlagPublic | virtualdisplay.FlagOwnContentOnly, expected: "public|own_content_only"},
		{name: "unnamed bits", flags: virtualdisplay.FlagSecure | 0x100, expected: "secure|0x100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.flags.String())
		})
	}
}
