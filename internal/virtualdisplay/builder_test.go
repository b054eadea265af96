package virtualdisplay_test

import (
	"testing"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilder_RequiredFields(t *testing.T) {
	tests := []struct {
		name          string
		displayName   string
		width         int32
		height        int32
		densityDpi    int32
		expectError   bool
		errorContains string
	}{
		{name: "valid", displayName: "disp1", width: 1920, height: 1080, densityDpi: 160},
		{name: "minimal dimensions", displayName: "d", width: 1, height: 1, densityDpi: 1},
		{
			name: "empty name", displayName: "", width: 1920, height: 1080, densityDpi: 160,
			expectError: true, errorContains: "name cant be empty",
		},
		{
			name: "zero width", displayName: "disp1", width: 0, height: 1080, densityDpi: 160,
			expectError: true, errorContains: "width needs to be >= 1",
		},
		{
			name: "negative height", displayName: "disp1", width: 1920, height: -1, densityDpi: 160,
			expectError: true, errorContains: "height needs to be >= 1",
		},
		{
			name: "zero density", displayName: "disp1", width: 1920, height: 1080, densityDpi: 0,
			expectError: true, errorContains: "densityDpi needs to be >= 1",
		},
		{
			name: "invalid utf-8 name", displayName: "disp\xff", width: 1920, height: 1080, densityDpi: 160,
			expectError: true, errorContains: "name is not valid utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := virtualdisplay.NewBuilder(tt.displayName, tt.width, tt.height, tt.densityDpi)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidArgument)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, b)
		})
	}
}

func TestBuilder_Defaults(t *testing.T) {
	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
	require.NoError(t, err)

	cfg, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "disp1", cfg.Name())
	assert.Equal(t, int32(1920), cfg.Width())
	assert.Equal(t, int32(1080), cfg.Height())
	assert.Equal(t, int32(160), cfg.DensityDpi())
	assert.Equal(t, virtualdisplay.Flags(0), cfg.Flags())
	assert.Nil(t, cfg.Surface())
	_, ok := cfg.UniqueID()
	assert.False(t, ok, "unique id should be absent")
	assert.Equal(t, virtualdisplay.DefaultDisplay, cfg.DisplayIDToMirror())
}

func TestBuilder_Setters(t *testing.T) {
	ref := &surface.Ref{Name: "cast", Handle: 4}
	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
	require.NoError(t, err)

	cfg, err := b.
		SetName("disp2").
		SetWidth(1280).
		SetHeight(720).
		SetDensityDpi(320).
		SetFlags(virtualdisplay.FlagPublic | virtualdisplay.FlagSecure).
		SetSurface(ref).
		SetUniqueID("uid:1").
		SetDisplayIDToMirror(3).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "disp2", cfg.Name())
	assert.Equal(t, int32(1280), cfg.Width())
	assert.Equal(t, int32(720), cfg.Height())
	assert.Equal(t, int32(320), cfg.DensityDpi())
	assert.True(t, cfg.Flags().Has(virtualdisplay.FlagSecure))
	assert.Same(t, ref, cfg.Surface(), "surface reference should be shared, not copied")
	id, ok := cfg.UniqueID()
	assert.True(t, ok)
	assert.Equal(t, "uid:1", id)
	assert.Equal(t, int32(3), cfg.DisplayIDToMirror())
}

func TestBuilder_LastSetWins(t *testing.T) {
	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
	require.NoError(t, err)

	cfg, err := b.SetWidth(800).SetWidth(640).SetUniqueID("a").SetUniqueID("").Build()
	require.NoError(t, err)

	assert.Equal(t, int32(640), cfg.Width())
	id, ok := cfg.UniqueID()
	assert.True(t, ok, "an empty unique id is still present")
	assert.Empty(t, id)
}

func TestBuilder_InvalidSetter(t *testing.T) {
	tests := []struct {
		name          string
		apply         func(*virtualdisplay.Builder) *virtualdisplay.Builder
		errorContains string
	}{
		{
			name:          "empty name",
			apply:         func(b *virtualdisplay.Builder) *virtualdisplay.Builder { return b.SetName("") },
			errorContains: "name cant be empty",
		},
		{
			name:          "zero width",
			apply:         func(b *virtualdisplay.Builder) *virtualdisplay.Builder { return b.SetWidth(0) },
			errorContains: "width",
		},
		{
			name:          "negative height",
			apply:         func(b *virtualdisplay.Builder) *virtualdisplay.Builder { return b.SetHeight(-10) },
			errorContains: "height",
		},
		{
			name:          "zero density",
			apply:         func(b *virtualdisplay.Builder) *virtualdisplay.Builder { return b.SetDensityDpi(0) },
			errorContains: "densityDpi",
		},
		{
			name:          "nil surface",
			apply:         func(b *virtualdisplay.Builder) *virtualdisplay.Builder { return b.SetSurface(nil) },
			errorContains: "surface cant be nil",
		},
		{
			name: "invalid surface",
			apply: func(b *virtualdisplay.Builder) *virtualdisplay.Builder {
				return b.SetSurface(&surface.Ref{Name: "", Handle: 1})
			},
			errorContains: "invalid surface",
		},
		{
			name:          "invalid utf-8 name",
			apply:         func(b *virtualdisplay.Builder) *virtualdisplay.Builder { return b.SetName("disp\xff") },
			errorContains: "name is not valid utf-8",
		},
		{
			name:          "invalid utf-8 unique id",
			apply:         func(b *virtualdisplay.Builder) *virtualdisplay.Builder { return b.SetUniqueID("u\xfe") },
			errorContains: "uniqueId is not valid utf-8",
		},
		{
			name: "invalid utf-8 surface name",
			apply: func(b *virtualdisplay.Builder) *virtualdisplay.Builder {
				return b.SetSurface(&surface.Ref{Name: "s\xc3", Handle: 1})
			},
			errorContains: "surface name is not valid utf-8",
		},
		{
			name: "first error is kept",
			apply: func(b *virtualdisplay.Builder) *virtualdisplay.Builder {
				return b.SetWidth(0).SetHeight(0).SetWidth(100)
			},
			errorContains: "width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
			require.NoError(t, err)

			cfg, err := tt.apply(b).Build()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, errs.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestBuilder_SingleUse(t *testing.T) {
	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
	require.NoError(t, err)

	first, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := b.Build()
	assert.Nil(t, second)
	assert.ErrorIs(t, err, errs.ErrIllegalState)

	b.SetWidth(42)
	assert.ErrorIs(t, b.Err(), errs.ErrIllegalState)
	assert.Equal(t, int32(1920), first.Width(), "built config must not change")
}

func TestBuilder_SetterAfterBuildFailsEvenAfterError(t *testing.T) {
	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
	require.NoError(t, err)

	_, err = b.SetWidth(0).Build()
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = b.Build()
	assert.ErrorIs(t, err, errs.ErrIllegalState)
}

func TestVirtualDisplayConfig_String(t *testing.T) {
	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
	require.NoError(t, err)
	cfg, err := b.SetUniqueID("secret").Build()
	require.NoError(t, err)

	assert.NotContains(t, cfg.String(), "secret", "unique id should not be printed")
	assert.Contains(t, cfg.String(), "uniqueId=set")
}
