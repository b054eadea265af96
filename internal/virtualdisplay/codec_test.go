package virtualdisplay_test

import (
	"encoding/hex"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/parcel"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalConfig(t *testing.T) *virtualdisplay.VirtualDisplayConfig {
	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
	require.NoError(t, err)
	cfg, err := b.Build()
	require.NoError(t, err)
	return cfg
}

func fullConfig(t *testing.T) *virtualdisplay.VirtualDisplayConfig {
	b, err := virtualdisplay.NewBuilder("cast", 1280, 720, 320)
	require.NoError(t, err)
	cfg, err := b.
		SetFlags(virtualdisplay.FlagPublic | virtualdisplay.FlagOwnContentOnly).
		SetSurface(&surface.Ref{Name: "surf", Handle: 7}).
		SetUniqueID("uid:1").
		SetDisplayIDToMirror(2).
		Build()
	require.NoError(t, err)
	return cfg
}

func TestEncode_Minimal(t *testing.T) {
	data, err := virtualdisplay.Encode(minimalConfig(t))
	require.NoError(t, err)
	golden.RequireEqual(t, []byte(hex.EncodeToString(data)+"\n"))
}

func TestEncode_AllFields(t *testing.T) {
	data, err := virtualdisplay.Encode(fullConfig(t))
	require.NoError(t, err)
	golden.RequireEqual(t, []byte(hex.EncodeToString(data)+"\n"))
}

func TestEncode_Deterministic(t *testing.T) {
	cfg := fullConfig(t)
	first, err := virtualdisplay.Encode(cfg)
	require.NoError(t, err)
	second, err := virtualdisplay.Encode(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCodec_RoundTrip(t *testing.T) {
	uniqueOnly := func(t *testing.T) *virtualdisplay.VirtualDisplayConfig {
		b, err := virtualdisplay.NewBuilder("ünïcødé 😀", 1, 1, 1)
		require.NoError(t, err)
		cfg, err := b.SetUniqueID("").SetFlags(virtualdisplay.Flags(-1)).Build()
		require.NoError(t, err)
		return cfg
	}
	surfaceOnly := func(t *testing.T) *virtualdisplay.VirtualDisplayConfig {
		b, err := virtualdisplay.NewBuilder("disp", 640, 480, 96)
		require.NoError(t, err)
		cfg, err := b.SetSurface(&surface.Ref{Name: "s", Handle: 0}).SetDisplayIDToMirror(-1).Build()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name string
		cfg  func(*testing.T) *virtualdisplay.VirtualDisplayConfig
	}{
		{name: "minimal", cfg: minimalConfig},
		{name: "all fields", cfg: fullConfig},
		{name: "empty unique id and every flag bit", cfg: uniqueOnly},
		{name: "surface only", cfg: surfaceOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg(t)
			data, err := virtualdisplay.Encode(cfg)
			require.NoError(t, err)

			decoded, err := virtualdisplay.Decode(data)
			require.NoError(t, err)
			assert.True(t, cfg.Equal(decoded), "expected %s, got %s", cfg, decoded)

			reencoded, err := virtualdisplay.Encode(decoded)
			require.NoError(t, err)
			assert.Equal(t, data, reencoded)
		})
	}
}

func TestDecode_PresenceBits(t *testing.T) {
	data, err := virtualdisplay.Encode(fullConfig(t))
	require.NoError(t, err)

	presence, err := parcel.NewReader(data).ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, virtualdisplay.PresenceSurface|virtualdisplay.PresenceUniqueID, presence)
}

func TestDecode_Truncated(t *testing.T) {
	data, err := virtualdisplay.Encode(fullConfig(t))
	require.NoError(t, err)

	for n := 0; n < len(data); n++ {
		_, err := virtualdisplay.Decode(data[:n])
		require.Error(t, err, "prefix of %d bytes should not decode", n)
		assert.ErrorIs(t, err, errs.ErrMalformed)
	}
}

func TestDecode_Malformed(t *testing.T) {
	withPresence := func(presence int32, body func(*parcel.Writer)) []byte {
		w := parcel.NewWriter()
		w.WriteInt32(presence)
		body(w)
		return w.Bytes()
	}
	dims := func(w *parcel.Writer, width, height, dpi int32) {
		w.WriteInt32(width)
		w.WriteInt32(height)
		w.WriteInt32(dpi)
		w.WriteInt32(0)
	}
	name := func(w *parcel.Writer, s string) {
		_ = w.WriteString(s)
	}

	valid, err := virtualdisplay.Encode(minimalConfig(t))
	require.NoError(t, err)

	tests := []struct {
		name          string
		data          []byte
		errorContains string
	}{
		{
			name:          "empty payload",
			data:          nil,
			errorContains: "presence bitmask",
		},
		{
			name: "unknown presence bits",
			data: withPresence(0x01, func(w *parcel.Writer) {
				name(w, "disp1")
				dims(w, 1, 1, 1)
				w.WriteInt32(0)
			}),
			errorContains: "unknown presence bits 0x1",
		},
		{
			name: "null name",
			data: withPresence(0, func(w *parcel.Writer) {
				w.WriteNullString()
				dims(w, 1, 1, 1)
				w.WriteInt32(0)
			}),
			errorContains: "name is null",
		},
		{
			name: "empty name",
			data: withPresence(0, func(w *parcel.Writer) {
				name(w, "")
				dims(w, 1, 1, 1)
				w.WriteInt32(0)
			}),
			errorContains: "name cant be empty",
		},
		{
			name: "zero width",
			data: withPresence(0, func(w *parcel.Writer) {
				name(w, "disp1")
				dims(w, 0, 1, 1)
				w.WriteInt32(0)
			}),
			errorContains: "width",
		},
		{
			name: "null unique id",
			data: withPresence(virtualdisplay.PresenceUniqueID, func(w *parcel.Writer) {
				name(w, "disp1")
				dims(w, 1, 1, 1)
				w.WriteNullString()
				w.WriteInt32(0)
			}),
			errorContains: "unique id marked present but is null",
		},
		{
			name: "null surface",
			data: withPresence(virtualdisplay.PresenceSurface, func(w *parcel.Writer) {
				name(w, "disp1")
				dims(w, 1, 1, 1)
				w.WriteTypedMarker(false)
				w.WriteInt32(0)
			}),
			errorContains: "surface marked present but is null",
		},
		{
			name: "invalid surface",
			data: withPresence(virtualdisplay.PresenceSurface, func(w *parcel.Writer) {
				name(w, "disp1")
				dims(w, 1, 1, 1)
				w.WriteTypedMarker(true)
				name(w, "")
				w.WriteInt64(1)
				w.WriteInt32(0)
			}),
			errorContains: "surface name cant be empty",
		},
		{
			name: "unpaired surrogate in name",
			data: withPresence(0, func(w *parcel.Writer) {
				w.WriteInt32(1)
				w.WriteInt32(0xd800)
				dims(w, 1, 1, 1)
				w.WriteInt32(0)
			}),
			errorContains: "unpaired surrogate",
		},
		{
			name:          "trailing bytes",
			data:          append(append([]byte{}, valid...), 0, 0, 0, 0),
			errorContains: "4 trailing bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := virtualdisplay.Decode(tt.data)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, errs.ErrMalformed)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestCodec_WithoutSurfaceCodec(t *testing.T) {
	codec := virtualdisplay.NewCodec(nil)

	data, err := codec.Encode(minimalConfig(t))
	require.NoError(t, err)
	_, err = codec.Decode(data)
	require.NoError(t, err)

	_, err = codec.Encode(fullConfig(t))
	assert.Error(t, err)

	full, err := virtualdisplay.Encode(fullConfig(t))
	require.NoError(t, err)
	_, err = codec.Decode(full)
	assert.ErrorIs(t, err, errs.ErrMalformed)
}

// nilSurfaceCodec consumes a surface payload but reports no surface.
type nilSurfaceCodec struct {
	surface.ParcelCodec
}

func (c *nilSurfaceCodec) ReadFrom(r *parcel.Reader) (*surface.Ref, error) {
	if _, err := c.ParcelCodec.ReadFrom(r); err != nil {
		return nil, err
	}
	return nil, nil
}

func TestCodec_SurfaceCodecReturnsNothing(t *testing.T) {
	codec := virtualdisplay.NewCodec(&nilSurfaceCodec{})

	data, err := codec.Encode(fullConfig(t))
	require.NoError(t, err)

	cfg, err := codec.Decode(data)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errs.ErrMalformed)
	assert.Contains(t, err.Error(), "surface codec returned no surface")
}

func TestCodec_RoundTripPreservesAcceptedText(t *testing.T) {
	b, err := virtualdisplay.NewBuilder("disp\xff", 1, 1, 1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Nil(t, b)

	b, err = virtualdisplay.NewBuilder("écran 😀", 1, 1, 1)
	require.NoError(t, err)
	cfg, err := b.SetUniqueID("u\xfe").Build()
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Nil(t, cfg)

	b, err = virtualdisplay.NewBuilder("écran 😀", 1, 1, 1)
	require.NoError(t, err)
	cfg, err = b.SetUniqueID("ü:1").Build()
	require.NoError(t, err)

	data, err := virtualdisplay.Encode(cfg)
	require.NoError(t, err)
	decoded, err := virtualdisplay.Decode(data)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(decoded), "expected %s, got %s", cfg, decoded)
}
