// Package virtualdisplay provides the configuration value used to create a
// virtual display, its single-use builder and its binary codec.
//
// # Construction
//
// A VirtualDisplayConfig can only be obtained from Builder.Build or
// Codec.Decode, both of which validate the required fields: the name must be
// non-empty, width, height and densityDpi must be >= 1.
//
//	b, err := virtualdisplay.NewBuilder("disp1", 1920, 1080, 160)
//	if err != nil {
//	    return err
//	}
//	cfg, err := b.SetFlags(virtualdisplay.FlagPublic).SetUniqueID("cast:1").Build()
//
// Unset optional fields take their defaults: no flags, no surface, no unique
// id and DefaultDisplay as the display to mirror.
//
// # Payload Format
//
// Payloads are written with the primitives of package parcel:
//
//	[presence int32][name string][width int32][height int32][densityDpi int32][flags int32]
//	[surface typed, if presence&0x20][uniqueId string, if presence&0x40][displayIdToMirror int32]
//
// The presence bitmask is written first so the reader knows which optional
// fields follow. Encoding is deterministic, the same config always yields the
// same bytes.
//
// # Error Handling
//
// Failures wrap one of the sentinels of package errs:
//   - ErrInvalidArgument: a field violates its constraint at construction
//   - ErrIllegalState: a builder is used after Build
//   - ErrMalformed: a payload is truncated, carries unknown presence bits,
//     has trailing bytes or decodes to an invalid config
package virtualdisplay
