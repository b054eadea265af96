// Package parcel implements the flat little-endian primitives virtual display
// payloads are written with.
//
// # Layout
//
//	int32   4 bytes, little-endian
//	int64   8 bytes, little-endian
//	string  int32 UTF-16 code unit count (-1 for null), UTF-16LE code units,
//	        a 16-bit NUL terminator, zero padding to a 4-byte boundary
//	typed   int32 1 followed by the object payload, or int32 0 for null
//
// All reader failures wrap errs.ErrMalformed.
package parcel
