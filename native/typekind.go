// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package native

// ElementKind identifies the runtime element type of a volume or mask
// array at the call boundary (§4.8). The host binding layer inspects the
// array it was handed, resolves an ElementKind, and the core dispatches
// from there onto a single generic kernel parameterized on the
// corresponding Go type — there is no inheritance or virtual dispatch
// inside the kernels themselves, only this one boundary match.
type ElementKind int

const (
	// KindInt16 is the native CT/MRI sample type (signed 16-bit integer).
	KindInt16 ElementKind = iota
	// KindUint8 is used for masks and byte-quantized derived volumes.
	KindUint8
	// KindFloat64 is used for normalized/derived volumes.
	KindFloat64
)

// String returns a human-readable name for the element kind.
func (k ElementKind) String() string {
	switch k {
	case KindInt16:
		return "int16"
	case KindUint8:
		return "uint8"
	case KindFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// VolumeI16, VolumeU8, and VolumeF64 wrap a View3D of each supported
// element kind. Volume is a closed sum type over them, mirroring the
// three-way enum the host's array marshaling layer resolves a raw array
// into before calling into the core (ImageTypes3 in the original
// implementation this core replaces).
type (
	VolumeI16 struct{ View View3D[int16] }
	VolumeU8  struct{ View View3D[uint8] }
	VolumeF64 struct{ View View3D[float64] }
)

// Volume is any one of the three supported dense volume representations.
// Entry points that must accept a runtime-typed volume (rather than being
// generic over VoxelElement, e.g. because the host only knows the type at
// call time) take a Volume and dispatch on its dynamic type with a type
// switch, exactly as DispatchVolume does.
type Volume interface {
	Kind() ElementKind
}

func (VolumeI16) Kind() ElementKind { return KindInt16 }
func (VolumeU8) Kind() ElementKind  { return KindUint8 }
func (VolumeF64) Kind() ElementKind { return KindFloat64 }

// DispatchVolume resolves v to its element kind and calls the matching
// callback, returning its result. Exactly one of the three callbacks runs.
//
// This package's own kernels (interpolation, projection, transform,
// maskcut, floodfill, mesh) are generic over VoxelElement and are called
// directly by a caller that already knows T at compile time; none of them
// calls DispatchVolume themselves. DispatchVolume is the seam a host
// binding layer (FFI/cgo boundary, RPC handler) uses once it has resolved
// a runtime-typed array to a Volume and needs to reach the right generic
// instantiation — it exists so that resolution happens in one place
// instead of a type switch copy-pasted into every binding entry point.
func DispatchVolume[R any](
	v Volume,
	onI16 func(View3D[int16]) (R, error),
	onU8 func(View3D[uint8]) (R, error),
	onF64 func(View3D[float64]) (R, error),
) (R, error) {
	switch vv := v.(type) {
	case VolumeI16:
		return onI16(vv.View)
	case VolumeU8:
		return onU8(vv.View)
	case VolumeF64:
		return onF64(vv.View)
	default:
		var zero R
		return zero, &UnsupportedTypeError{Op: "DispatchVolume", Kind: -1}
	}
}
