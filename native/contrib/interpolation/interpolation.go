// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

// Package interpolation provides point samplers over a dense 3-D volume:
// nearest, trilinear, tricubic (Catmull-Rom), and Lanczos-4 (§4.1). Every
// sampler wraps out-of-range coordinates periodically rather than clamping
// or erroring, so callers that need a floor value for out-of-volume samples
// (the transform kernel's cval) apply it themselves after calling in.
package interpolation

import (
	"math"

	"github.com/invesalius/invesalius3/native"
)

// wrap folds an out-of-range index back into [0, dim) by a single
// periodic shift of ±dim, not a full modulo: a coordinate more than one volume-width
// away from the valid range is not a case any sampler here produces,
// since every support window (at most Lanczos's 7-wide one) is tiny next
// to a clinical volume's dimensions.
func wrap(i, dim int) int {
	if i < 0 {
		return dim + i
	}
	if i >= dim {
		return i - dim
	}
	return i
}

// getValue samples v at integer coordinates (x, y, z) — in that axis
// order, against a volume stored (z, y, x) — after periodic wrap, and
// widens the result to float64 for use by the floating-point samplers.
func getValue[T native.VoxelElement](v native.View3D[T], x, y, z int) float64 {
	dz, dy, dx := v.Shape()
	return float64(v.At(wrap(z, dz), wrap(y, dy), wrap(x, dx)))
}

// Nearest returns V[⌊z⌋, ⌊y⌋, ⌊x⌋] after periodic wrap of each axis.
func Nearest[T native.VoxelElement](v native.View3D[T], x, y, z float64) T {
	dz, dy, dx := v.Shape()
	zi := wrap(int(math.Floor(z)), dz)
	yi := wrap(int(math.Floor(y)), dy)
	xi := wrap(int(math.Floor(x)), dx)
	return v.At(zi, yi, xi)
}

// Trilinear samples v at (x, y, z) with the standard 8-corner weighted
// sum over fractional parts (xd, yd, zd) = (x−⌊x⌋, y−⌊y⌋, z−⌊z⌋). The
// result lies in the convex hull of the 8 surrounding grid values.
func Trilinear[T native.VoxelElement](v native.View3D[T], x, y, z float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	z0 := int(math.Floor(z))
	x1, y1, z1 := x0+1, y0+1, z0+1

	xd := x - float64(x0)
	yd := y - float64(y0)
	zd := z - float64(z0)

	v000 := getValue(v, x0, y0, z0)
	v100 := getValue(v, x1, y0, z0)
	v010 := getValue(v, x0, y1, z0)
	v001 := getValue(v, x0, y0, z1)
	v110 := getValue(v, x1, y1, z0)
	v101 := getValue(v, x1, y0, z1)
	v011 := getValue(v, x0, y1, z1)
	v111 := getValue(v, x1, y1, z1)

	c00 := v000*(1-xd) + v100*xd
	c10 := v010*(1-xd) + v110*xd
	c01 := v001*(1-xd) + v101*xd
	c11 := v011*(1-xd) + v111*xd

	c0 := c00*(1-yd) + c10*yd
	c1 := c01*(1-yd) + c11*yd

	return c0*(1-zd) + c1*zd
}
