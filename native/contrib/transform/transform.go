// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

// Package transform implements volume resampling through an arbitrary 4×4
// homogeneous matrix (§4.5) and non-zero-masked 3-D convolution. Resampling
// processes one slab of the output volume per call — the slab's position
// along one axis is given by an offset n, letting a caller drive this
// incrementally (one slice at a time) without resampling the whole volume.
package transform

import (
	"github.com/invesalius/invesalius3/native"
	"github.com/invesalius/invesalius3/native/contrib/interpolation"
	"github.com/invesalius/invesalius3/native/contrib/workerpool"
)

// Orientation names which output axis the slab offset n is added to.
type Orientation int

const (
	Axial Orientation = iota
	Coronal
	Sagital
)

// Interpolator selects the point sampler used by ApplyViewMatrixTransform.
type Interpolator int

const (
	Nearest Interpolator = iota
	Trilinear
	Tricubic
	Lanczos4
)

// Spacing is the (sx, sy, sz) voxel spacing used to convert between grid
// indices and world coordinates.
type Spacing struct {
	SX, SY, SZ float64
}

// ApplyViewMatrixTransform resamples volume through m into out (§4.5). For
// every output index (cz, cy, cx), the corresponding source index is
// offset along the axis orientation names by n (so a caller can resample
// the volume slab by slab). The matrix is applied in (z-world, y-world,
// x-world, 1) order; the result is divided by spacing to recover grid
// coordinates. A source coordinate strictly inside [0, d-1) on every axis
// is sampled with the chosen interpolator; otherwise the output is cval.
func ApplyViewMatrixTransform[T native.VoxelElement](
	pool *workerpool.Pool,
	v native.View3D[T],
	spacing Spacing,
	m native.Mat4,
	n int,
	orientation Orientation,
	minterpol Interpolator,
	cval T,
	out native.View3D[T],
) error {
	dz, dy, dx := v.Shape()
	odz, ody, odx := out.Shape()

	pool.ParallelFor(odz, func(czStart, czEnd int) {
		scratch := native.NewMat4Scratch()
		for cz := czStart; cz < czEnd; cz++ {
			for cy := 0; cy < ody; cy++ {
				for cx := 0; cx < odx; cx++ {
					z, y, x := cz, cy, cx
					switch orientation {
					case Axial:
						z = n + cz
					case Coronal:
						y = n + cy
					case Sagital:
						x = n + cx
					}
					out.Set(cz, cy, cx, sampleTransformed(v, m, scratch, x, y, z, spacing, dz, dy, dx, minterpol, cval))
				}
			}
		}
	})
	return nil
}

func sampleTransformed[T native.VoxelElement](v native.View3D[T], m native.Mat4, scratch *native.Mat4Scratch, x, y, z int, spacing Spacing, dz, dy, dx int, minterpol Interpolator, cval T) T {
	q0, q1, q2, q3 := scratch.Apply(m, float64(z)*spacing.SZ, float64(y)*spacing.SY, float64(x)*spacing.SX)

	nz := (q0 / q3) / spacing.SZ
	ny := (q1 / q3) / spacing.SY
	nx := (q2 / q3) / spacing.SX

	fdz, fdy, fdx := float64(dz), float64(dy), float64(dx)
	if !(nz >= 0 && nz < fdz-1 && ny >= 0 && ny < fdy-1 && nx >= 0 && nx < fdx-1) {
		return cval
	}

	switch minterpol {
	case Nearest:
		return interpolation.Nearest(v, nx, ny, nz)
	case Trilinear:
		return T(interpolation.Trilinear(v, nx, ny, nz))
	case Tricubic:
		val := interpolation.Tricubic(v, nx, ny, nz)
		if val < float64(cval) {
			val = float64(cval)
		}
		return T(val)
	default:
		val := interpolation.Lanczos4(v, nx, ny, nz)
		if val < float64(cval) {
			val = float64(cval)
		}
		return T(val)
	}
}
