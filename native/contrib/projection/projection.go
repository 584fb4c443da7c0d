// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

// Package projection implements the tri-axis ray-casting projections
// (§4.4): LMIP (local maximum intensity), MIDA (front-to-back compositing),
// and the feature-enhanced contour MIP (FCM) that reduces a gradient-derived
// volume instead of the raw samples, with a plain maximum, LMIP or MIDA. All
// three walk rays along one of the volume's own axes and write a 2-D
// output whose axes are the two axes left over, in volume order.
package projection

import (
	"math"

	"github.com/invesalius/invesalius3/native"
	"github.com/invesalius/invesalius3/native/contrib/workerpool"
)

// Axis names the ray direction: 0 walks z (AXIAL), 1 walks y (CORONAL), 2
// walks x (SAGITTAL). The output's two axes are always the volume's
// remaining two axes, in volume (z, y, x) order.
type Axis int

const (
	Axial Axis = iota
	Coronal
	Sagittal
)

// outputShape returns the (rows, cols) of the 2-D projection of a volume
// shaped (dz, dy, dx) along axis.
func outputShape(dz, dy, dx int, axis Axis) (rows, cols int) {
	switch axis {
	case Axial:
		return dy, dx
	case Coronal:
		return dz, dx
	default:
		return dz, dy
	}
}

// rayLen returns the number of samples along a ray cast through axis.
func rayLen(dz, dy, dx int, axis Axis) int {
	switch axis {
	case Axial:
		return dz
	case Coronal:
		return dy
	default:
		return dx
	}
}

// sampleAt returns the volume sample at ray position i of the ray through
// output pixel (r, c), for the given axis.
func sampleAt[T native.VoxelElement](v native.View3D[T], axis Axis, r, c, i int) T {
	switch axis {
	case Axial:
		return v.At(i, r, c)
	case Coronal:
		return v.At(r, i, c)
	default:
		return v.At(r, c, i)
	}
}

// forEachPixel runs fn(r, c) for every output pixel in parallel, sharded
// by row across the worker pool.
func forEachPixel(pool *workerpool.Pool, rows, cols int, fn func(r, c int)) {
	pool.ParallelFor(rows, func(start, end int) {
		for r := start; r < end; r++ {
			for c := 0; c < cols; c++ {
				fn(r, c)
			}
		}
	})
}

// LMIP computes the local-maximum-intensity projection along axis (§4.4):
// for each ray, track max_val (seeded with the first sample) and whether
// any sample so far (the first included) has fallen inside [tmin, tmax];
// once one has, any subsequent sample lower than max_val ends the ray early.
func LMIP[T native.VoxelElement](pool *workerpool.Pool, v native.View3D[T], axis Axis, tmin, tmax T, out native.View2D[T]) error {
	dz, dy, dx := v.Shape()
	rows, cols := outputShape(dz, dy, dx, axis)
	if err := native.CheckShape2D("out", out, rows, cols); err != nil {
		return err
	}
	n := rayLen(dz, dy, dx, axis)

	forEachPixel(pool, rows, cols, func(r, c int) {
		maxVal := sampleAt(v, axis, r, c, 0)
		start := maxVal >= tmin && maxVal <= tmax
		for i := 0; i < n; i++ {
			val := sampleAt(v, axis, r, c, i)
			if val > maxVal {
				maxVal = val
			} else if val < maxVal && start {
				break
			}
			if val >= tmin && val <= tmax {
				start = true
			}
		}
		out.Set(r, c, maxVal)
	})
	return nil
}

// opacity maps a sample value to [0, 1] via a linear window (wl, ww): 0
// below the window, 1 above it, linear in between. wl and ww arrive as the
// volume's native sample values, so the window half-width is floored to an
// integer before building the bounds, matching the original's i16 ww/2.
func opacity(vl, wl, ww float64) float64 {
	halfWW := math.Trunc(ww / 2)
	lo := wl - halfWW
	hi := wl + halfWW
	switch {
	case vl < lo:
		return 0
	case vl > hi:
		return 1
	default:
		return (vl - lo) / (hi - lo)
	}
}

// volumeRange returns the (min, max) sample value across the whole volume.
func volumeRange[T native.VoxelElement](v native.View3D[T]) (min, max T) {
	dz, dy, dx := v.Shape()
	min, max = v.At(0, 0, 0), v.At(0, 0, 0)
	for z := 0; z < dz; z++ {
		for y := 0; y < dy; y++ {
			for x := 0; x < dx; x++ {
				val := v.At(z, y, x)
				if val < min {
					min = val
				}
				if val > max {
					max = val
				}
			}
		}
	}
	return min, max
}

// MIDA computes the maximum-intensity-difference-accumulation projection
// along axis (§4.4): front-to-back compositing of opacity alpha_p and
// colour c_p, with a running floor f_max of the normalized sample. A
// constant volume (img_max == img_min) has no well-defined normalization;
// per §7's numerical-infeasibility guard, the output is the constant value
// itself rather than a division by zero.
func MIDA[T native.VoxelElement](pool *workerpool.Pool, v native.View3D[T], axis Axis, wl, ww T, out native.View2D[T]) error {
	dz, dy, dx := v.Shape()
	rows, cols := outputShape(dz, dy, dx, axis)
	if err := native.CheckShape2D("out", out, rows, cols); err != nil {
		return err
	}
	n := rayLen(dz, dy, dx, axis)

	imgMin, imgMax := volumeRange(v)
	rangeF := float64(imgMax) - float64(imgMin)
	if rangeF == 0 {
		forEachPixel(pool, rows, cols, func(r, c int) {
			out.Set(r, c, imgMin)
		})
		return nil
	}

	wlF, wwF := float64(wl), float64(ww)
	forEachPixel(pool, rows, cols, func(r, c int) {
		fmax, alphaP, colourP := 0.0, 0.0, 0.0
		for i := 0; i < n; i++ {
			vl := float64(sampleAt(v, axis, r, c, i))
			f := (vl - float64(imgMin)) / rangeF

			d := 0.0
			if f > fmax {
				d = f - fmax
				fmax = f
			}
			beta := 1 - d
			alpha := opacity(vl, wlF, wwF)

			colourP = beta*colourP + (1-beta*alphaP)*f*alpha
			alphaP = beta*alphaP + (1-beta*alphaP)*alpha

			if alphaP >= 1 {
				break
			}
		}
		out.Set(r, c, T(rangeF*colourP+float64(imgMin)))
	})
	return nil
}
