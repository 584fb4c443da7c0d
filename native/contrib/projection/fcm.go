// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package projection

import (
	"math"

	"github.com/invesalius/invesalius3/native"
	"github.com/invesalius/invesalius3/native/contrib/workerpool"
)

// FCMMode selects the reduction applied to the gradient-derived feature
// volume computed by FCM.
type FCMMode int

const (
	FCMMax   FCMMode = iota // 0: plain maximum along axis
	FCMLMIP                 // 1: LMIP with fixed tmin=700, tmax=3033
	FCMMIDA                 // 2: MIDA with the caller's wl, ww
)

// fcmLMIPTmin and fcmLMIPTmax are the fixed window fast-contour-MIP uses
// when reducing its feature volume with LMIP (§4.4); unlike the plain LMIP
// entry point these are not caller parameters.
const (
	fcmLMIPTmin = 700
	fcmLMIPTmax = 3033
)

// axisDirection returns the unit vector along axis in (x, y, z) component
// order, matching the order finiteDifference returns its gradient in.
func axisDirection(axis Axis) [3]float64 {
	var dir [3]float64
	switch axis {
	case Axial:
		dir[2] = 1
	case Coronal:
		dir[1] = 1
	default:
		dir[0] = 1
	}
	return dir
}

// finiteDifference computes the clamp-at-edge central difference gradient
// of v at (x, y, z), in (gx, gy, gz) order, with step h.
func finiteDifference[T native.VoxelElement](v native.View3D[T], x, y, z int, h float64) [3]float64 {
	dz, dy, dx := v.Shape()

	px, fx := x-1, x+1
	if x == 0 {
		px = 0
	}
	if x == dx-1 {
		fx = dx - 1
	}
	py, fy := y-1, y+1
	if y == 0 {
		py = 0
	}
	if y == dy-1 {
		fy = dy - 1
	}
	pz, fz := z-1, z+1
	if z == 0 {
		pz = 0
	}
	if z == dz-1 {
		fz = dz - 1
	}

	gx := (float64(v.At(z, y, fx)) - float64(v.At(z, y, px))) / (2 * h)
	gy := (float64(v.At(z, fy, x)) - float64(v.At(z, py, x))) / (2 * h)
	gz := (float64(v.At(fz, y, x)) - float64(v.At(pz, y, x))) / (2 * h)
	return [3]float64{gx, gy, gz}
}

// fcmIntensity computes the feature value at (x, y, z): the finite
// difference gradient magnitude gm, scaled by a direction-sensitivity
// factor sf = (1 - |dot(g, dir)|/gm)^n that favors gradients orthogonal to
// the ray direction. Zero wherever the gradient vanishes.
func fcmIntensity[T native.VoxelElement](v native.View3D[T], x, y, z int, n float64, dir [3]float64) float64 {
	g := finiteDifference(v, x, y, z, 1.0)
	gm := math.Sqrt(g[0]*g[0] + g[1]*g[1] + g[2]*g[2])
	if gm == 0 {
		return 0
	}
	d := g[0]*dir[0] + g[1]*dir[1] + g[2]*dir[2]
	sf := math.Pow(1-math.Abs(d/gm), n)
	return gm * sf
}

// FCM computes the fast-contour feature volume (finite-difference gradient
// magnitude times a direction-sensitivity factor) and reduces it along
// axis using mode (§4.4). The feature volume is allocated and filled once,
// matching the spec's "no hidden allocations inside inner loops" rule for
// per-call scratch.
func FCM[T native.VoxelElement](pool *workerpool.Pool, v native.View3D[T], axis Axis, n float64, wl, ww T, mode FCMMode, out native.View2D[T]) error {
	dz, dy, dx := v.Shape()
	tmpData := make([]T, dz*dy*dx)
	tmp := native.NewView3D(tmpData, dz, dy, dx)
	dir := axisDirection(axis)

	pool.ParallelFor(dz, func(zStart, zEnd int) {
		for z := zStart; z < zEnd; z++ {
			for y := 0; y < dy; y++ {
				for x := 0; x < dx; x++ {
					tmp.Set(z, y, x, T(fcmIntensity(v, x, y, z, n, dir)))
				}
			}
		}
	})

	switch mode {
	case FCMLMIP:
		return LMIP(pool, tmp, axis, T(fcmLMIPTmin), T(fcmLMIPTmax), out)
	case FCMMIDA:
		return MIDA(pool, tmp, axis, wl, ww, out)
	default:
		return maxProjection(pool, tmp, axis, out)
	}
}

// maxProjection is the plain maximum-intensity projection (FCM mode 0):
// the output at each pixel is the largest sample along its ray.
func maxProjection[T native.VoxelElement](pool *workerpool.Pool, v native.View3D[T], axis Axis, out native.View2D[T]) error {
	dz, dy, dx := v.Shape()
	rows, cols := outputShape(dz, dy, dx, axis)
	if err := native.CheckShape2D("out", out, rows, cols); err != nil {
		return err
	}
	n := rayLen(dz, dy, dx, axis)

	forEachPixel(pool, rows, cols, func(r, c int) {
		max := sampleAt(v, axis, r, c, 0)
		for i := 1; i < n; i++ {
			if val := sampleAt(v, axis, r, c, i); val > max {
				max = val
			}
		}
		out.Set(r, c, max)
	})
	return nil
}
