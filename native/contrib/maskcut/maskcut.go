// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

// Package maskcut implements view-aligned mask cutting (§4.6): erasing
// voxels currently marked "in" the segmentation whose screen-space
// projection falls on a set pixel of a 2-D screen mask, subject to a depth gate
// against the view-space distance from the camera.
package maskcut

import (
	"math"

	"github.com/invesalius/invesalius3/native"
	"github.com/invesalius/invesalius3/native/contrib/workerpool"
)

// Spacing is the (sx, sy, sz) voxel spacing used to convert grid indices to
// world coordinates.
type Spacing struct {
	SX, SY, SZ float64
}

// inMaskThreshold is the output value above which a voxel is considered
// "in" the current segmentation and therefore a cut candidate.
const inMaskThreshold = 127

// Cut zeros every voxel of out that is currently above inMaskThreshold and
// whose projection (via the world-to-clip matrix m) is in front of the
// view (q[3] > 0), within maxDepth of the camera (measured through the
// view matrix mv), and falls on a set pixel of mask.
func Cut(pool *workerpool.Pool, spacing Spacing, maxDepth float64, mask native.View2D[bool], m, mv native.Mat4, out native.View3D[uint8]) error {
	h, w := mask.Shape()
	dz, dy, dx := out.Shape()

	pool.ParallelFor(dz, func(zStart, zEnd int) {
		scratch := native.NewMat4Scratch()
		for z := zStart; z < zEnd; z++ {
			for y := 0; y < dy; y++ {
				for x := 0; x < dx; x++ {
					if out.At(z, y, x) <= inMaskThreshold {
						continue
					}
					if cutVoxel(spacing, maxDepth, mask, m, mv, scratch, x, y, z, h, w) {
						out.Set(z, y, x, 0)
					}
				}
			}
		}
	})
	return nil
}

func cutVoxel(spacing Spacing, maxDepth float64, mask native.View2D[bool], m, mv native.Mat4, scratch *native.Mat4Scratch, x, y, z, h, w int) bool {
	px0, px1, px2 := float64(x)*spacing.SX, float64(y)*spacing.SY, float64(z)*spacing.SZ

	q0, q1, _, q3 := scratch.Apply(m, px0, px1, px2)
	if q3 <= 0 {
		return false
	}
	q0, q1 = q0/q3, q1/q3

	c0, c1, c2, c3 := scratch.Apply(mv, px0, px1, px2)
	c0, c1, c2 = c0/c3, c1/c3, c2/c3

	dist := l2Norm(c0, c1, c2)
	if dist > maxDepth {
		return false
	}

	sx := (q0/2 + 0.5) * float64(w-1)
	sy := (q1/2 + 0.5) * float64(h-1)
	if sx < 0 || sx >= float64(w) || sy < 0 || sy >= float64(h) {
		return false
	}

	return mask.At(int(sy), int(sx))
}

func l2Norm(a, b, c float64) float64 {
	return math.Sqrt(a*a + b*b + c*c)
}
