// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"github.com/invesalius/invesalius3/native"
	"github.com/invesalius/invesalius3/native/contrib/workerpool"
)

// ConvolveNonZero computes a 3-D cross-correlation (no kernel flipping) of
// volume with kernel, writing into out only at voxels where volume is
// non-zero — other output voxels are left untouched, so callers that need
// a clean baseline should zero out first. Out-of-bounds kernel taps are
// substituted with cval. The kernel's center is (skz/2, sky/2, skx/2) by
// integer division, so kernels of any (odd or even) shape are accepted.
func ConvolveNonZero[T native.VoxelElement](pool *workerpool.Pool, volume native.View3D[T], kernel native.View3D[float64], cval T, out native.View3D[T]) error {
	if err := native.CheckShape3D("out", out, shapeOf(volume)); err != nil {
		return err
	}
	sz, sy, sx := volume.Shape()
	skz, sky, skx := kernel.Shape()
	cz, cy, cx := skz/2, sky/2, skx/2
	cvalF := float64(cval)

	pool.ParallelFor(sz, func(zStart, zEnd int) {
		for z := zStart; z < zEnd; z++ {
			for y := 0; y < sy; y++ {
				for x := 0; x < sx; x++ {
					if volume.At(z, y, x) == 0 {
						continue
					}
					sum := 0.0
					for k := 0; k < skz; k++ {
						kz := z - cz + k
						for j := 0; j < sky; j++ {
							ky := y - cy + j
							for i := 0; i < skx; i++ {
								kx := x - cx + i
								var val float64
								if kz >= 0 && kz < sz && ky >= 0 && ky < sy && kx >= 0 && kx < sx {
									val = float64(volume.At(kz, ky, kx))
								} else {
									val = cvalF
								}
								sum += val * kernel.At(k, j, i)
							}
						}
					}
					out.Set(z, y, x, T(sum))
				}
			}
		}
	})
	return nil
}

func shapeOf[T any](v native.View3D[T]) (int, int, int) {
	d, h, w := v.Shape()
	return d, h, w
}
