// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package interpolation

import (
	"math"

	"github.com/invesalius/invesalius3/native"
)

// cubicInterpolate is the 1-D Catmull-Rom kernel over 4 samples p, evaluated
// at fractional offset t in [0, 1) between p[1] and p[2].
func cubicInterpolate(p [4]float64, t float64) float64 {
	return p[1] + 0.5*t*(p[2]-p[0]+t*(2*p[0]-5*p[1]+4*p[2]-p[3]+t*(3*(p[1]-p[2])+p[3]-p[0])))
}

// bicubicInterpolate applies cubicInterpolate along the second axis of p
// (producing 4 intermediate values at fractional offset y), then along the
// remaining axis at fractional offset x.
func bicubicInterpolate(p [4][4]float64, x, y float64) float64 {
	var row [4]float64
	for i := 0; i < 4; i++ {
		row[i] = cubicInterpolate(p[i], y)
	}
	return cubicInterpolate(row, x)
}

// Tricubic samples v at (x, y, z) with Catmull-Rom interpolation over the
// 4×4×4 neighborhood centered at ⌊x,y,z⌋+(i−1,j−1,k−1). Evaluation is
// bicubic per x-plane (along y then z), followed by a 1-D pass along x at
// fractional offset x−⌊x⌋ — unlike Trilinear/Nearest, the result may
// overshoot the range of the 64 sampled values.
func Tricubic[T native.VoxelElement](v native.View3D[T], x, y, z float64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	zi := int(math.Floor(z))

	var p [4][4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				p[i][k][j] = getValue(v, xi+i-1, yi+j-1, zi+k-1)
			}
		}
	}

	yd := y - float64(yi)
	zd := z - float64(zi)

	var perX [4]float64
	for i := 0; i < 4; i++ {
		perX[i] = bicubicInterpolate(p[i], zd, yd)
	}

	return cubicInterpolate(perX, x-float64(xi))
}
