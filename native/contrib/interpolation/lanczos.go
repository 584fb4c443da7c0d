// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package interpolation

import (
	"math"

	"github.com/invesalius/invesalius3/native"
)

// lanczosA is the Lanczos window parameter used throughout (§4.1): a 7×7×7
// support (2a-1 samples per axis).
const lanczosA = 4

// lanczosKernel is the windowed-sinc Lanczos-4 kernel: 1 at x=0, 0 outside
// [-a, a), and a·sin(πx)·sin(πx/a)/(π²x²) in between.
func lanczosKernel(x float64) float64 {
	if x == 0 {
		return 1
	}
	a := float64(lanczosA)
	if x >= -a && x < a {
		return a * math.Sin(math.Pi*x) * math.Sin(math.Pi*x/a) / (math.Pi * math.Pi * x * x)
	}
	return 0
}

// Lanczos4 samples v at (x, y, z) with a windowed-sinc kernel over a 7×7×7
// support (indices ⌊x,y,z⌋−3 .. ⌊x,y,z⌋+4 per axis). Evaluation factorizes
// into three nested 1-D passes — x, then y, then z — through two
// temporary buffers, exactly as the teacher's interpolation kernels size
// and reuse scratch once per call rather than allocating per sample.
func Lanczos4[T native.VoxelElement](v native.View3D[T], x, y, z float64) float64 {
	xd := int(math.Floor(x))
	yd := int(math.Floor(y))
	zd := int(math.Floor(z))

	xi, xf := xd-lanczosA+1, xd+lanczosA
	yi, yf := yd-lanczosA+1, yd+lanczosA
	zi, zf := zd-lanczosA+1, zd+lanczosA

	const size = 2*lanczosA - 1
	var tempX [size][size]float64
	var tempY [size]float64

	m := 0
	for kk := zi; kk < zf; kk++ {
		n := 0
		for jj := yi; jj < yf; jj++ {
			lx := 0.0
			for ii := xi; ii < xf; ii++ {
				lx += getValue(v, ii, jj, kk) * lanczosKernel(x-float64(ii))
			}
			tempX[m][n] = lx
			n++
		}
		m++
	}

	m = 0
	for kk := zi; kk < zf; kk++ {
		_ = kk
		n := 0
		ly := 0.0
		for jj := yi; jj < yf; jj++ {
			ly += tempX[m][n] * lanczosKernel(y-float64(jj))
			n++
		}
		tempY[m] = ly
		m++
	}

	lz := 0.0
	m = 0
	for kk := zi; kk < zf; kk++ {
		lz += tempY[m] * lanczosKernel(z-float64(kk))
		m++
	}

	return lz
}
