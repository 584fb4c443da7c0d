// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package floodfill

import "github.com/invesalius/invesalius3/native"

func native3(dz, dy, dx int) native.View3D[int16] {
	return native.NewView3D(make([]int16, dz*dy*dx), dz, dy, dx)
}

func native3u8(dz, dy, dx int) native.View3D[uint8] {
	return native.NewView3D(make([]uint8, dz*dy*dx), dz, dy, dx)
}

func native3u16(dz, dy, dx int) native.View3D[uint16] {
	return native.NewView3D(make([]uint16, dz*dy*dx), dz, dy, dx)
}

// crossStructuringElement returns the 3×3×3 6-connectivity structuring
// element (a 3-D "plus" shape): the center and its 6 face-adjacent cells.
func crossStructuringElement() native.View3D[uint8] {
	s := native.NewView3D(make([]uint8, 3*3*3), 3, 3, 3)
	s.Set(1, 1, 1, 1)
	s.Set(0, 1, 1, 1)
	s.Set(2, 1, 1, 1)
	s.Set(1, 0, 1, 1)
	s.Set(1, 2, 1, 1)
	s.Set(1, 1, 0, 1)
	s.Set(1, 1, 2, 1)
	return s
}

// boxStructuringElement returns the full 3×3×3 neighborhood (26-connectivity,
// every offset but the center). A same-parity checkerboard class in a cuboid
// is connected only through its face-diagonal offsets (two axes moving by
// ±1), which this structuring element includes alongside the face and
// corner offsets that the threshold predicate will simply reject.
func boxStructuringElement() native.View3D[uint8] {
	s := native.NewView3D(make([]uint8, 3*3*3), 3, 3, 3)
	for kk := 0; kk < 3; kk++ {
		for jj := 0; jj < 3; jj++ {
			for ii := 0; ii < 3; ii++ {
				if !(kk == 1 && jj == 1 && ii == 1) {
					s.Set(kk, jj, ii, 1)
				}
			}
		}
	}
	return s
}
