// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package floodfill

import "github.com/invesalius/invesalius3/native"

// autoFillValue is the mask value written by FillHolesBySize: 254 is
// reserved for "auto-filled", distinct from the host's 255 ("user-added")
// and 0 ("outside") conventions (§4.3).
const autoFillValue = 254

// FillHolesBySize fills small connected components of a labeled volume:
// every voxel whose label (including label 0, background fragments
// enclosed by the segmentation) has a component size at most maxSize is
// set to autoFillValue in mask. Returns false (mask untouched) if every
// non-zero label's component already exceeds maxSize.
func FillHolesBySize(mask native.View3D[uint8], labels native.View3D[uint16], nlabels, maxSize uint32) (bool, error) {
	if err := native.CheckShape3D("labels", labels, shapeOf(mask)); err != nil {
		return false, err
	}

	sizes := make([]uint32, nlabels+1)
	dz, dy, dx := labels.Shape()
	for z := 0; z < dz; z++ {
		for y := 0; y < dy; y++ {
			for x := 0; x < dx; x++ {
				sizes[labels.At(z, y, x)]++
			}
		}
	}

	modified := false
	for _, size := range sizes[1:] {
		if size > 0 && size <= maxSize {
			modified = true
			break
		}
	}
	if !modified {
		return false, nil
	}

	for z := 0; z < dz; z++ {
		for y := 0; y < dy; y++ {
			for x := 0; x < dx; x++ {
				if sizes[labels.At(z, y, x)] <= maxSize {
					mask.Set(z, y, x, autoFillValue)
				}
			}
		}
	}
	return true, nil
}
