// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package native

import "testing"

func TestView3DContiguousIndexing(t *testing.T) {
	dz, dy, dx := 2, 3, 4
	data := make([]int16, dz*dy*dx)
	for i := range data {
		data[i] = int16(i)
	}
	v := NewView3D(data, dz, dy, dx)

	if !v.Contiguous() {
		t.Fatalf("expected contiguous view")
	}

	for z := 0; z < dz; z++ {
		for y := 0; y < dy; y++ {
			for x := 0; x < dx; x++ {
				want := int16(z*dy*dx + y*dx + x)
				if got := v.At(z, y, x); got != want {
					t.Errorf("At(%d,%d,%d) = %d, want %d", z, y, x, got, want)
				}
			}
		}
	}
}

func TestView3DSet(t *testing.T) {
	data := make([]uint8, 2*2*2)
	v := NewView3D(data, 2, 2, 2)
	v.Set(1, 1, 1, 42)
	if got := v.At(1, 1, 1); got != 42 {
		t.Errorf("At(1,1,1) = %d, want 42", got)
	}
	if data[len(data)-1] != 42 {
		t.Errorf("backing slice not mutated through the view")
	}
}

func TestView3DStrided(t *testing.T) {
	// Borrow every other z-slice of an 8-slice volume: shape (4, 2, 2)
	// with a z-stride of 2*2*2 = 8 elements (two 2x2 slices) into an 8x2x2
	// backing array.
	backing := make([]float64, 8*2*2)
	for i := range backing {
		backing[i] = float64(i)
	}
	v := NewStridedView3D(backing, [3]int{4, 2, 2}, [3]int{8, 2, 1})
	if v.Contiguous() {
		t.Fatalf("strided view should not report contiguous")
	}
	// z=1 in the strided view maps to z=2 in the backing 8-slice volume.
	want := backing[2*2*2+0*2+0]
	if got := v.At(1, 0, 0); got != want {
		t.Errorf("At(1,0,0) = %v, want %v", got, want)
	}
}

func TestView3DInBounds(t *testing.T) {
	v := NewView3D(make([]int16, 2*3*4), 2, 3, 4)
	cases := []struct {
		z, y, x int
		want    bool
	}{
		{0, 0, 0, true},
		{1, 2, 3, true},
		{2, 0, 0, false},
		{-1, 0, 0, false},
		{0, 3, 0, false},
		{0, 0, 4, false},
	}
	for _, c := range cases {
		if got := v.InBounds(c.z, c.y, c.x); got != c.want {
			t.Errorf("InBounds(%d,%d,%d) = %v, want %v", c.z, c.y, c.x, got, c.want)
		}
	}
}

func TestCheckShape3D(t *testing.T) {
	v := NewView3D(make([]uint8, 2*3*4), 2, 3, 4)
	if err := CheckShape3D("mask", v, 2, 3, 4); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckShape3D("mask", v, 9, 3, 4); err == nil {
		t.Errorf("expected shape mismatch error")
	}
}

func TestView2D(t *testing.T) {
	data := make([]uint8, 3*5)
	v := NewView2D(data, 3, 5)
	v.Set(1, 4, 9)
	if got := v.At(1, 4); got != 9 {
		t.Errorf("At(1,4) = %d, want 9", got)
	}
	if err := CheckShape2D("mask", v, 3, 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckShape2D("mask", v, 3, 6); err == nil {
		t.Errorf("expected shape mismatch error")
	}
}
