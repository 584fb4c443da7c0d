// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package native

import "fmt"

// View3D is a borrowed, strided view over a dense 3-D array in (z, y, x)
// axis order (§3). It never copies data and never outlives the call that
// constructed it; callers may pass non-contiguous slices by supplying
// strides that differ from the contiguous row-major layout.
type View3D[T any] struct {
	data   []T
	shape  [3]int // dz, dy, dx
	stride [3]int // element strides for z, y, x
}

// NewView3D wraps a contiguous row-major (z, y, x) slice of length
// dz*dy*dx into a View3D.
func NewView3D[T any](data []T, dz, dy, dx int) View3D[T] {
	return View3D[T]{
		data:   data,
		shape:  [3]int{dz, dy, dx},
		stride: [3]int{dy * dx, dx, 1},
	}
}

// NewStridedView3D wraps data using explicit element strides, for volumes
// borrowed as a non-contiguous slice of a larger array.
func NewStridedView3D[T any](data []T, shape, stride [3]int) View3D[T] {
	return View3D[T]{data: data, shape: shape, stride: stride}
}

// Shape returns (dz, dy, dx).
func (v View3D[T]) Shape() (dz, dy, dx int) { return v.shape[0], v.shape[1], v.shape[2] }

// Len returns dz*dy*dx.
func (v View3D[T]) Len() int { return v.shape[0] * v.shape[1] * v.shape[2] }

func (v View3D[T]) offset(z, y, x int) int {
	return z*v.stride[0] + y*v.stride[1] + x*v.stride[2]
}

// InBounds reports whether (z, y, x) is a valid index into the view.
func (v View3D[T]) InBounds(z, y, x int) bool {
	return z >= 0 && z < v.shape[0] && y >= 0 && y < v.shape[1] && x >= 0 && x < v.shape[2]
}

// At returns the element at (z, y, x). The caller must ensure the index is
// in bounds; kernels that need boundary handling apply their own policy
// (wrap, clamp, substitute cval) before calling At.
func (v View3D[T]) At(z, y, x int) T {
	return v.data[v.offset(z, y, x)]
}

// Set writes val at (z, y, x). The view must have been constructed over a
// mutable output slice.
func (v View3D[T]) Set(z, y, x int, val T) {
	v.data[v.offset(z, y, x)] = val
}

// Raw returns the underlying backing slice, for kernels that need to fill
// it in a tight contiguous loop (only valid when the view is contiguous).
func (v View3D[T]) Raw() []T { return v.data }

// Contiguous reports whether the view has the standard row-major (z, y, x)
// strides, i.e. can be iterated with a flat index.
func (v View3D[T]) Contiguous() bool {
	return v.stride == [3]int{v.shape[1] * v.shape[2], v.shape[2], 1}
}

// View2D is a borrowed, strided view over a dense 2-D array in (row, col)
// axis order (§3): masks, and the two-axis outputs of the projection
// kernels.
type View2D[T any] struct {
	data   []T
	shape  [2]int // h, w
	stride [2]int
}

// NewView2D wraps a contiguous row-major (row, col) slice of length h*w.
func NewView2D[T any](data []T, h, w int) View2D[T] {
	return View2D[T]{data: data, shape: [2]int{h, w}, stride: [2]int{w, 1}}
}

// NewStridedView2D wraps data using explicit element strides.
func NewStridedView2D[T any](data []T, shape, stride [2]int) View2D[T] {
	return View2D[T]{data: data, shape: shape, stride: stride}
}

// Shape returns (h, w).
func (v View2D[T]) Shape() (h, w int) { return v.shape[0], v.shape[1] }

// Len returns h*w.
func (v View2D[T]) Len() int { return v.shape[0] * v.shape[1] }

func (v View2D[T]) offset(row, col int) int {
	return row*v.stride[0] + col*v.stride[1]
}

// InBounds reports whether (row, col) is a valid index into the view.
func (v View2D[T]) InBounds(row, col int) bool {
	return row >= 0 && row < v.shape[0] && col >= 0 && col < v.shape[1]
}

// At returns the element at (row, col).
func (v View2D[T]) At(row, col int) T {
	return v.data[v.offset(row, col)]
}

// Set writes val at (row, col).
func (v View2D[T]) Set(row, col int, val T) {
	v.data[v.offset(row, col)] = val
}

// Raw returns the underlying backing slice.
func (v View2D[T]) Raw() []T { return v.data }

// CheckShape3D validates that a view's shape matches (dz, dy, dx), returning
// an *InvalidArgumentError naming param if it does not.
func CheckShape3D[T any](param string, v View3D[T], dz, dy, dx int) error {
	gz, gy, gx := v.Shape()
	if gz != dz || gy != dy || gx != dx {
		return &InvalidArgumentError{
			Param:  param,
			Reason: fmt.Sprintf("shape (%d,%d,%d) does not match expected (%d,%d,%d)", gz, gy, gx, dz, dy, dx),
		}
	}
	return nil
}

// CheckShape2D validates that a view's shape matches (h, w).
func CheckShape2D[T any](param string, v View2D[T], h, w int) error {
	gh, gw := v.Shape()
	if gh != h || gw != w {
		return &InvalidArgumentError{
			Param:  param,
			Reason: fmt.Sprintf("shape (%d,%d) does not match expected (%d,%d)", gh, gw, h, w),
		}
	}
	return nil
}
