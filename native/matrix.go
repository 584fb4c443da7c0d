// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package native

import "gonum.org/v1/gonum/mat"

// Mat4 is a 4×4 homogeneous transform matrix (§3): row-major 64-bit float,
// applied as q = M·p to a column vector p = (p0, p1, p2, 1). Used by the
// transform kernel (the view matrix) and the mask-cut kernel (the
// world-to-clip and view matrices).
type Mat4 struct {
	d *mat.Dense
}

// NewMat4 builds a Mat4 from 16 row-major entries. Returns
// *InvalidArgumentError if data does not have exactly 16 elements.
func NewMat4(param string, data []float64) (Mat4, error) {
	if len(data) != 16 {
		return Mat4{}, &InvalidArgumentError{Param: param, Reason: "matrix must have exactly 16 elements"}
	}
	cp := make([]float64, 16)
	copy(cp, data)
	return Mat4{d: mat.NewDense(4, 4, cp)}, nil
}

// Identity4 returns the 4×4 identity matrix.
func Identity4() Mat4 {
	m, _ := NewMat4("identity", []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	return m
}

// At returns the entry at row i, column j.
func (m Mat4) At(i, j int) float64 { return m.d.At(i, j) }

// Apply computes q = M·(p0, p1, p2, 1) and returns the four homogeneous
// components of q. Allocates a pair of gonum vectors on every call; kernels
// that call Apply per voxel should use Mat4Scratch instead.
func (m Mat4) Apply(p0, p1, p2 float64) (q0, q1, q2, q3 float64) {
	p := mat.NewVecDense(4, []float64{p0, p1, p2, 1})
	var q mat.VecDense
	q.MulVec(m.d, p)
	return q.AtVec(0), q.AtVec(1), q.AtVec(2), q.AtVec(3)
}

// Mat4Scratch holds the pair of 4-vectors Mat4.Apply needs, preallocated
// once and reused across calls. Not safe for concurrent use: a parallel
// kernel should allocate one Mat4Scratch per worker shard.
type Mat4Scratch struct {
	p *mat.VecDense
	q *mat.VecDense
}

// NewMat4Scratch allocates a Mat4Scratch ready for repeated Apply calls.
func NewMat4Scratch() *Mat4Scratch {
	return &Mat4Scratch{
		p: mat.NewVecDense(4, make([]float64, 4)),
		q: mat.NewVecDense(4, make([]float64, 4)),
	}
}

// Apply computes q = m·(p0, p1, p2, 1), same as Mat4.Apply, but reuses this
// scratch's vectors instead of allocating new ones.
func (s *Mat4Scratch) Apply(m Mat4, p0, p1, p2 float64) (q0, q1, q2, q3 float64) {
	s.p.SetVec(0, p0)
	s.p.SetVec(1, p1)
	s.p.SetVec(2, p2)
	s.p.SetVec(3, 1)
	s.q.MulVec(m.d, s.p)
	return s.q.AtVec(0), s.q.AtVec(1), s.q.AtVec(2), s.q.AtVec(3)
}
