// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

// Package mesh implements context-aware (Taubin) mesh smoothing (§4.7):
// vertex/face adjacency construction, border detection, staircase-artifact
// detection from face normals, distance-based per-vertex artifact weights,
// and λ/μ bilaplacian smoothing driven by those weights.
package mesh

import "github.com/invesalius/invesalius3/native"

// Mesh holds a triangle mesh plus the vertex→face adjacency and border set
// precomputed at construction time. V is the vertex/normal coordinate type
// (32- or 64-bit float); I is the face index type (signed or unsigned,
// 32- or 64-bit). Each face row is (k, v0, v1, v2): k (the vertex count
// per face) is stored but never read, matching the host's fixed triangle
// mesh convention.
type Mesh[V native.MeshVertex, I native.MeshIndex] struct {
	vertices native.View2D[V]
	faces    native.View2D[I]
	normals  native.View2D[V]

	adjacency map[int][]int
	border    map[int]bool
}

// New builds a Mesh from vertices (n_v×3), faces (n_f×4), and normals
// (n_f×3), computing the vertex→face adjacency and the set of border
// vertices (those touching an edge shared by exactly one face).
func New[V native.MeshVertex, I native.MeshIndex](vertices native.View2D[V], faces native.View2D[I], normals native.View2D[V]) (*Mesh[V, I], error) {
	nv, vw := vertices.Shape()
	if vw != 3 {
		return nil, &native.InvalidArgumentError{Param: "vertices", Reason: "must have 3 columns"}
	}
	nf, fw := faces.Shape()
	if fw != 4 {
		return nil, &native.InvalidArgumentError{Param: "faces", Reason: "must have 4 columns"}
	}
	if err := native.CheckShape2D("normals", normals, nf, 3); err != nil {
		return nil, err
	}
	_ = nv

	m := &Mesh[V, I]{
		vertices:  vertices,
		faces:     faces,
		normals:   normals,
		adjacency: make(map[int][]int),
		border:    make(map[int]bool),
	}

	type edgeKey [2]int
	edgeCount := make(map[edgeKey]int)

	for i := 0; i < nf; i++ {
		v1 := int(faces.At(i, 1))
		v2 := int(faces.At(i, 2))
		v3 := int(faces.At(i, 3))

		m.adjacency[v1] = append(m.adjacency[v1], i)
		m.adjacency[v2] = append(m.adjacency[v2], i)
		m.adjacency[v3] = append(m.adjacency[v3], i)

		edgeCount[sortedEdge(v1, v2)]++
		edgeCount[sortedEdge(v2, v3)]++
		edgeCount[sortedEdge(v1, v3)]++
	}

	for edge, count := range edgeCount {
		if count == 1 {
			m.border[edge[0]] = true
			m.border[edge[1]] = true
		}
	}

	return m, nil
}

func sortedEdge(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh[V, I]) NumVertices() int {
	n, _ := m.vertices.Shape()
	return n
}

// NumFaces returns the number of faces in the mesh.
func (m *Mesh[V, I]) NumFaces() int {
	n, _ := m.faces.Shape()
	return n
}

// Vertex returns the (x, y, z) position of vertex vID as float64.
func (m *Mesh[V, I]) Vertex(vID int) (x, y, z float64) {
	return float64(m.vertices.At(vID, 0)), float64(m.vertices.At(vID, 1)), float64(m.vertices.At(vID, 2))
}

func (m *Mesh[V, I]) setVertex(vID int, x, y, z float64) {
	m.vertices.Set(vID, 0, V(x))
	m.vertices.Set(vID, 1, V(y))
	m.vertices.Set(vID, 2, V(z))
}

// Normal returns the unit normal of face fID.
func (m *Mesh[V, I]) Normal(fID int) (x, y, z float64) {
	return float64(m.normals.At(fID, 0)), float64(m.normals.At(fID, 1)), float64(m.normals.At(fID, 2))
}

// Faces returns the incident face indices of vertex vID, or nil if it is
// not referenced by any face.
func (m *Mesh[V, I]) Faces(vID int) []int {
	return m.adjacency[vID]
}

// IsBorder reports whether vID touches an edge shared by exactly one face.
func (m *Mesh[V, I]) IsBorder(vID int) bool {
	return m.border[vID]
}

// Ring1 returns the set of vertices sharing a face with vID, excluding
// vID itself.
func (m *Mesh[V, I]) Ring1(vID int) map[int]struct{} {
	ring := make(map[int]struct{})
	for _, fID := range m.adjacency[vID] {
		for i := 1; i < 4; i++ {
			v := int(m.faces.At(fID, i))
			if v != vID {
				ring[v] = struct{}{}
			}
		}
	}
	return ring
}
