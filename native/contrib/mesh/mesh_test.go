// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package mesh

import (
	"math"
	"testing"

	"github.com/invesalius/invesalius3/native"
	"github.com/invesalius/invesalius3/native/contrib/workerpool"
)

// tetrahedron builds a 4-vertex, 4-face closed mesh (a regular-ish
// tetrahedron) with no border edges: every edge is shared by exactly two
// faces.
func tetrahedron(t *testing.T) *Mesh[float64, int32] {
	t.Helper()
	verts := native.NewView2D([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, 4, 3)
	faces := native.NewView2D([]int32{
		3, 0, 1, 2,
		3, 0, 1, 3,
		3, 0, 2, 3,
		3, 1, 2, 3,
	}, 4, 4)
	normals := native.NewView2D([]float64{
		0, 0, -1,
		0, -1, 0,
		-1, 0, 0,
		1, 1, 1,
	}, 4, 3)

	m, err := New[float64, int32](verts, faces, normals)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

// openSquare builds two triangles sharing one interior diagonal edge and
// forming an open quad (four border edges, one shared interior edge).
func openSquare(t *testing.T) *Mesh[float64, int32] {
	t.Helper()
	verts := native.NewView2D([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}, 4, 3)
	faces := native.NewView2D([]int32{
		3, 0, 1, 2,
		3, 0, 2, 3,
	}, 2, 4)
	normals := native.NewView2D([]float64{
		0, 0, 1,
		0, 0, 1,
	}, 2, 3)

	m, err := New[float64, int32](verts, faces, normals)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewAdjacencyCoversAllReferencedVertices(t *testing.T) {
	m := tetrahedron(t)
	for v := 0; v < 4; v++ {
		if len(m.Faces(v)) != 3 {
			t.Errorf("vertex %d: got %d incident faces, want 3", v, len(m.Faces(v)))
		}
	}
}

func TestClosedMeshHasNoBorderVertices(t *testing.T) {
	m := tetrahedron(t)
	for v := 0; v < 4; v++ {
		if m.IsBorder(v) {
			t.Errorf("vertex %d: want not border in a closed mesh", v)
		}
	}
}

func TestOpenSquareBorderVertices(t *testing.T) {
	m := openSquare(t)
	// Every vertex of the two-triangle quad touches at least one
	// boundary edge (the shared diagonal 0-2 is the only non-border
	// edge), so all four vertices are border vertices.
	for v := 0; v < 4; v++ {
		if !m.IsBorder(v) {
			t.Errorf("vertex %d: want border in the open square", v)
		}
	}
}

func TestRing1ExcludesSelfAndMatchesIncidentFaces(t *testing.T) {
	m := tetrahedron(t)
	ring := m.Ring1(0)
	if _, ok := ring[0]; ok {
		t.Errorf("Ring1(0) contains 0, want self excluded")
	}
	for _, want := range []int{1, 2, 3} {
		if _, ok := ring[want]; !ok {
			t.Errorf("Ring1(0) missing neighbor %d", want)
		}
	}
}

func TestGetNearVerticesToRespectsDistanceCutoff(t *testing.T) {
	m := openSquare(t)
	// From vertex 0 at (0,0,0): vertex 1 is at distance 1, vertex 2 at
	// distance sqrt(2), vertex 3 at distance 1. A cutoff just above 1
	// should admit 1 and 3 but not 2.
	near := m.GetNearVerticesTo(0, 1.01)
	found := map[int]bool{}
	for _, v := range near {
		found[v] = true
	}
	if !found[1] || !found[3] {
		t.Errorf("GetNearVerticesTo(0, 1.01) = %v, want to include 1 and 3", near)
	}
	if found[2] {
		t.Errorf("GetNearVerticesTo(0, 1.01) = %v, want to exclude 2 (distance sqrt(2) > 1.01)", near)
	}
}

func TestFindStaircaseArtifactsFlagsHighVariance(t *testing.T) {
	// A vertex whose incident faces have wildly different normals along
	// the stack axis should be flagged at a modest threshold; a vertex
	// whose incident faces all share the same normal never is.
	m := tetrahedron(t)
	flagged := m.FindStaircaseArtifacts(StackOrientation, 0.1)
	if len(flagged) == 0 {
		t.Errorf("FindStaircaseArtifacts: want at least one flagged vertex for a tetrahedron's varied normals")
	}

	flat := openSquare(t) // both faces share the same normal (0,0,1)
	flatFlagged := flat.FindStaircaseArtifacts(StackOrientation, 0.1)
	if len(flatFlagged) != 0 {
		t.Errorf("FindStaircaseArtifacts on coplanar faces = %v, want none flagged", flatFlagged)
	}
}

func TestCalcArtifactsWeightPinsStaircaseVertexToOne(t *testing.T) {
	m := tetrahedron(t)
	weights := m.CalcArtifactsWeight(workerpool.New(2), []int{0}, 10.0, 0.2)
	if weights[0] != 1.0 {
		t.Errorf("weights[0] = %v, want 1.0", weights[0])
	}
	for v := 1; v < 4; v++ {
		if weights[v] < 0.2 || weights[v] > 1.0 {
			t.Errorf("weights[%d] = %v, want in [0.2, 1.0]", v, weights[v])
		}
	}
}

func TestCalcArtifactsWeightDefaultsToBmin(t *testing.T) {
	m := tetrahedron(t)
	weights := m.CalcArtifactsWeight(workerpool.New(2), nil, 10.0, 0.3)
	for v, w := range weights {
		if w != 0.3 {
			t.Errorf("weights[%d] = %v, want bmin 0.3 with no staircase vertices", v, w)
		}
	}
}

func TestTaubinSmoothPreservesTopology(t *testing.T) {
	m := tetrahedron(t)
	nvBefore, nfBefore := m.NumVertices(), m.NumFaces()

	facesBefore := make([][3]int, nfBefore)
	for f := 0; f < nfBefore; f++ {
		facesBefore[f] = [3]int{int(m.faces.At(f, 1)), int(m.faces.At(f, 2)), int(m.faces.At(f, 3))}
	}

	weights := make([]float64, nvBefore)
	for i := range weights {
		weights[i] = 1.0
	}
	m.TaubinSmooth(workerpool.New(2), weights, 0.5, -0.53, 3)

	if got := m.NumVertices(); got != nvBefore {
		t.Errorf("NumVertices after smoothing = %d, want %d", got, nvBefore)
	}
	if got := m.NumFaces(); got != nfBefore {
		t.Errorf("NumFaces after smoothing = %d, want %d", got, nfBefore)
	}
	for f := 0; f < nfBefore; f++ {
		got := [3]int{int(m.faces.At(f, 1)), int(m.faces.At(f, 2)), int(m.faces.At(f, 3))}
		if got != facesBefore[f] {
			t.Errorf("face %d incidence changed: got %v, want %v", f, got, facesBefore[f])
		}
	}
}

func TestTaubinSmoothLambdaStepMovesAlongDisplacement(t *testing.T) {
	// D(v) is defined as p_v minus the neighbor mean (not the other way
	// around), so a positive-lambda half-step taken alone moves a vertex
	// further along that vector rather than toward its neighbors: an apex
	// sitting above a flat, symmetric base gets pushed higher, not lower.
	// The compensating negative-mu half-step (run separately by the full
	// two-half-step Taubin iteration) is what pulls it back toward the
	// neighbor mean.
	verts := native.NewView2D([]float64{
		0, 0, 0,
		2, 0, 0,
		1, 2, 0,
		1, 0.6667, 3,
	}, 4, 3)
	faces := native.NewView2D([]int32{
		3, 0, 1, 2,
		3, 0, 1, 3,
		3, 1, 2, 3,
		3, 0, 2, 3,
	}, 4, 4)
	normals := native.NewView2D([]float64{
		0, 0, -1,
		0, -1, 0,
		1, 0, 0,
		-1, 0, 0,
	}, 4, 3)

	m, err := New[float64, int32](verts, faces, normals)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _, zBefore := m.Vertex(3)
	weights := []float64{0, 0, 0, 1}
	m.TaubinSmooth(workerpool.New(2), weights, 0.5, 0, 1) // weight 0 on the base holds it fixed; single lambda-only half-step
	_, _, zAfter := m.Vertex(3)

	if zAfter <= zBefore {
		t.Errorf("apex z after lambda-only half-step = %v, want > %v (displaced further from neighbor mean)", zAfter, zBefore)
	}
}

func TestCASmoothingRunsEndToEnd(t *testing.T) {
	m := tetrahedron(t)
	nvBefore := m.NumVertices()
	m.CASmoothing(workerpool.New(2), 0.1, 5.0, 0.2, 2)
	if got := m.NumVertices(); got != nvBefore {
		t.Errorf("NumVertices after CASmoothing = %d, want %d", got, nvBefore)
	}
	for v := 0; v < nvBefore; v++ {
		x, y, z := m.Vertex(v)
		if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
			t.Errorf("vertex %d has NaN coordinate after CASmoothing", v)
		}
	}
}
