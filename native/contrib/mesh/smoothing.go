// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package mesh

import (
	"math"
	"sync"

	"github.com/invesalius/invesalius3/native"
	"github.com/invesalius/invesalius3/native/contrib/workerpool"
)

// StackOrientation is the default acquisition-axis direction used by
// CASmoothing (§4.7): the mesh is assumed reconstructed from a stack of
// axial slices, so the z axis is the orientation most likely to show
// staircase artifacts from slice quantization.
var StackOrientation = [3]float64{0, 0, 1}

// FindStaircaseArtifacts returns the ids of vertices whose incident faces'
// normals vary enough, along any of the three reference directions
// (stackOrientation, y, and x), to indicate a staircase artifact: for each
// vertex it tracks the running max/min of 1-|dot(normal,dir)| across its
// incident faces and flags the vertex as soon as any of the three spreads
// reaches t.
func (m *Mesh[V, I]) FindStaircaseArtifacts(stackOrientation [3]float64, t float64) []int {
	nv := m.NumVertices()
	var output []int

	for vID := 0; vID < nv; vID++ {
		faces := m.adjacency[vID]
		if len(faces) == 0 {
			continue
		}

		maxZ, minZ := -10000.0, 10000.0
		maxY, minY := -10000.0, 10000.0
		maxX, minX := -10000.0, 10000.0

		for _, fID := range faces {
			nx, ny, nz := m.Normal(fID)

			ofZ := 1.0 - math.Abs(nx*stackOrientation[0]+ny*stackOrientation[1]+nz*stackOrientation[2])
			ofY := 1.0 - math.Abs(ny)
			ofX := 1.0 - math.Abs(nx)

			if ofZ > maxZ {
				maxZ = ofZ
			}
			if ofZ < minZ {
				minZ = ofZ
			}
			if ofY > maxY {
				maxY = ofY
			}
			if ofY < minY {
				minY = ofY
			}
			if ofX > maxX {
				maxX = ofX
			}
			if ofX < minX {
				minX = ofX
			}

			if math.Abs(maxZ-minZ) >= t || math.Abs(maxY-minY) >= t || math.Abs(maxX-minX) >= t {
				output = append(output, vID)
				break
			}
		}
	}
	return output
}

// GetNearVerticesTo performs a breadth-first search outward from vID over
// the face adjacency graph, returning every vertex within Euclidean
// distance dmax. A vertex is marked visited (and so never reconsidered)
// the first time it is encountered regardless of distance, but it is only
// appended to the result and enqueued for further expansion when it
// passes the distance test — so the frontier never expands past dmax.
func (m *Mesh[V, I]) GetNearVerticesTo(vID int, dmax float64) []int {
	var near []int
	visited := map[int]bool{vID: true}
	queue := []int{vID}

	xi, yi, zi := m.Vertex(vID)
	dmaxSq := dmax * dmax

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, fID := range m.adjacency[current] {
			for i := 1; i < 4; i++ {
				vj := int(m.faces.At(fID, i))
				if visited[vj] {
					continue
				}
				visited[vj] = true

				xj, yj, zj := m.Vertex(vj)
				dx, dy, dz := xi-xj, yi-yj, zi-zj
				distSq := dx*dx + dy*dy + dz*dz
				if distSq <= dmaxSq {
					near = append(near, vj)
					queue = append(queue, vj)
				}
			}
		}
	}
	return near
}

// CalcArtifactsWeight computes a per-vertex smoothing-strength weight in
// [bmin, 1]: every vertex starts at bmin, each staircase vertex is pinned
// to 1, and every vertex within tmax of a staircase vertex is raised
// (monotonically, via max) toward 1 as its distance to the nearest
// staircase vertex shrinks.
//
// Each worker shard of the staircase list accumulates into its own private
// copy of the weight field rather than touching the shared one: BFS radii
// vary a lot between staircase vertices, so per-key locking on a shared
// array would otherwise serialize workers against each other on every
// write, not just at merge time. Each private copy is padded to a whole
// number of cache lines (native.CacheLineBytes) so that two shards' buffers
// never share a line even if the allocator happens to place them back to
// back, then the shards are merged into the final weights with one
// elementwise max pass per shard (§5).
func (m *Mesh[V, I]) CalcArtifactsWeight(pool *workerpool.Pool, staircase []int, tmax, bmin float64) []float64 {
	nv := m.NumVertices()
	weights := make([]float64, nv)
	for i := range weights {
		weights[i] = bmin
	}
	if len(staircase) == 0 {
		return weights
	}

	floatsPerLine := native.CacheLineBytes() / 8
	if floatsPerLine < 1 {
		floatsPerLine = 1
	}
	padded := nv
	if rem := padded % floatsPerLine; rem != 0 {
		padded += floatsPerLine - rem
	}

	var mu sync.Mutex
	pool.ParallelFor(len(staircase), func(start, end int) {
		local := make([]float64, padded)
		for i := 0; i < nv; i++ {
			local[i] = bmin
		}

		for idx := start; idx < end; idx++ {
			viID := staircase[idx]
			xi, yi, zi := m.Vertex(viID)
			near := m.GetNearVerticesTo(viID, tmax)

			local[viID] = 1.0

			for _, vjID := range near {
				xj, yj, zj := m.Vertex(vjID)
				dx, dy, dz := xi-xj, yi-yj, zi-zj
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				value := (1.0-d/tmax)*(1.0-bmin) + bmin
				if value > local[vjID] {
					local[vjID] = value
				}
			}
		}

		mu.Lock()
		for i := 0; i < nv; i++ {
			if local[i] > weights[i] {
				weights[i] = local[i]
			}
		}
		mu.Unlock()
	})
	return weights
}

// calcD computes the Laplacian displacement vector for vertex vID, the mean
// of p_v − p_vj over its neighbors vj: border vertices average over their
// border neighbors only, interior vertices over all ring-1 neighbors.
func (m *Mesh[V, I]) calcD(vID int) (dx, dy, dz float64) {
	xi, yi, zi := m.Vertex(vID)
	border := m.IsBorder(vID)

	n := 0.0
	for vj := range m.Ring1(vID) {
		if border && !m.IsBorder(vj) {
			continue
		}
		xj, yj, zj := m.Vertex(vj)
		dx += xi - xj
		dy += yi - yj
		dz += zi - zj
		n++
	}
	if n > 0 {
		dx, dy, dz = dx/n, dy/n, dz/n
	}
	return dx, dy, dz
}

// TaubinSmooth applies n iterations of λ|μ bilaplacian smoothing, scaling
// each vertex's displacement at every half-step by its per-vertex weight.
// Because calcD's displacement is p_v minus the neighbor mean, the positive
// lambda half-step moves a vertex away from its neighbor mean and the
// following negative mu half-step moves it back toward it; with |mu|
// slightly above lambda the pair damps high-frequency (staircase) noise.
// Every displacement of a half-step is computed from the positions as they
// stood before that half-step, so it is computed over the pool; positions
// are only updated once every displacement for the half-step has been read
// (§5).
func (m *Mesh[V, I]) TaubinSmooth(pool *workerpool.Pool, weights []float64, lambda, mu float64, steps int) {
	nv := m.NumVertices()
	type displacement struct{ dx, dy, dz float64 }
	d := make([]displacement, nv)
	const displacementBytes = 24 // 3 float64

	applyHalfStep := func(factor float64) {
		// Shards write contiguous, non-overlapping ranges of d; aligning
		// shard boundaries to cache lines keeps two workers from bouncing
		// the same line back and forth at the boundary between them.
		pool.ParallelForSized(nv, displacementBytes, func(start, end int) {
			for i := start; i < end; i++ {
				dx, dy, dz := m.calcD(i)
				d[i] = displacement{dx, dy, dz}
			}
		})
		for i := 0; i < nv; i++ {
			x, y, z := m.Vertex(i)
			w := weights[i] * factor
			m.setVertex(i, x+w*d[i].dx, y+w*d[i].dy, z+w*d[i].dz)
		}
	}

	for s := 0; s < steps; s++ {
		applyHalfStep(lambda)
		applyHalfStep(mu)
	}
}

// CASmoothing runs the full context-aware smoothing pipeline (§4.7):
// detect staircase vertices along the z stack axis, derive a per-vertex
// weight field from their proximity, and smooth with the standard
// Taubin λ=0.5/μ=-0.53 factors.
func (m *Mesh[V, I]) CASmoothing(pool *workerpool.Pool, t, tmax, bmin float64, nIters int) {
	staircase := m.FindStaircaseArtifacts(StackOrientation, t)
	weights := m.CalcArtifactsWeight(pool, staircase, tmax, bmin)
	m.TaubinSmooth(pool, weights, 0.5, -0.53, nIters)
}
