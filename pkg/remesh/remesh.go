// Package remesh improves triangle quality without changing the shape:
// isotropic remeshing drives edge lengths toward their mean, vertex
// degrees toward their ideal, and vertex spacing toward uniform.
package remesh

import (
	"errors"
	"fmt"

	"github.com/chazu/burl/pkg/halfedge"
)

const (
	iterations    = 5
	splitRatio    = 4.0 / 3
	collapseRatio = 4.0 / 5
	smoothWeight  = 0.5
)

var errNotTriangular = errors.New("mesh has a non-triangular face")

// Isotropic remeshes a triangle mesh: long edges are split, short
// edges collapsed, edges flipped where that evens out vertex degrees,
// and vertices smoothed tangentially toward their neighbor centroid.
// Individual splits, collapses and flips that the operators reject
// are skipped, which leaves boundary edges and vertices in place on
// open meshes.
func Isotropic(m *halfedge.Mesh) error {
	for _, f := range m.Faces() {
		if m.FaceDegree(f) != 3 {
			return fmt.Errorf("isotropic remesh: %w", errNotTriangular)
		}
	}

	for i := 0; i < iterations; i++ {
		mean := meanEdgeLength(m)
		splitLongEdges(m, mean*splitRatio)
		collapseShortEdges(m, mean*collapseRatio, mean*splitRatio)
		flipForDegree(m)
		smooth(m)
		if err := m.Validate(); err != nil {
			return fmt.Errorf("isotropic remesh: iteration %d: %w", i, err)
		}
	}
	return nil
}

func meanEdgeLength(m *halfedge.Mesh) float64 {
	var total float64
	edges := m.Edges()
	for _, e := range edges {
		total += m.EdgeLength(e)
	}
	return total / float64(len(edges))
}

func splitLongEdges(m *halfedge.Mesh, above float64) {
	for _, e := range m.Edges() {
		if !m.EdgeAlive(e) || m.EdgeLength(e) <= above {
			continue
		}
		// Splitting never lengthens any edge, so rejections here can
		// only come from topology, not from this pass's own work.
		m.SplitEdge(e)
	}
}

func collapseShortEdges(m *halfedge.Mesh, below, above float64) {
	for _, e := range m.Edges() {
		if !m.EdgeAlive(e) || m.EdgeLength(e) >= below {
			continue
		}
		if wouldOverstretch(m, e, above) {
			continue
		}
		if _, err := m.CollapseEdge(e); err != nil && !errors.Is(err, halfedge.ErrRejected) {
			// Rejections are expected; anything else is corruption
			// and will surface in Validate.
			return
		}
	}
}

// wouldOverstretch reports whether collapsing e to its midpoint would
// create an edge longer than the split threshold, which would make the
// split and collapse passes fight each other.
func wouldOverstretch(m *halfedge.Mesh, e halfedge.EdgeRef, above float64) bool {
	a, b := m.EdgeVertices(e)
	mid := m.EdgeCenter(e)
	for _, v := range []halfedge.VertexRef{a, b} {
		for _, w := range m.VertexNeighbors(v) {
			if w == a || w == b {
				continue
			}
			if m.Vert(w).Pos.Sub(mid).Length() > above {
				return true
			}
		}
	}
	return false
}

func flipForDegree(m *halfedge.Mesh) {
	for _, e := range m.Edges() {
		if !m.EdgeAlive(e) || m.OnBoundary(e) {
			continue
		}
		h := m.Edge(e).Halfedge()
		t := m.Halfedge(h).Twin()
		a1 := m.Halfedge(h).Origin()
		a2 := m.Halfedge(t).Origin()
		b1 := apex(m, h)
		b2 := apex(m, t)

		before := deviation(m, a1, 0) + deviation(m, a2, 0) +
			deviation(m, b1, 0) + deviation(m, b2, 0)
		after := deviation(m, a1, -1) + deviation(m, a2, -1) +
			deviation(m, b1, 1) + deviation(m, b2, 1)
		if after < before {
			m.FlipEdge(e)
		}
	}
}

// deviation measures how far a vertex degree, adjusted by delta, sits
// from the ideal: six for interior vertices, four on the boundary.
func deviation(m *halfedge.Mesh, v halfedge.VertexRef, delta int) int {
	ideal := 6
	if m.VertexOnBoundary(v) {
		ideal = 4
	}
	d := m.VertexDegree(v) + delta - ideal
	if d < 0 {
		return -d
	}
	return d
}

// smooth moves every vertex a fraction of the way toward its neighbor
// centroid, with the motion projected into the tangent plane so the
// shape is preserved. Boundary vertices stay put. Staged through
// NewPos so each vertex sees its neighbors' old positions.
func smooth(m *halfedge.Mesh) {
	verts := m.Vertices()
	for _, v := range verts {
		if m.VertexOnBoundary(v) {
			m.Vert(v).NewPos = m.Vert(v).Pos
			continue
		}
		neighbors := m.VertexNeighbors(v)
		centroid := m.Vert(neighbors[0]).Pos
		for _, w := range neighbors[1:] {
			centroid = centroid.Add(m.Vert(w).Pos)
		}
		centroid = centroid.DivScalar(float64(len(neighbors)))

		p := m.Vert(v).Pos
		n := m.VertexNormal(v)
		delta := centroid.Sub(p)
		delta = delta.Sub(n.MulScalar(n.Dot(delta)))
		m.Vert(v).NewPos = p.Add(delta.MulScalar(smoothWeight))
	}
	for _, v := range verts {
		rec := m.Vert(v)
		rec.Pos = rec.NewPos
	}
}

func apex(m *halfedge.Mesh, h halfedge.HalfedgeRef) halfedge.VertexRef {
	nn := m.Halfedge(m.Halfedge(h).Next()).Next()
	return m.Halfedge(nn).Origin()
}
