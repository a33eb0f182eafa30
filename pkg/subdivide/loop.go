package subdivide

import (
	"errors"
	"fmt"

	"github.com/chazu/burl/pkg/halfedge"
)

var (
	errOpenMesh      = errors.New("mesh has a boundary")
	errNotTriangular = errors.New("mesh has a non-triangular face")
)

// Loop refines a closed triangle mesh with Loop's subdivision rules:
// every edge is split at a weighted midpoint, the connecting edges are
// flipped to restore the four-to-one triangle pattern, and the old
// vertices relax toward their neighbors.
func Loop(m *halfedge.Mesh) error {
	if m.HasBoundary() {
		return fmt.Errorf("loop subdivision: %w", errOpenMesh)
	}
	for _, f := range m.Faces() {
		if m.FaceDegree(f) != 3 {
			return fmt.Errorf("loop subdivision: %w", errNotTriangular)
		}
	}

	// Stage the smoothing rules on the original mesh. Old vertices
	// move to (1-n*u)*P + u*sum(neighbors); edge midpoints carry
	// 3/8 of their endpoints and 1/8 of the opposing apexes.
	for _, v := range m.Vertices() {
		neighbors := m.VertexNeighbors(v)
		n := float64(len(neighbors))
		u := 3.0 / (8 * n)
		if len(neighbors) == 3 {
			u = 3.0 / 16
		}
		p := m.Vert(v).Pos.MulScalar(1 - n*u)
		for _, w := range neighbors {
			p = p.Add(m.Vert(w).Pos.MulScalar(u))
		}
		m.Vert(v).NewPos = p
		m.Vert(v).IsNew = false
	}
	for _, e := range m.Edges() {
		h := m.Edge(e).Halfedge()
		rec := m.Halfedge(h)
		twin := m.Halfedge(rec.Twin())
		a := m.Vert(rec.Origin()).Pos
		b := m.Vert(twin.Origin()).Pos
		c := m.Vert(apex(m, h)).Pos
		d := m.Vert(apex(m, rec.Twin())).Pos
		m.Edge(e).NewPos = a.Add(b).MulScalar(3.0 / 8).Add(c.Add(d).MulScalar(1.0 / 8))
		m.Edge(e).IsNew = false
	}

	// Split every original edge. The midpoint inherits the staged
	// edge position; of the four edges around it, the two connecting
	// to the apexes are the new diagonals to flip.
	for _, e := range m.Edges() {
		target := m.Edge(e).NewPos
		mv, err := m.SplitEdge(e)
		if err != nil {
			return fmt.Errorf("loop subdivision: split: %w", err)
		}
		m.Vert(mv).NewPos = target
		m.Vert(mv).IsNew = true
		spokes := m.VertexHalfedges(mv)
		for i, s := range spokes {
			if i%2 == 1 {
				m.Edge(m.Halfedge(s).Edge()).IsNew = true
			}
		}
	}

	// Flip the diagonals that join an old vertex to a midpoint.
	for _, e := range m.Edges() {
		if !m.Edge(e).IsNew {
			continue
		}
		h := m.Edge(e).Halfedge()
		a := m.Halfedge(h).Origin()
		b := m.Halfedge(m.Halfedge(h).Twin()).Origin()
		if m.Vert(a).IsNew == m.Vert(b).IsNew {
			continue
		}
		if _, err := m.FlipEdge(e); err != nil {
			return fmt.Errorf("loop subdivision: flip: %w", err)
		}
	}

	for _, v := range m.Vertices() {
		rec := m.Vert(v)
		rec.Pos = rec.NewPos
	}
	return m.Validate()
}

// apex returns the vertex opposite h in its triangle.
func apex(m *halfedge.Mesh, h halfedge.HalfedgeRef) halfedge.VertexRef {
	nn := m.Halfedge(m.Halfedge(h).Next()).Next()
	return m.Halfedge(nn).Origin()
}
