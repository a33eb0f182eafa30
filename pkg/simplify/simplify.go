// Package simplify reduces triangle meshes with quadric error metrics:
// each collapse is the one that currently does the least damage to the
// surface, measured against the planes of the original faces.
package simplify

import (
	"errors"
	"fmt"

	"github.com/chazu/burl/pkg/halfedge"
)

const targetRatio = 0.75

var errNotTriangular = errors.New("mesh has a non-triangular face")

// Simplify collapses the cheapest edges of a triangle mesh until the
// edge count drops to three quarters of where it started, or no
// further collapse is possible. Merged vertices are placed at the
// point minimizing the summed quadric error of their neighborhood.
// Boundary edges never collapse, so open meshes keep their rims.
func Simplify(m *halfedge.Mesh) error {
	for _, f := range m.Faces() {
		if m.FaceDegree(f) != 3 {
			return fmt.Errorf("simplify: %w", errNotTriangular)
		}
	}

	target := int(float64(m.NumEdges()) * targetRatio)
	if target < 3 {
		target = 3
	}
	if m.NumEdges() <= target {
		return nil
	}

	// Vertex quadrics sum the plane quadrics of the incident faces.
	vq := make(map[halfedge.VertexRef]Quadric, m.NumVertices())
	for _, f := range m.Faces() {
		n := m.FaceNormal(f)
		h := m.Face(f).Halfedge()
		p := m.Vert(m.Halfedge(h).Origin()).Pos
		kf := PlaneQuadric(n, -n.Dot(p))
		for _, fh := range m.FaceHalfedges(f) {
			v := m.Halfedge(fh).Origin()
			vq[v] = vq[v].Add(kf)
		}
	}

	queue := newRecordHeap()
	for _, e := range m.Edges() {
		queue.insert(makeRecord(m, vq, e))
	}

	for m.NumEdges() > target {
		rec := queue.popBest()
		if rec == nil {
			break
		}
		if !m.EdgeAlive(rec.edge) {
			continue
		}
		v1, v2 := m.EdgeVertices(rec.edge)
		merged := vq[v1].Add(vq[v2])

		// Every candidate touching either endpoint goes stale now;
		// survivors are re-queued after the collapse settles.
		touched := make(map[halfedge.EdgeRef]bool)
		for _, v := range []halfedge.VertexRef{v1, v2} {
			for _, ie := range m.VertexEdges(v) {
				touched[ie] = true
				queue.remove(ie)
			}
		}

		nv, err := m.CollapseEdge(rec.edge)
		if errors.Is(err, halfedge.ErrRejected) {
			for ie := range touched {
				if ie != rec.edge {
					queue.insert(makeRecord(m, vq, ie))
				}
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("simplify: %w", err)
		}

		m.Vert(nv).Pos = rec.optimal
		delete(vq, v1)
		delete(vq, v2)
		vq[nv] = merged
		for _, ie := range m.VertexEdges(nv) {
			queue.insert(makeRecord(m, vq, ie))
		}
	}
	return m.Validate()
}

// makeRecord prices the collapse of e: merge the endpoint quadrics,
// place the merged vertex at the quadric minimum or, when the solve is
// degenerate, at the midpoint, and cost the placement.
func makeRecord(m *halfedge.Mesh, vq map[halfedge.VertexRef]Quadric, e halfedge.EdgeRef) *record {
	v1, v2 := m.EdgeVertices(e)
	q := vq[v1].Add(vq[v2])
	opt, ok := q.Optimal()
	if !ok {
		opt = m.EdgeCenter(e)
	}
	return &record{edge: e, optimal: opt, cost: q.Error(opt)}
}
