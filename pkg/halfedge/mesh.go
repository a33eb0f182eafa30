package halfedge

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a half-edge mesh store. It owns every vertex, edge, face and
// half-edge record, hands out generation-counted refs to them, and is
// mutated only by the operators and build routines in this package.
//
// A Mesh belongs to one goroutine; see the package documentation.
type Mesh struct {
	verts pool[Vertex]
	edges pool[Edge]
	faces pool[Face]
	hes   pool[Halfedge]

	// loops is the number of live boundary-loop faces.
	loops int

	// FlipOrientation marks a mesh whose winding has been mirrored by
	// the caller (for example by a negative scale). BevelFacePositions
	// uses it to keep the normal offset pointing outward.
	FlipOrientation bool
}

// New returns an empty mesh.
func New() *Mesh { return &Mesh{} }

// Clone returns a deep copy of the mesh sharing no state with the
// original. Refs obtained from one mesh are valid on its clones.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		verts:           m.verts.clone(),
		edges:           m.edges.clone(),
		faces:           m.faces.clone(),
		hes:             m.hes.clone(),
		loops:           m.loops,
		FlipOrientation: m.FlipOrientation,
	}
}

// NewVertex inserts a fresh vertex record and returns its ref.
func (m *Mesh) NewVertex() VertexRef { return VertexRef{m.verts.alloc()} }

// NewEdge inserts a fresh edge record and returns its ref.
func (m *Mesh) NewEdge() EdgeRef { return EdgeRef{m.edges.alloc()} }

// NewFace inserts a fresh face record and returns its ref.
func (m *Mesh) NewFace() FaceRef { return FaceRef{m.faces.alloc()} }

// NewHalfedge inserts a fresh half-edge record and returns its ref.
func (m *Mesh) NewHalfedge() HalfedgeRef { return HalfedgeRef{m.hes.alloc()} }

// Vert resolves a vertex ref. It panics on nil, stale, or soft-deleted
// refs; the record stays addressable until the next allocation reuses
// its slot (after a Validate compaction).
func (m *Mesh) Vert(v VertexRef) *Vertex { return m.verts.get(v.r, "vertex") }

// Edge resolves an edge ref. Panics on nil, stale, or soft-deleted refs.
func (m *Mesh) Edge(e EdgeRef) *Edge { return m.edges.get(e.r, "edge") }

// Face resolves a face ref. Panics on nil, stale, or soft-deleted refs.
func (m *Mesh) Face(f FaceRef) *Face { return m.faces.get(f.r, "face") }

// Halfedge resolves a half-edge ref. Panics on nil, stale, or
// soft-deleted refs.
func (m *Mesh) Halfedge(h HalfedgeRef) *Halfedge { return m.hes.get(h.r, "half-edge") }

// VertexAlive reports whether v refers to a live vertex.
func (m *Mesh) VertexAlive(v VertexRef) bool { return m.verts.alive(v.r) }

// EdgeAlive reports whether e refers to a live edge.
func (m *Mesh) EdgeAlive(e EdgeRef) bool { return m.edges.alive(e.r) }

// FaceAlive reports whether f refers to a live face.
func (m *Mesh) FaceAlive(f FaceRef) bool { return m.faces.alive(f.r) }

// HalfedgeAlive reports whether h refers to a live half-edge.
func (m *Mesh) HalfedgeAlive(h HalfedgeRef) bool { return m.hes.alive(h.r) }

// NumVertices returns the number of live vertices.
func (m *Mesh) NumVertices() int { return m.verts.count }

// NumEdges returns the number of live edges.
func (m *Mesh) NumEdges() int { return m.edges.count }

// NumFaces returns the number of live faces, excluding boundary loops.
func (m *Mesh) NumFaces() int { return m.faces.count - m.loops }

// NumHalfedges returns the number of live half-edges, including those
// of boundary loops.
func (m *Mesh) NumHalfedges() int { return m.hes.count }

// HasBoundary reports whether the mesh has any boundary loop.
func (m *Mesh) HasBoundary() bool { return m.loops > 0 }

// Vertices returns a snapshot of all live vertex refs.
func (m *Mesh) Vertices() []VertexRef {
	rs := m.verts.refs()
	out := make([]VertexRef, len(rs))
	for i, r := range rs {
		out[i] = VertexRef{r}
	}
	return out
}

// Edges returns a snapshot of all live edge refs. Algorithms that
// mutate while iterating take this snapshot first and re-check
// EdgeAlive per element.
func (m *Mesh) Edges() []EdgeRef {
	rs := m.edges.refs()
	out := make([]EdgeRef, len(rs))
	for i, r := range rs {
		out[i] = EdgeRef{r}
	}
	return out
}

// Faces returns a snapshot of all live face refs, excluding boundary
// loops.
func (m *Mesh) Faces() []FaceRef {
	out := make([]FaceRef, 0, m.NumFaces())
	m.faces.each(func(r ref, f *Face) {
		if !f.boundary {
			out = append(out, FaceRef{r})
		}
	})
	return out
}

// Halfedges returns a snapshot of all live half-edge refs.
func (m *Mesh) Halfedges() []HalfedgeRef {
	rs := m.hes.refs()
	out := make([]HalfedgeRef, len(rs))
	for i, r := range rs {
		out[i] = HalfedgeRef{r}
	}
	return out
}

// Internal navigation shorthands. These resolve through get, so a walk
// that strays onto an erased element fails loudly.

func (m *Mesh) vert(v VertexRef) *Vertex     { return m.verts.get(v.r, "vertex") }
func (m *Mesh) edge(e EdgeRef) *Edge         { return m.edges.get(e.r, "edge") }
func (m *Mesh) face(f FaceRef) *Face         { return m.faces.get(f.r, "face") }
func (m *Mesh) he(h HalfedgeRef) *Halfedge   { return m.hes.get(h.r, "half-edge") }
func (m *Mesh) next(h HalfedgeRef) HalfedgeRef { return m.he(h).next }
func (m *Mesh) twin(h HalfedgeRef) HalfedgeRef { return m.he(h).twin }
func (m *Mesh) origin(h HalfedgeRef) VertexRef { return m.he(h).vertex }
func (m *Mesh) dest(h HalfedgeRef) VertexRef   { return m.he(m.he(h).twin).vertex }
func (m *Mesh) edgeOf(h HalfedgeRef) EdgeRef   { return m.he(h).edge }
func (m *Mesh) faceOf(h HalfedgeRef) FaceRef   { return m.he(h).face }

// prev walks the face cycle to the half-edge whose next is h. The walk
// is bounded by the live half-edge count; exceeding it means the cycle
// is broken, which is an invariant violation.
func (m *Mesh) prev(h HalfedgeRef) HalfedgeRef {
	p := h
	for limit := m.hes.count; ; limit-- {
		if limit < 0 {
			panic(fmt.Sprintf("halfedge: face cycle through half-edge %d does not close", h.ID()))
		}
		n := m.next(p)
		if n == h {
			return p
		}
		p = n
	}
}

// outgoing returns the outgoing half-edges of v in rotation order
// (twin-then-next), starting from the stored representative.
func (m *Mesh) outgoing(v VertexRef) []HalfedgeRef {
	start := m.vert(v).he
	var out []HalfedgeRef
	h := start
	for limit := m.hes.count; ; limit-- {
		if limit < 0 {
			panic(fmt.Sprintf("halfedge: vertex fan of vertex %d does not close", v.ID()))
		}
		out = append(out, h)
		h = m.next(m.twin(h))
		if h == start {
			return out
		}
	}
}

// faceCycle returns the half-edges of f in cycle order.
func (m *Mesh) faceCycle(f FaceRef) []HalfedgeRef {
	start := m.face(f).he
	var out []HalfedgeRef
	h := start
	for limit := m.hes.count; ; limit-- {
		if limit < 0 {
			panic(fmt.Sprintf("halfedge: face cycle of face %d does not close", f.ID()))
		}
		out = append(out, h)
		h = m.next(h)
		if h == start {
			return out
		}
	}
}

// VertexHalfedges returns the outgoing half-edges of v in rotation
// order, starting from the stored representative.
func (m *Mesh) VertexHalfedges(v VertexRef) []HalfedgeRef { return m.outgoing(v) }

// FaceHalfedges returns the half-edges of f in cycle order, starting
// from the stored representative.
func (m *Mesh) FaceHalfedges(f FaceRef) []HalfedgeRef { return m.faceCycle(f) }

// VertexDegree returns the number of edges incident to v.
func (m *Mesh) VertexDegree(v VertexRef) int { return len(m.outgoing(v)) }

// FaceDegree returns the number of half-edges in the face cycle.
func (m *Mesh) FaceDegree(f FaceRef) int { return len(m.faceCycle(f)) }

// VertexNeighbors returns the vertices adjacent to v, in rotation
// order.
func (m *Mesh) VertexNeighbors(v VertexRef) []VertexRef {
	hs := m.outgoing(v)
	out := make([]VertexRef, len(hs))
	for i, h := range hs {
		out[i] = m.dest(h)
	}
	return out
}

// VertexEdges returns the edges incident to v, in rotation order.
func (m *Mesh) VertexEdges(v VertexRef) []EdgeRef {
	hs := m.outgoing(v)
	out := make([]EdgeRef, len(hs))
	for i, h := range hs {
		out[i] = m.edgeOf(h)
	}
	return out
}

// VertexFaces returns the faces incident to v, in rotation order,
// excluding boundary loops.
func (m *Mesh) VertexFaces(v VertexRef) []FaceRef {
	var out []FaceRef
	for _, h := range m.outgoing(v) {
		f := m.faceOf(h)
		if !m.face(f).boundary {
			out = append(out, f)
		}
	}
	return out
}

// EdgeVertices returns the two endpoint vertices of e.
func (m *Mesh) EdgeVertices(e EdgeRef) (VertexRef, VertexRef) {
	h := m.edge(e).he
	return m.origin(h), m.dest(h)
}

// OnBoundary reports whether e borders a boundary loop.
func (m *Mesh) OnBoundary(e EdgeRef) bool {
	h := m.edge(e).he
	return m.face(m.faceOf(h)).boundary || m.face(m.faceOf(m.twin(h))).boundary
}

// VertexOnBoundary reports whether any face around v is a boundary
// loop.
func (m *Mesh) VertexOnBoundary(v VertexRef) bool {
	for _, h := range m.outgoing(v) {
		if m.face(m.faceOf(h)).boundary {
			return true
		}
	}
	return false
}

// EdgeCenter returns the midpoint of e.
func (m *Mesh) EdgeCenter(e EdgeRef) v3.Vec {
	a, b := m.EdgeVertices(e)
	return m.vert(a).Pos.Add(m.vert(b).Pos).MulScalar(0.5)
}

// EdgeLength returns the length of e.
func (m *Mesh) EdgeLength(e EdgeRef) float64 {
	a, b := m.EdgeVertices(e)
	return m.vert(b).Pos.Sub(m.vert(a).Pos).Length()
}

// FaceCentroid returns the arithmetic mean of the face's vertex
// positions.
func (m *Mesh) FaceCentroid(f FaceRef) v3.Vec {
	hs := m.faceCycle(f)
	var c v3.Vec
	for _, h := range hs {
		c = c.Add(m.vert(m.origin(h)).Pos)
	}
	return c.DivScalar(float64(len(hs)))
}

// FaceNormal returns the unit Newell normal of the face, or the zero
// vector for a degenerate face.
func (m *Mesh) FaceNormal(f FaceRef) v3.Vec {
	hs := m.faceCycle(f)
	pts := make([]v3.Vec, len(hs))
	for i, h := range hs {
		pts[i] = m.vert(m.origin(h)).Pos
	}
	return polygonNormal(pts)
}

// VertexNormal returns the unit vertex normal estimated from the
// incident interior faces, or the zero vector if there are none.
func (m *Mesh) VertexNormal(v VertexRef) v3.Vec {
	var n v3.Vec
	for _, f := range m.VertexFaces(v) {
		n = n.Add(m.FaceNormal(f))
	}
	l := n.Length()
	if l < epsilon {
		return v3.Vec{}
	}
	return n.DivScalar(l)
}
