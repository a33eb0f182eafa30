package halfedge

import "fmt"

// Validate checks the structural invariants of the mesh and, when they
// all hold, reclaims every soft-deleted slot so its storage can be
// reused. On failure it returns an *InvariantError carrying every
// finding and leaves the pools untouched.
//
// The checks are deliberately tolerant of corruption: they never chase
// a reference without first confirming it is live, and every cycle
// walk is bounded by the live element count.
func (m *Mesh) Validate() error {
	var bad []string
	badf := func(format string, args ...any) {
		bad = append(bad, fmt.Sprintf(format, args...))
	}

	// Twin symmetry and edge agreement.
	m.hes.each(func(r ref, rec *Halfedge) {
		h := HalfedgeRef{r}
		switch {
		case rec.twin.IsNil():
			badf("half-edge %d has no twin", h.ID())
		case !m.hes.alive(rec.twin.r):
			badf("half-edge %d twins a dead half-edge", h.ID())
		case rec.twin == h:
			badf("half-edge %d is its own twin", h.ID())
		default:
			t := m.he(rec.twin)
			if t.twin != h {
				badf("half-edge %d twin is not mutual", h.ID())
			}
			if t.edge != rec.edge {
				badf("half-edge %d and its twin disagree on their edge", h.ID())
			}
			if !rec.vertex.IsNil() && !t.vertex.IsNil() && rec.vertex == t.vertex {
				badf("half-edge %d has identical endpoints", h.ID())
			}
		}
		if rec.vertex.IsNil() || !m.verts.alive(rec.vertex.r) {
			badf("half-edge %d has a dead origin vertex", h.ID())
		}
		if rec.edge.IsNil() || !m.edges.alive(rec.edge.r) {
			badf("half-edge %d has a dead edge", h.ID())
		}
		if rec.face.IsNil() || !m.faces.alive(rec.face.r) {
			badf("half-edge %d has a dead face", h.ID())
		}
		if rec.next.IsNil() || !m.hes.alive(rec.next.r) {
			badf("half-edge %d has a dead next", h.ID())
		}
	})
	if len(bad) > 0 {
		// Reference-level damage makes the walks below unreliable.
		return &InvariantError{Violations: bad}
	}

	// Edge representatives.
	m.edges.each(func(r ref, rec *Edge) {
		e := EdgeRef{r}
		if rec.he.IsNil() || !m.hes.alive(rec.he.r) {
			badf("edge %d has a dead representative half-edge", e.ID())
		} else if m.edgeOf(rec.he) != e {
			badf("edge %d representative belongs to another edge", e.ID())
		}
	})

	// Face cycles: closed, owned, and at least triangular for interior
	// faces. Every half-edge must appear in exactly one face cycle.
	covered := make(map[HalfedgeRef]bool, m.hes.count)
	m.faces.each(func(r ref, rec *Face) {
		f := FaceRef{r}
		if rec.he.IsNil() || !m.hes.alive(rec.he.r) {
			badf("face %d has a dead representative half-edge", f.ID())
			return
		}
		h := rec.he
		n := 0
		for limit := m.hes.count; ; limit-- {
			if limit < 0 {
				badf("face %d cycle does not close", f.ID())
				return
			}
			if m.faceOf(h) != f {
				badf("face %d cycle strays onto half-edge %d of another face", f.ID(), h.ID())
				return
			}
			if covered[h] {
				badf("half-edge %d appears in two face cycles", h.ID())
				return
			}
			covered[h] = true
			n++
			h = m.next(h)
			if h == rec.he {
				break
			}
		}
		if !rec.boundary && n < 3 {
			badf("face %d has only %d sides", f.ID(), n)
		}
	})
	if len(covered) != m.hes.count {
		badf("%d half-edges belong to no face cycle", m.hes.count-len(covered))
	}

	// Vertex fans: the representative must leave the vertex, and the
	// rotation fan from it must reach every half-edge that claims the
	// vertex as origin.
	claims := make(map[VertexRef]int, m.verts.count)
	m.hes.each(func(_ ref, rec *Halfedge) {
		claims[rec.vertex]++
	})
	m.verts.each(func(r ref, rec *Vertex) {
		v := VertexRef{r}
		if rec.he.IsNil() || !m.hes.alive(rec.he.r) {
			badf("vertex %d has a dead representative half-edge", v.ID())
			return
		}
		if m.origin(rec.he) != v {
			badf("vertex %d representative leaves another vertex", v.ID())
			return
		}
		n := 0
		h := rec.he
		for limit := m.hes.count; ; limit-- {
			if limit < 0 {
				badf("vertex %d fan does not close", v.ID())
				return
			}
			if m.origin(h) != v {
				badf("vertex %d fan strays onto half-edge %d of another vertex", v.ID(), h.ID())
				return
			}
			n++
			h = m.next(m.twin(h))
			if h == rec.he {
				break
			}
		}
		if n != claims[v] {
			badf("vertex %d fan reaches %d of %d incident half-edges", v.ID(), n, claims[v])
		}
	})

	// Boundary bookkeeping.
	loops := 0
	m.faces.each(func(_ ref, rec *Face) {
		if rec.boundary {
			loops++
		}
	})
	if loops != m.loops {
		badf("boundary loop count is %d, counter says %d", loops, m.loops)
	}

	if len(bad) > 0 {
		return &InvariantError{Violations: bad}
	}

	m.verts.compact()
	m.edges.compact()
	m.faces.compact()
	m.hes.compact()
	return nil
}
