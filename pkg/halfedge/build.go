package halfedge

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FromPolygons builds a half-edge mesh from an indexed polygon list.
// Every face must have at least three distinct vertex indices, each
// directed edge may appear at most once (shared edges must be wound in
// opposite directions), and each vertex must carry a single fan of
// faces. Holes are closed with virtual boundary-loop faces, so Twin is
// total on the result. Input that breaks any of these rules returns a
// *TopologyError.
func FromPolygons(positions []v3.Vec, faces [][]int) (*Mesh, error) {
	m := New()
	if err := m.build(positions, faces); err != nil {
		return nil, err
	}
	return m, nil
}

// Rebuild replaces the mesh contents from an indexed polygon list.
// Every previously issued ref is invalidated. The input is subject to
// the same rules as FromPolygons; on error the mesh is unchanged.
func (m *Mesh) Rebuild(positions []v3.Vec, faces [][]int) error {
	fresh := New()
	fresh.FlipOrientation = m.FlipOrientation
	if err := fresh.build(positions, faces); err != nil {
		return err
	}
	*m = *fresh
	return nil
}

func (m *Mesh) build(positions []v3.Vec, faces [][]int) error {
	verts := make([]VertexRef, len(positions))
	for i, p := range positions {
		v := m.NewVertex()
		m.vert(v).Pos = p
		verts[i] = v
	}

	type dir struct{ a, b int }
	out := make(map[dir]HalfedgeRef)
	var order []dir // insertion order, keeps edge allocation deterministic

	for fi, idx := range faces {
		if len(idx) < 3 {
			return &TopologyError{Reason: fmt.Sprintf("face %d has %d sides", fi, len(idx))}
		}
		seen := make(map[int]bool, len(idx))
		for _, vi := range idx {
			if vi < 0 || vi >= len(positions) {
				return &TopologyError{Reason: fmt.Sprintf("face %d references vertex %d of %d", fi, vi, len(positions))}
			}
			if seen[vi] {
				return &TopologyError{Reason: fmt.Sprintf("face %d repeats vertex %d", fi, vi)}
			}
			seen[vi] = true
		}

		f := m.NewFace()
		hs := make([]HalfedgeRef, len(idx))
		for i := range idx {
			hs[i] = m.NewHalfedge()
		}
		for i, vi := range idx {
			d := dir{a: vi, b: idx[(i+1)%len(idx)]}
			if _, dup := out[d]; dup {
				return &TopologyError{Reason: fmt.Sprintf("directed edge %d->%d appears twice", d.a, d.b)}
			}
			out[d] = hs[i]
			order = append(order, d)
			rec := m.he(hs[i])
			rec.next = hs[(i+1)%len(idx)]
			rec.vertex = verts[vi]
			rec.face = f
			m.vert(verts[vi]).he = hs[i]
		}
		m.face(f).he = hs[0]
	}

	// Pair interior twins and collect the unpaired rim.
	boundaryOut := make(map[int]HalfedgeRef)
	var rim []int
	for _, d := range order {
		h := out[d]
		if t, ok := out[dir{a: d.b, b: d.a}]; ok {
			if d.a < d.b {
				e := m.NewEdge()
				m.edge(e).he = h
				m.he(h).twin = t
				m.he(t).twin = h
				m.he(h).edge = e
				m.he(t).edge = e
			}
			continue
		}
		// The boundary twin of h runs d.b -> d.a.
		if _, dup := boundaryOut[d.b]; dup {
			return &TopologyError{Reason: fmt.Sprintf("vertex %d lies on more than one boundary fan", d.b)}
		}
		e := m.NewEdge()
		bh := m.NewHalfedge()
		m.edge(e).he = h
		m.he(h).twin = bh
		m.he(h).edge = e
		rec := m.he(bh)
		rec.twin = h
		rec.edge = e
		rec.vertex = verts[d.b]
		boundaryOut[d.b] = bh
		rim = append(rim, d.b)
	}

	// Chain the rim into boundary loops. The next of a boundary
	// half-edge is the boundary half-edge leaving its destination.
	vertIndex := make(map[VertexRef]int, len(verts))
	for i, v := range verts {
		vertIndex[v] = i
	}
	done := make(map[int]bool, len(boundaryOut))
	for _, vi := range rim {
		if done[vi] {
			continue
		}
		start := boundaryOut[vi]
		f := m.NewFace()
		m.face(f).boundary = true
		m.face(f).he = start
		m.loops++
		h := start
		for {
			done[vertIndex[m.origin(h)]] = true
			di := vertIndex[m.dest(h)]
			n, ok := boundaryOut[di]
			if !ok {
				return &TopologyError{Reason: fmt.Sprintf("boundary through vertex %d does not close", di)}
			}
			m.he(h).next = n
			m.he(h).face = f
			h = n
			if h == start {
				break
			}
		}
	}

	// A vertex whose rotation fan misses incident half-edges carries
	// two fans glued at a point.
	degree := make(map[VertexRef]int)
	m.hes.each(func(_ ref, rec *Halfedge) {
		degree[rec.vertex]++
	})
	for v, want := range degree {
		if got := len(m.outgoing(v)); got != want {
			return &TopologyError{Reason: fmt.Sprintf("vertex %d joins two surface fans", v.ID())}
		}
	}
	return nil
}

// Polygons exports the mesh as an indexed polygon list. Boundary loops
// are skipped. Vertex order follows the live snapshot order, so two
// meshes with identical history export identically.
func (m *Mesh) Polygons() ([]v3.Vec, [][]int) {
	vrefs := m.Vertices()
	index := make(map[VertexRef]int, len(vrefs))
	positions := make([]v3.Vec, len(vrefs))
	for i, v := range vrefs {
		index[v] = i
		positions[i] = m.vert(v).Pos
	}
	faces := make([][]int, 0, m.NumFaces())
	for _, f := range m.Faces() {
		cycle := m.faceCycle(f)
		idx := make([]int, len(cycle))
		for i, h := range cycle {
			idx[i] = index[m.origin(h)]
		}
		faces = append(faces, idx)
	}
	return positions, faces
}
