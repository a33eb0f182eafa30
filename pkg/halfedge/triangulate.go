package halfedge

// TriangulateFace splits a polygon into a fan of triangles rooted at
// the origin of its representative half-edge. Triangles and boundary
// loops are left alone. Non-convex faces are fanned all the same; the
// caller owns the geometric quality of its polygons.
func (m *Mesh) TriangulateFace(f FaceRef) {
	if m.face(f).boundary {
		return
	}
	for m.FaceDegree(f) > 3 {
		h := m.face(f).he
		hn := m.next(h)
		hnn := m.next(hn)
		p := m.prev(h)

		e := m.NewEdge()
		in := m.NewHalfedge()  // closes the cut triangle
		out := m.NewHalfedge() // remains on f
		nf := m.NewFace()

		inrec := m.he(in)
		inrec.next, inrec.twin, inrec.vertex, inrec.edge, inrec.face = h, out, m.origin(hnn), e, nf
		outrec := m.he(out)
		outrec.next, outrec.twin, outrec.vertex, outrec.edge, outrec.face = hnn, in, m.origin(h), e, f
		m.edge(e).he = in

		m.he(h).face = nf
		m.he(hn).face = nf
		m.he(hn).next = in
		m.face(nf).he = h

		m.he(p).next = out
		m.face(f).he = out
	}
}

// Triangulate fans every non-triangular face of the mesh. Applying it
// twice is the same as applying it once.
func (m *Mesh) Triangulate() {
	for _, f := range m.Faces() {
		m.TriangulateFace(f)
	}
}
