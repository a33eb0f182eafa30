package halfedge

// Local topological operators. Every operator either performs its edit
// completely or rejects it with an error wrapping ErrRejected and
// leaves the mesh untouched. Rejection conditions are therefore
// evaluated from reads only, before the first pointer is rewired; the
// one operator that cannot stage its checks that way, CollapseFace,
// works on the live mesh and restores a snapshot on failure.

// CollapseEdge merges the two endpoints of e into a single vertex
// placed at the edge midpoint. Incident triangles degenerate and are
// spliced out; larger faces lose one side. Returns the surviving
// vertex.
//
// The collapse is rejected when it would break manifoldness: when e or
// either endpoint lies on a boundary, when the two sides of e are the
// same face, when the endpoints share a neighbor that is not the apex
// of an incident triangle, when both incident triangles share their
// apex, or when the result would have fewer than three edges.
func (m *Mesh) CollapseEdge(e EdgeRef) (VertexRef, error) {
	h := m.edge(e).he
	t := m.twin(h)
	v1, v2 := m.origin(h), m.origin(t)
	f1, f2 := m.faceOf(h), m.faceOf(t)

	if m.OnBoundary(e) || m.VertexOnBoundary(v1) || m.VertexOnBoundary(v2) {
		return VertexRef{}, rejectf("collapse of edge %d would cross a boundary", e.ID())
	}
	if f1 == f2 {
		return VertexRef{}, rejectf("edge %d has the same face on both sides", e.ID())
	}

	hn, hp := m.next(h), m.prev(h)
	tn, tp := m.next(t), m.prev(t)
	tri1 := m.FaceDegree(f1) == 3
	tri2 := m.FaceDegree(f2) == 3
	apexC := m.origin(hp) // only meaningful when tri1
	apexD := m.origin(tp) // only meaningful when tri2

	if tri1 && tri2 && apexC == apexD {
		return VertexRef{}, rejectf("triangles on both sides of edge %d share their apex", e.ID())
	}

	// Link condition: any further shared neighbor of the endpoints
	// would become a doubled edge after the merge.
	allowed := make(map[VertexRef]bool, 2)
	if tri1 {
		allowed[apexC] = true
	}
	if tri2 {
		allowed[apexD] = true
	}
	n1 := make(map[VertexRef]bool)
	for _, w := range m.VertexNeighbors(v1) {
		if w != v2 {
			n1[w] = true
		}
	}
	for _, w := range m.VertexNeighbors(v2) {
		if w == v1 || !n1[w] {
			continue
		}
		if !allowed[w] {
			return VertexRef{}, rejectf("endpoints of edge %d share neighbor %d", e.ID(), w.ID())
		}
	}

	removed := 1
	if tri1 {
		removed++
	}
	if tri2 {
		removed++
	}
	if m.edges.count-removed < 3 {
		return VertexRef{}, rejectf("collapsing edge %d would leave fewer than three edges", e.ID())
	}

	// All checks passed; mutate. The surviving representative of v1 is
	// read off before the splices erase anything.
	mid := m.EdgeCenter(e)
	rep := hn
	if tri1 {
		rep = m.twin(hp)
	}
	for _, o := range m.outgoing(v2) {
		m.he(o).vertex = v1
	}

	if tri1 {
		m.spliceTriangle(f1, hn, hp, apexC)
	} else {
		m.he(hp).next = hn
		m.face(f1).he = hn
	}
	if tri2 {
		m.spliceTriangle(f2, tn, tp, apexD)
	} else {
		m.he(tp).next = tn
		m.face(f2).he = tn
	}

	m.vert(v1).he = rep
	m.vert(v1).Pos = mid

	m.hes.erase(h.r, "half-edge")
	m.hes.erase(t.r, "half-edge")
	m.edges.erase(e.r, "edge")
	m.verts.erase(v2.r, "vertex")
	return v1, nil
}

// spliceTriangle removes a triangle that has degenerated to two sides
// after the collapse of its third. The two outside half-edges become
// twins across the surviving edge; the triangle, its two inner
// half-edges, and the redundant edge are erased. hn and hp are the
// surviving two sides, apex the vertex opposite the collapsed one.
func (m *Mesh) spliceTriangle(f FaceRef, hn, hp HalfedgeRef, apex VertexRef) {
	a := m.twin(hn)
	b := m.twin(hp)
	keep := m.edgeOf(hp)
	drop := m.edgeOf(hn)

	m.he(a).twin = b
	m.he(b).twin = a
	m.he(a).edge = keep
	m.edge(keep).he = a
	m.vert(apex).he = a

	m.hes.erase(hn.r, "half-edge")
	m.hes.erase(hp.r, "half-edge")
	m.edges.erase(drop.r, "edge")
	m.faces.erase(f.r, "face")
}

// FlipEdge rotates e forward within the union of its two faces: each
// endpoint moves to the next vertex around its face. Works on faces of
// any degree. Returns e, which keeps its identity.
//
// Rejected when e lies on a boundary, when both sides are the same
// face, when an endpoint has degree two (the flip would strand it), or
// when the rotated endpoints are already joined by an edge.
func (m *Mesh) FlipEdge(e EdgeRef) (EdgeRef, error) {
	if m.OnBoundary(e) {
		return EdgeRef{}, rejectf("edge %d lies on a boundary", e.ID())
	}
	h := m.edge(e).he
	t := m.twin(h)
	f1, f2 := m.faceOf(h), m.faceOf(t)
	if f1 == f2 {
		return EdgeRef{}, rejectf("edge %d has the same face on both sides", e.ID())
	}
	v1, v2 := m.origin(h), m.origin(t)
	if m.VertexDegree(v1) <= 2 || m.VertexDegree(v2) <= 2 {
		return EdgeRef{}, rejectf("flipping edge %d would strand an endpoint", e.ID())
	}

	hn, hp := m.next(h), m.prev(h)
	tn, tp := m.next(t), m.prev(t)
	u1 := m.dest(tn) // new origin of h
	u2 := m.dest(hn) // new origin of t
	for _, w := range m.VertexNeighbors(u1) {
		if w == u2 {
			return EdgeRef{}, rejectf("flipping edge %d would double edge %d-%d", e.ID(), u1.ID(), u2.ID())
		}
	}

	hnn, tnn := m.next(hn), m.next(tn)
	m.he(h).vertex = u1
	m.he(t).vertex = u2

	m.he(hp).next = tn
	m.he(tn).next = h
	m.he(h).next = hnn
	m.he(tp).next = hn
	m.he(hn).next = t
	m.he(t).next = tnn

	m.he(tn).face = f1
	m.he(hn).face = f2
	m.face(f1).he = h
	m.face(f2).he = t

	m.vert(v1).he = tn
	m.vert(v2).he = hn
	return e, nil
}

// SplitEdge bisects an edge shared by two triangles, inserting a
// midpoint vertex and connecting it to both apexes, turning the two
// triangles into four. Returns the midpoint vertex, whose Halfedge
// points along the original edge toward the original destination.
//
// Rejected when e lies on a boundary or when either incident face is
// not a triangle.
func (m *Mesh) SplitEdge(e EdgeRef) (VertexRef, error) {
	if m.OnBoundary(e) {
		return VertexRef{}, rejectf("edge %d lies on a boundary", e.ID())
	}
	h := m.edge(e).he
	t := m.twin(h)
	f1, f2 := m.faceOf(h), m.faceOf(t)
	if m.FaceDegree(f1) != 3 || m.FaceDegree(f2) != 3 {
		return VertexRef{}, rejectf("edge %d is not between two triangles", e.ID())
	}

	v2 := m.origin(t)
	hn, hp := m.next(h), m.prev(h)
	tn, tp := m.next(t), m.prev(t)
	apexC := m.origin(hp)
	apexD := m.origin(tp)
	mid := m.EdgeCenter(e)

	mv := m.NewVertex()
	m.vert(mv).Pos = mid

	e2 := m.NewEdge()
	eC := m.NewEdge()
	eD := m.NewEdge()
	h2 := m.NewHalfedge() // mv -> v2
	t2 := m.NewHalfedge() // v2 -> mv
	hc := m.NewHalfedge() // mv -> apexC
	ch := m.NewHalfedge() // apexC -> mv
	hd := m.NewHalfedge() // mv -> apexD
	dh := m.NewHalfedge() // apexD -> mv
	f3 := m.NewFace()
	f4 := m.NewFace()

	// e keeps (v1, mv): h keeps its origin, t now leaves the midpoint.
	m.he(t).vertex = mv

	set := func(he HalfedgeRef, next HalfedgeRef, twin HalfedgeRef, v VertexRef, ed EdgeRef, f FaceRef) {
		rec := m.he(he)
		rec.next, rec.twin, rec.vertex, rec.edge, rec.face = next, twin, v, ed, f
	}
	// (mv, v2, apexC) reuses f1.
	set(h2, hn, t2, mv, e2, f1)
	m.he(hn).next = ch
	m.he(hn).face = f1
	set(ch, h2, hc, apexC, eC, f1)
	// (v1, mv, apexC) is new.
	m.he(h).next = hc
	m.he(h).face = f3
	set(hc, hp, ch, mv, eC, f3)
	m.he(hp).next = h
	m.he(hp).face = f3
	// (mv, v1, apexD) reuses f2.
	m.he(t).next = tn
	m.he(t).face = f2
	m.he(tn).next = dh
	m.he(tn).face = f2
	set(dh, t, hd, apexD, eD, f2)
	// (mv, apexD, v2) is new.
	set(hd, tp, dh, mv, eD, f4)
	m.he(tp).next = t2
	m.he(tp).face = f4
	set(t2, hd, h2, v2, e2, f4)

	m.edge(e2).he = h2
	m.edge(eC).he = hc
	m.edge(eD).he = hd
	m.face(f1).he = h2
	m.face(f2).he = t
	m.face(f3).he = h
	m.face(f4).he = hd

	m.vert(mv).he = h2
	m.vert(v2).he = t2
	return mv, nil
}

// EraseVertex removes an interior vertex together with all of its
// incident edges and faces, leaving the hole covered by one new face
// over the link polygon. Returns the new face.
//
// Rejected when the vertex touches a boundary, has degree below three,
// has the same face twice around it, or when the merged face would
// visit a vertex twice.
func (m *Mesh) EraseVertex(v VertexRef) (FaceRef, error) {
	if m.VertexOnBoundary(v) {
		return FaceRef{}, rejectf("vertex %d lies on a boundary", v.ID())
	}
	out := m.outgoing(v)
	k := len(out)
	if k < 3 {
		return FaceRef{}, rejectf("vertex %d has degree %d", v.ID(), k)
	}
	seenFace := make(map[FaceRef]bool, k)
	for _, o := range out {
		f := m.faceOf(o)
		if seenFace[f] {
			return FaceRef{}, rejectf("face %d appears twice around vertex %d", f.ID(), v.ID())
		}
		seenFace[f] = true
	}

	// For each incident face, the retained segment runs from the
	// half-edge after the outgoing spoke up to the half-edge before
	// the incoming spoke. All segment bounds are taken before any
	// pointer moves.
	first := make([]HalfedgeRef, k)
	last := make([]HalfedgeRef, k)
	for i, o := range out {
		first[i] = m.next(o)
		prevSpoke := out[(i+k-1)%k]
		last[i] = m.prev(m.twin(prevSpoke))
	}
	var cycle []HalfedgeRef
	for i := range out {
		h := first[i]
		for {
			cycle = append(cycle, h)
			if h == last[i] {
				break
			}
			h = m.next(h)
		}
	}
	seenVert := make(map[VertexRef]bool, len(cycle))
	for _, h := range cycle {
		w := m.origin(h)
		if seenVert[w] {
			return FaceRef{}, rejectf("erasing vertex %d would pinch the merged face at vertex %d", v.ID(), w.ID())
		}
		seenVert[w] = true
	}

	nf := m.NewFace()
	for i := range out {
		m.he(last[i]).next = first[(i+k-1)%k]
	}
	for _, h := range cycle {
		m.he(h).face = nf
	}
	m.face(nf).he = first[0]
	for i, o := range out {
		m.vert(m.dest(o)).he = first[i]
	}
	for _, o := range out {
		m.faces.erase(m.faceOf(o).r, "face")
		m.edges.erase(m.edgeOf(o).r, "edge")
		m.hes.erase(m.twin(o).r, "half-edge")
		m.hes.erase(o.r, "half-edge")
	}
	m.verts.erase(v.r, "vertex")
	return nf, nil
}

// EraseEdge removes an interior edge and merges its two faces into the
// face on the first side. Returns the surviving face.
//
// Rejected when e lies on a boundary, when both sides are the same
// face, or when the two faces share vertices beyond the endpoints of
// e, which would make the merged face visit a vertex twice.
func (m *Mesh) EraseEdge(e EdgeRef) (FaceRef, error) {
	if m.OnBoundary(e) {
		return FaceRef{}, rejectf("edge %d lies on a boundary", e.ID())
	}
	h := m.edge(e).he
	t := m.twin(h)
	f1, f2 := m.faceOf(h), m.faceOf(t)
	if f1 == f2 {
		return FaceRef{}, rejectf("edge %d has the same face on both sides", e.ID())
	}
	v1, v2 := m.origin(h), m.origin(t)
	in1 := make(map[VertexRef]bool)
	for _, fh := range m.faceCycle(f1) {
		in1[m.origin(fh)] = true
	}
	for _, fh := range m.faceCycle(f2) {
		w := m.origin(fh)
		if w != v1 && w != v2 && in1[w] {
			return FaceRef{}, rejectf("faces of edge %d meet again at vertex %d", e.ID(), w.ID())
		}
	}

	hn, hp := m.next(h), m.prev(h)
	tn, tp := m.next(t), m.prev(t)
	for _, fh := range m.faceCycle(f2) {
		if fh != t {
			m.he(fh).face = f1
		}
	}
	m.he(hp).next = tn
	m.he(tp).next = hn
	m.face(f1).he = hn
	if m.vert(v1).he == h {
		m.vert(v1).he = tn
	}
	if m.vert(v2).he == t {
		m.vert(v2).he = hn
	}
	m.hes.erase(h.r, "half-edge")
	m.hes.erase(t.r, "half-edge")
	m.edges.erase(e.r, "edge")
	m.faces.erase(f2.r, "face")
	return f1, nil
}

// CollapseFace contracts a whole face to a single vertex placed at the
// face centroid, by collapsing its edges one after another. Returns
// the surviving vertex.
//
// The edge collapses run on the live mesh, so failure partway through
// is undone by restoring a snapshot taken up front; callers observe
// all-or-nothing behavior. Rejected when the face is a boundary loop,
// touches a boundary, or when any constituent collapse is rejected.
func (m *Mesh) CollapseFace(f FaceRef) (VertexRef, error) {
	if m.face(f).boundary {
		return VertexRef{}, rejectf("face %d is a boundary loop", f.ID())
	}
	members := make(map[VertexRef]bool)
	for _, h := range m.faceCycle(f) {
		v := m.origin(h)
		if m.VertexOnBoundary(v) {
			return VertexRef{}, rejectf("face %d touches a boundary", f.ID())
		}
		members[v] = true
	}
	centroid := m.FaceCentroid(f)

	snapshot := m.Clone()
	restore := func() { *m = *snapshot }

	for len(members) > 1 {
		var picked EdgeRef
		var from, to VertexRef
		for v := range members {
			for _, pe := range m.VertexEdges(v) {
				a, b := m.EdgeVertices(pe)
				if members[a] && members[b] {
					picked, from, to = pe, a, b
					break
				}
			}
			if !picked.IsNil() {
				break
			}
		}
		if picked.IsNil() {
			restore()
			return VertexRef{}, rejectf("face %d vertices are no longer connected", f.ID())
		}
		nv, err := m.CollapseEdge(picked)
		if err != nil {
			restore()
			return VertexRef{}, rejectf("face %d: %v", f.ID(), err)
		}
		delete(members, from)
		delete(members, to)
		members[nv] = true
	}
	var survivor VertexRef
	for v := range members {
		survivor = v
	}
	m.vert(survivor).Pos = centroid
	return survivor, nil
}
