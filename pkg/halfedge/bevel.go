package halfedge

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// The bevel operators split in two halves, following the usual
// interactive editing shape: the topological half inserts the new ring
// with every new vertex sitting on top of the old geometry, and the
// position half re-derives vertex placement from the saved start
// positions and the current offsets. The position half is safe to call
// repeatedly as the offsets change.

// BevelVertex replaces an interior vertex with an inset polygon, one
// new vertex per former spoke. The spokes keep their identity and now
// originate at the ring. Returns the new face; its vertices start at
// the old vertex position.
//
// Rejected when the vertex touches a boundary or has degree below
// three.
func (m *Mesh) BevelVertex(v VertexRef) (FaceRef, error) {
	if m.VertexOnBoundary(v) {
		return FaceRef{}, rejectf("vertex %d lies on a boundary", v.ID())
	}
	out := m.outgoing(v)
	k := len(out)
	if k < 3 {
		return FaceRef{}, rejectf("vertex %d has degree %d", v.ID(), k)
	}
	pos := m.vert(v).Pos

	nv := make([]VertexRef, k)
	for i := range nv {
		nv[i] = m.NewVertex()
		m.vert(nv[i]).Pos = pos
	}
	m.attachRing(out, nv)
	f := m.closeRing(out)
	m.verts.erase(v.r, "vertex")
	return f, nil
}

// BevelEdge replaces an interior edge with a polygon spanning every
// spoke of its two endpoints. Returns the new face; its vertices start
// at their spoke's former endpoint position.
//
// Rejected when the edge or an endpoint touches a boundary or when
// the ring would have fewer than three sides.
func (m *Mesh) BevelEdge(e EdgeRef) (FaceRef, error) {
	h1 := m.edge(e).he
	h2 := m.twin(h1)
	v1, v2 := m.origin(h1), m.origin(h2)
	if m.OnBoundary(e) || m.VertexOnBoundary(v1) || m.VertexOnBoundary(v2) {
		return FaceRef{}, rejectf("edge %d touches a boundary", e.ID())
	}

	// Ring spokes in rotation order: around v2 starting inside the
	// face of h1, then around v1 starting inside the face of h2. The
	// two seams where the walk would cross e are exactly where the
	// list wraps from one endpoint to the other.
	var spokes []HalfedgeRef
	for s := m.next(h1); s != h2; s = m.next(m.twin(s)) {
		spokes = append(spokes, s)
	}
	for s := m.next(h2); s != h1; s = m.next(m.twin(s)) {
		spokes = append(spokes, s)
	}
	if len(spokes) < 3 {
		return FaceRef{}, rejectf("beveling edge %d would make a %d-gon", e.ID(), len(spokes))
	}

	p1, p2 := m.vert(v1).Pos, m.vert(v2).Pos
	nv := make([]VertexRef, len(spokes))
	for i, s := range spokes {
		nv[i] = m.NewVertex()
		if m.origin(s) == v2 {
			m.vert(nv[i]).Pos = p2
		} else {
			m.vert(nv[i]).Pos = p1
		}
	}

	f1, f2 := m.faceOf(h1), m.faceOf(h2)
	m.face(f1).he = m.next(h1)
	m.face(f2).he = m.next(h2)

	m.attachRing(spokes, nv)
	f := m.closeRing(spokes)
	m.hes.erase(h1.r, "half-edge")
	m.hes.erase(h2.r, "half-edge")
	m.edges.erase(e.r, "edge")
	m.verts.erase(v1.r, "vertex")
	m.verts.erase(v2.r, "vertex")
	return f, nil
}

// attachRing re-roots each spoke at its new vertex and stitches an
// outer ring half-edge between consecutive spokes, inside the face of
// the later spoke. Any half-edge previously sitting between the two
// spokes (the beveled edge's own half-edges) drops out of its face
// cycle here; the caller erases it.
func (m *Mesh) attachRing(spokes []HalfedgeRef, nv []VertexRef) {
	k := len(spokes)
	for i, s := range spokes {
		m.he(s).vertex = nv[i]
		m.vert(nv[i]).he = s
	}
	for i := range spokes {
		j := (i + 1) % k
		e := m.NewEdge()
		t := m.NewHalfedge() // nv[i] -> nv[j], outer side
		r := m.NewHalfedge() // nv[j] -> nv[i], ring face side
		trec := m.he(t)
		trec.twin, trec.vertex, trec.edge = r, nv[i], e
		trec.face = m.faceOf(spokes[j])
		trec.next = spokes[j]
		rrec := m.he(r)
		rrec.twin, rrec.vertex, rrec.edge = t, nv[j], e
		m.edge(e).he = t
		m.he(m.twin(spokes[i])).next = t
	}
}

// closeRing builds the ring face over the inner half-edges created by
// attachRing. The inner side of the ring between spokes i and i+1 is
// the twin of the outer half-edge entering spokes[i+1].
func (m *Mesh) closeRing(spokes []HalfedgeRef) FaceRef {
	k := len(spokes)
	f := m.NewFace()
	inner := make([]HalfedgeRef, k)
	for j := range spokes {
		// Outer half-edge entering spokes[j] is prev of spokes[j].
		inner[j] = m.twin(m.prev(spokes[j]))
	}
	for j := range inner {
		rec := m.he(inner[j])
		rec.face = f
		rec.next = inner[(j+k-1)%k]
	}
	m.face(f).he = inner[0]
	return f
}

// BevelVertexPositions places the ring vertices of a BevelVertex face.
// start holds the position each ring vertex began at, ordered like
// FaceHalfedges(f), and tangentOffset slides each vertex along its
// spoke, clamped to the spoke's length.
func (m *Mesh) BevelVertexPositions(start []v3.Vec, f FaceRef, tangentOffset float64) {
	m.slideAlongSpokes(start, f, tangentOffset)
}

// BevelEdgePositions places the ring vertices of a BevelEdge face,
// with the same contract as BevelVertexPositions.
func (m *Mesh) BevelEdgePositions(start []v3.Vec, f FaceRef, tangentOffset float64) {
	m.slideAlongSpokes(start, f, tangentOffset)
}

func (m *Mesh) slideAlongSpokes(start []v3.Vec, f FaceRef, tangentOffset float64) {
	hs := m.faceCycle(f)
	for i, rh := range hs {
		if i >= len(start) {
			break
		}
		v := m.origin(rh)
		spoke := m.next(m.twin(rh))
		dir := m.vert(m.dest(spoke)).Pos.Sub(start[i])
		l := dir.Length()
		if l < epsilon {
			continue
		}
		off := tangentOffset
		if off < 0 {
			off = 0
		}
		if off > l {
			off = l
		}
		m.vert(v).Pos = start[i].Add(dir.MulScalar(off / l))
	}
}

// BevelFace lifts a face into an inset copy connected to the original
// ring by one quad per side. The face keeps its identity and ends up
// bounded by the new vertices. Returns the face.
//
// Rejected when the face is a boundary loop.
func (m *Mesh) BevelFace(f FaceRef) (FaceRef, error) {
	if m.face(f).boundary {
		return FaceRef{}, rejectf("face %d is a boundary loop", f.ID())
	}
	hs := m.faceCycle(f)
	k := len(hs)

	u := make([]VertexRef, k)
	up := make([]HalfedgeRef, k)   // w[i] -> u[i]
	down := make([]HalfedgeRef, k) // u[i] -> w[i]
	top := make([]HalfedgeRef, k)  // u[i] -> u[i+1], bounds f
	rim := make([]HalfedgeRef, k)  // u[i+1] -> u[i], bounds quad i
	for i := range hs {
		u[i] = m.NewVertex()
		m.vert(u[i]).Pos = m.vert(m.origin(hs[i])).Pos
		up[i] = m.NewHalfedge()
		down[i] = m.NewHalfedge()
		top[i] = m.NewHalfedge()
		rim[i] = m.NewHalfedge()
	}
	for i := range hs {
		j := (i + 1) % k
		w := m.origin(hs[i])

		side := m.NewEdge()
		uprec := m.he(up[i])
		uprec.twin, uprec.vertex, uprec.edge = down[i], w, side
		dnrec := m.he(down[i])
		dnrec.twin, dnrec.vertex, dnrec.edge = up[i], u[i], side
		m.edge(side).he = up[i]

		lid := m.NewEdge()
		toprec := m.he(top[i])
		toprec.twin, toprec.vertex, toprec.edge = rim[i], u[i], lid
		toprec.next, toprec.face = top[j], f
		rimrec := m.he(rim[i])
		rimrec.twin, rimrec.vertex, rimrec.edge = top[i], u[j], lid
		m.edge(lid).he = top[i]

		m.vert(u[i]).he = top[i]
	}
	for i := range hs {
		j := (i + 1) % k
		q := m.NewFace()
		m.he(hs[i]).next = up[j]
		m.he(hs[i]).face = q
		m.he(up[j]).next = rim[i]
		m.he(up[j]).face = q
		m.he(rim[i]).next = down[i]
		m.he(rim[i]).face = q
		m.he(down[i]).next = hs[i]
		m.he(down[i]).face = q
		m.face(q).he = hs[i]
	}
	m.face(f).he = top[0]
	return f, nil
}

// BevelFacePositions places the lifted vertices of a BevelFace. start
// holds the position each lifted vertex began at, ordered like
// FaceHalfedges(f). tangentOffset shrinks the face toward its centroid
// (clamped so vertices do not cross it) and normalOffset raises it
// along the face normal of the start polygon. FlipOrientation on the
// mesh flips the normal so the raise stays outward on mirrored
// geometry.
func (m *Mesh) BevelFacePositions(start []v3.Vec, f FaceRef, tangentOffset, normalOffset float64) {
	if len(start) == 0 {
		return
	}
	c := polygonCentroid(start)
	n := polygonNormal(start)
	if m.FlipOrientation {
		n = n.Neg()
	}
	hs := m.faceCycle(f)
	for i, h := range hs {
		if i >= len(start) {
			break
		}
		dir := c.Sub(start[i])
		l := dir.Length()
		off := tangentOffset
		if off < 0 {
			off = 0
		}
		if off > l {
			off = l
		}
		p := start[i]
		if l >= epsilon {
			p = p.Add(dir.MulScalar(off / l))
		}
		m.vert(m.origin(h)).Pos = p.Add(n.MulScalar(normalOffset))
	}
}
