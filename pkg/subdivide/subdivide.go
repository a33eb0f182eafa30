// Package subdivide refines meshes globally: linear and Catmull-Clark
// subdivision rebuild the mesh as quads from staged control points,
// Loop subdivision refines triangle meshes in place through edge
// splits and flips.
package subdivide

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/halfedge"
)

// Linear splits every face into quads around its centroid without
// moving existing vertices. Requires a closed mesh.
func Linear(m *halfedge.Mesh) error {
	if m.HasBoundary() {
		return fmt.Errorf("linear subdivision: %w", errOpenMesh)
	}
	for _, v := range m.Vertices() {
		rec := m.Vert(v)
		rec.NewPos = rec.Pos
	}
	for _, e := range m.Edges() {
		m.Edge(e).NewPos = m.EdgeCenter(e)
	}
	for _, f := range m.Faces() {
		m.Face(f).NewPos = m.FaceCentroid(f)
	}
	return rebuildQuads(m)
}

// CatmullClark splits every face into quads using the Catmull-Clark
// smoothing rules, so the result approaches a smooth limit surface
// under repetition. Requires a closed mesh.
func CatmullClark(m *halfedge.Mesh) error {
	if m.HasBoundary() {
		return fmt.Errorf("catmull-clark subdivision: %w", errOpenMesh)
	}
	for _, f := range m.Faces() {
		m.Face(f).NewPos = m.FaceCentroid(f)
	}
	// Edge points average the endpoints with the two face points.
	for _, e := range m.Edges() {
		h := m.Edge(e).Halfedge()
		rec := m.Halfedge(h)
		twin := m.Halfedge(rec.Twin())
		a := m.Vert(rec.Origin()).Pos
		b := m.Vert(twin.Origin()).Pos
		f1 := m.Face(rec.Face()).NewPos
		f2 := m.Face(twin.Face()).NewPos
		m.Edge(e).NewPos = a.Add(b).Add(f1).Add(f2).DivScalar(4)
	}
	// Vertex points: (Q + 2R + (N-3)P) / N with Q the average of the
	// adjacent face points and R the average of the adjacent edge
	// midpoints.
	for _, v := range m.Vertices() {
		var q, r v3.Vec
		n := 0
		for _, h := range m.VertexHalfedges(v) {
			rec := m.Halfedge(h)
			q = q.Add(m.Face(rec.Face()).NewPos)
			r = r.Add(m.EdgeCenter(rec.Edge()))
			n++
		}
		fn := float64(n)
		q = q.DivScalar(fn)
		r = r.DivScalar(fn)
		p := m.Vert(v).Pos
		m.Vert(v).NewPos = q.Add(r.MulScalar(2)).Add(p.MulScalar(fn - 3)).DivScalar(fn)
	}
	return rebuildQuads(m)
}

// rebuildQuads replaces the mesh with one quad per face corner, built
// over the staged NewPos control points: vertex points first, then
// edge points, then face points.
func rebuildQuads(m *halfedge.Mesh) error {
	vrefs := m.Vertices()
	erefs := m.Edges()
	frefs := m.Faces()

	positions := make([]v3.Vec, 0, len(vrefs)+len(erefs)+len(frefs))
	vidx := make(map[halfedge.VertexRef]int, len(vrefs))
	eidx := make(map[halfedge.EdgeRef]int, len(erefs))
	fidx := make(map[halfedge.FaceRef]int, len(frefs))
	for _, v := range vrefs {
		vidx[v] = len(positions)
		positions = append(positions, m.Vert(v).NewPos)
	}
	for _, e := range erefs {
		eidx[e] = len(positions)
		positions = append(positions, m.Edge(e).NewPos)
	}
	for _, f := range frefs {
		fidx[f] = len(positions)
		positions = append(positions, m.Face(f).NewPos)
	}

	var quads [][]int
	for _, f := range frefs {
		hs := m.FaceHalfedges(f)
		for i, h := range hs {
			prev := hs[(i+len(hs)-1)%len(hs)]
			rec := m.Halfedge(h)
			quads = append(quads, []int{
				fidx[f],
				eidx[m.Halfedge(prev).Edge()],
				vidx[rec.Origin()],
				eidx[rec.Edge()],
			})
		}
	}
	return m.Rebuild(positions, quads)
}
