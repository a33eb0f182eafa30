package halfedge

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// findEdge returns the edge joining two vertices, or a nil ref.
func findEdge(m *Mesh, a, b VertexRef) EdgeRef {
	for _, e := range m.VertexEdges(a) {
		x, y := m.EdgeVertices(e)
		if (x == a && y == b) || (x == b && y == a) {
			return e
		}
	}
	return EdgeRef{}
}

func TestCollapseEdgeQuads(t *testing.T) {
	m := Cube()
	e := m.Edges()[0]
	a, b := m.EdgeVertices(e)
	mid := m.EdgeCenter(e)

	v, err := m.CollapseEdge(e)
	if err != nil {
		t.Fatalf("collapse: %v", err)
	}
	checkCounts(t, m, 7, 11, 6)
	if got := euler(m); got != 2 {
		t.Errorf("euler characteristic = %d, want 2", got)
	}
	if p := m.Vert(v).Pos; p.Sub(mid).Length() > 1e-9 {
		t.Errorf("survivor at %v, want midpoint %v", p, mid)
	}
	if m.VertexAlive(a) == m.VertexAlive(b) {
		t.Error("exactly one endpoint should survive")
	}
	if m.EdgeAlive(e) {
		t.Error("collapsed edge still alive")
	}
	checkValid(t, m)

	// The two faces flanking the collapsed edge became triangles.
	tris := 0
	for _, f := range m.Faces() {
		if m.FaceDegree(f) == 3 {
			tris++
		}
	}
	if tris != 2 {
		t.Errorf("triangles after collapse = %d, want 2", tris)
	}
}

func TestCollapseEdgeTriangles(t *testing.T) {
	m := Tetrahedron()
	if _, err := m.CollapseEdge(m.Edges()[0]); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	// Two triangles remain, glued along all three edges.
	checkCounts(t, m, 3, 3, 2)
	checkValid(t, m)

	// Any further collapse would dissolve the surface entirely.
	_, err := m.CollapseEdge(m.Edges()[0])
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want rejection", err)
	}
	checkCounts(t, m, 3, 3, 2)
	checkValid(t, m)
}

func TestCollapseEdgeRejectsBoundary(t *testing.T) {
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	}
	m, err := FromPolygons(positions, [][]int{{0, 1, 2, 3}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_, err = m.CollapseEdge(m.Edges()[0])
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want rejection", err)
	}
	checkCounts(t, m, 4, 4, 1)
	checkValid(t, m)
}

func TestFlipEdgeTwiceRestoresEdge(t *testing.T) {
	m := Cube()
	m.Triangulate()
	checkCounts(t, m, 8, 18, 12)
	va := m.Vertices()[0]
	var e EdgeRef
	// The fan diagonal at the first corner is flippable.
	for _, cand := range m.VertexEdges(va) {
		if !m.OnBoundary(cand) && m.EdgeLength(cand) > 1.1 {
			e = cand
			break
		}
	}
	if e.IsNil() {
		t.Fatal("no diagonal found")
	}
	a, b := m.EdgeVertices(e)

	if _, err := m.FlipEdge(e); err != nil {
		t.Fatalf("first flip: %v", err)
	}
	checkCounts(t, m, 8, 18, 12)
	checkValid(t, m)
	x, y := m.EdgeVertices(e)
	if x == a || x == b || y == a || y == b {
		t.Error("flip did not move the edge")
	}

	if _, err := m.FlipEdge(e); err != nil {
		t.Fatalf("second flip: %v", err)
	}
	checkCounts(t, m, 8, 18, 12)
	checkValid(t, m)
	x, y = m.EdgeVertices(e)
	if !(x == a && y == b) && !(x == b && y == a) {
		t.Error("double flip did not restore the edge")
	}
}

func TestFlipEdgeRejectsDoubledEdge(t *testing.T) {
	m := Tetrahedron()
	// Every pair of vertices is already joined, so any flip would
	// double an edge.
	_, err := m.FlipEdge(m.Edges()[0])
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want rejection", err)
	}
	checkCounts(t, m, 4, 6, 4)
	checkValid(t, m)
}

func TestSplitEdge(t *testing.T) {
	m := Tetrahedron()
	e := m.Edges()[0]
	_, v2 := m.EdgeVertices(e)
	mid := m.EdgeCenter(e)

	mv, err := m.SplitEdge(e)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	checkCounts(t, m, 5, 9, 6)
	if got := euler(m); got != 2 {
		t.Errorf("euler characteristic = %d, want 2", got)
	}
	if p := m.Vert(mv).Pos; p.Sub(mid).Length() > 1e-9 {
		t.Errorf("midpoint at %v, want %v", p, mid)
	}
	if got := m.VertexDegree(mv); got != 4 {
		t.Errorf("midpoint degree = %d, want 4", got)
	}
	if m.dest(m.Vert(mv).Halfedge()) != v2 {
		t.Error("midpoint representative does not point along the split edge")
	}
	checkValid(t, m)
	for _, f := range m.Faces() {
		if got := m.FaceDegree(f); got != 3 {
			t.Errorf("face degree = %d, want 3", got)
		}
	}
}

func TestSplitThenCollapseRestoresCounts(t *testing.T) {
	m := Tetrahedron()
	mv, err := m.SplitEdge(m.Edges()[0])
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	e := m.edgeOf(m.Vert(mv).Halfedge())
	if _, err := m.CollapseEdge(e); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	checkCounts(t, m, 4, 6, 4)
	checkValid(t, m)
}

func TestSplitEdgeRejectsNonTriangles(t *testing.T) {
	m := Cube()
	_, err := m.SplitEdge(m.Edges()[0])
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want rejection", err)
	}
	checkCounts(t, m, 8, 12, 6)
}

func TestEraseVertex(t *testing.T) {
	m := Cube()
	v := m.Vertices()[0]
	f, err := m.EraseVertex(v)
	if err != nil {
		t.Fatalf("erase: %v", err)
	}
	checkCounts(t, m, 7, 9, 4)
	if got := m.FaceDegree(f); got != 6 {
		t.Errorf("merged face degree = %d, want 6", got)
	}
	if m.VertexAlive(v) {
		t.Error("erased vertex still alive")
	}
	checkValid(t, m)
}

func TestEraseEdge(t *testing.T) {
	m := Cube()
	e := m.Edges()[0]
	f, err := m.EraseEdge(e)
	if err != nil {
		t.Fatalf("erase: %v", err)
	}
	checkCounts(t, m, 8, 11, 5)
	if got := m.FaceDegree(f); got != 6 {
		t.Errorf("merged face degree = %d, want 6", got)
	}
	checkValid(t, m)
}

func TestEraseEdgeRejectsSharedVertices(t *testing.T) {
	m := Tetrahedron()
	// All four faces pairwise share a vertex beyond their common edge.
	if _, err := m.CollapseEdge(m.Edges()[0]); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	// The pillow's two faces share all three vertices.
	_, err := m.EraseEdge(m.Edges()[0])
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want rejection", err)
	}
	checkValid(t, m)
}

func TestCollapseFace(t *testing.T) {
	m := Cube()
	var bottom FaceRef
	for _, f := range m.Faces() {
		if math.Abs(m.FaceCentroid(f).Z) < 1e-9 {
			bottom = f
			break
		}
	}
	if bottom.IsNil() {
		t.Fatal("bottom face not found")
	}
	c := m.FaceCentroid(bottom)

	v, err := m.CollapseFace(bottom)
	if err != nil {
		t.Fatalf("collapse: %v", err)
	}
	checkCounts(t, m, 5, 8, 5)
	if p := m.Vert(v).Pos; p.Sub(c).Length() > 1e-9 {
		t.Errorf("survivor at %v, want centroid %v", p, c)
	}
	checkValid(t, m)
}

func TestCollapseFaceRollsBack(t *testing.T) {
	m := Tetrahedron()
	// Collapsing a whole tetrahedron face cannot finish: the final
	// collapse would leave fewer than three edges.
	_, err := m.CollapseFace(m.Faces()[0])
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want rejection", err)
	}
	checkCounts(t, m, 4, 6, 4)
	checkValid(t, m)
}
