package simplify

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/halfedge"
)

func TestPlaneQuadricError(t *testing.T) {
	// Distance from the plane z = 0 is squared by its quadric.
	q := PlaneQuadric(v3.Vec{Z: 1}, 0)
	if got := q.Error(v3.Vec{X: 3, Y: -1, Z: 2}); math.Abs(got-4) > 1e-12 {
		t.Errorf("error = %g, want 4", got)
	}
	if got := q.Error(v3.Vec{X: 5, Y: 5}); math.Abs(got) > 1e-12 {
		t.Errorf("on-plane error = %g, want 0", got)
	}
}

func TestQuadricOptimalAtPlaneIntersection(t *testing.T) {
	// Three orthogonal planes through (1, 2, 3) pin the minimum there.
	q := PlaneQuadric(v3.Vec{X: 1}, -1).
		Add(PlaneQuadric(v3.Vec{Y: 1}, -2)).
		Add(PlaneQuadric(v3.Vec{Z: 1}, -3))
	p, ok := q.Optimal()
	if !ok {
		t.Fatal("solve reported degenerate")
	}
	if p.Sub(v3.Vec{X: 1, Y: 2, Z: 3}).Length() > 1e-9 {
		t.Errorf("optimal = %v, want (1,2,3)", p)
	}
	if got := q.Error(p); math.Abs(got) > 1e-9 {
		t.Errorf("error at optimal = %g, want 0", got)
	}
}

func TestQuadricOptimalDegenerate(t *testing.T) {
	// A single plane has no unique minimum.
	q := PlaneQuadric(v3.Vec{Z: 1}, -1)
	if _, ok := q.Optimal(); ok {
		t.Error("single-plane solve reported a unique optimum")
	}
}

func TestRecordHeapOrdering(t *testing.T) {
	m := halfedge.Cube()
	edges := m.Edges()
	h := newRecordHeap()
	h.insert(&record{edge: edges[0], cost: 3})
	h.insert(&record{edge: edges[1], cost: 1})
	h.insert(&record{edge: edges[2], cost: 2})

	if rec := h.popBest(); rec.edge != edges[1] {
		t.Errorf("first pop cost = %g, want 1", rec.cost)
	}
	h.remove(edges[2])
	if rec := h.popBest(); rec.edge != edges[0] {
		t.Errorf("pop after removal cost = %g, want 3", rec.cost)
	}
	if rec := h.popBest(); rec != nil {
		t.Errorf("drained heap returned %v", rec)
	}
}

func TestRecordHeapTieBreak(t *testing.T) {
	m := halfedge.Cube()
	edges := m.Edges()
	h := newRecordHeap()
	h.insert(&record{edge: edges[2], cost: 1})
	h.insert(&record{edge: edges[0], cost: 1})
	h.insert(&record{edge: edges[1], cost: 1})
	prev := h.popBest()
	for rec := h.popBest(); rec != nil; rec = h.popBest() {
		if rec.edge.ID() < prev.edge.ID() {
			t.Error("equal costs not popped in edge order")
		}
		prev = rec
	}
}

func TestSimplifyTriangulatedCube(t *testing.T) {
	m := halfedge.Cube()
	m.Triangulate()
	start := m.NumEdges()
	target := int(float64(start) * targetRatio)

	if err := Simplify(m); err != nil {
		t.Fatalf("simplify: %v", err)
	}
	if got := m.NumEdges(); got > target {
		t.Errorf("edges = %d, want at most %d", got, target)
	}
	if got := m.NumVertices() - m.NumEdges() + m.NumFaces(); got != 2 {
		t.Errorf("euler characteristic = %d, want 2", got)
	}
	for _, f := range m.Faces() {
		if got := m.FaceDegree(f); got != 3 {
			t.Errorf("face degree = %d, want 3", got)
		}
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSimplifyTetrahedronFloor(t *testing.T) {
	m := halfedge.Tetrahedron()
	if err := Simplify(m); err != nil {
		t.Fatalf("simplify: %v", err)
	}
	// One collapse takes the tetrahedron to the three-edge floor.
	if got := m.NumEdges(); got != 3 {
		t.Errorf("edges = %d, want 3", got)
	}
	if err := Simplify(m); err != nil {
		t.Fatalf("second simplify: %v", err)
	}
	if got := m.NumEdges(); got != 3 {
		t.Errorf("edges after second pass = %d, want 3", got)
	}
}

func TestSimplifyRejectsQuads(t *testing.T) {
	if err := Simplify(halfedge.Cube()); err == nil {
		t.Error("simplify accepted a quad mesh")
	}
}

func TestSimplifyKeepsOpenMeshRim(t *testing.T) {
	// Every edge of a lone triangle is a boundary edge; nothing can
	// collapse and the mesh survives untouched.
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
	}
	m, err := halfedge.FromPolygons(positions, [][]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := Simplify(m); err != nil {
		t.Fatalf("simplify: %v", err)
	}
	if m.NumVertices() != 3 || m.NumEdges() != 3 || m.NumFaces() != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/3/1",
			m.NumVertices(), m.NumEdges(), m.NumFaces())
	}
}
