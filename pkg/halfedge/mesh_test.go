package halfedge

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func euler(m *Mesh) int {
	return m.NumVertices() - m.NumEdges() + m.NumFaces()
}

func checkCounts(t *testing.T, m *Mesh, v, e, f int) {
	t.Helper()
	if got := m.NumVertices(); got != v {
		t.Errorf("vertices = %d, want %d", got, v)
	}
	if got := m.NumEdges(); got != e {
		t.Errorf("edges = %d, want %d", got, e)
	}
	if got := m.NumFaces(); got != f {
		t.Errorf("faces = %d, want %d", got, f)
	}
}

func checkValid(t *testing.T, m *Mesh) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestCube(t *testing.T) {
	m := Cube()
	checkCounts(t, m, 8, 12, 6)
	if got := m.NumHalfedges(); got != 24 {
		t.Errorf("halfedges = %d, want 24", got)
	}
	if m.HasBoundary() {
		t.Error("cube reports a boundary")
	}
	if got := euler(m); got != 2 {
		t.Errorf("euler characteristic = %d, want 2", got)
	}
	checkValid(t, m)

	for _, f := range m.Faces() {
		if got := m.FaceDegree(f); got != 4 {
			t.Errorf("face degree = %d, want 4", got)
		}
	}
	for _, v := range m.Vertices() {
		if got := m.VertexDegree(v); got != 3 {
			t.Errorf("vertex degree = %d, want 3", got)
		}
	}
}

func TestTetrahedron(t *testing.T) {
	m := Tetrahedron()
	checkCounts(t, m, 4, 6, 4)
	if m.HasBoundary() {
		t.Error("tetrahedron reports a boundary")
	}
	checkValid(t, m)
}

func TestFaceNormalsPointOutward(t *testing.T) {
	m := Cube()
	center := v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	for _, f := range m.Faces() {
		n := m.FaceNormal(f)
		out := m.FaceCentroid(f).Sub(center)
		if n.Dot(out) <= 0 {
			t.Errorf("face normal %v points inward", n)
		}
	}
}

func TestOpenQuad(t *testing.T) {
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	}
	m, err := FromPolygons(positions, [][]int{{0, 1, 2, 3}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	checkCounts(t, m, 4, 4, 1)
	if !m.HasBoundary() {
		t.Fatal("open quad reports no boundary")
	}
	if got := m.NumHalfedges(); got != 8 {
		t.Errorf("halfedges = %d, want 8", got)
	}
	for _, e := range m.Edges() {
		if !m.OnBoundary(e) {
			t.Error("open quad has a non-boundary edge")
		}
	}
	for _, v := range m.Vertices() {
		if !m.VertexOnBoundary(v) {
			t.Error("open quad has an interior vertex")
		}
	}
	checkValid(t, m)
}

func TestQuadStrip(t *testing.T) {
	m := QuadStrip(3)
	checkCounts(t, m, 8, 10, 3)
	if got := euler(m); got != 1 {
		t.Errorf("euler characteristic = %d, want 1 for a disk", got)
	}
	interior := 0
	for _, e := range m.Edges() {
		if !m.OnBoundary(e) {
			interior++
		}
	}
	if interior != 2 {
		t.Errorf("interior edges = %d, want 2", interior)
	}
	for _, v := range m.Vertices() {
		if !m.VertexOnBoundary(v) {
			t.Error("quad strip has an interior vertex")
		}
	}
	checkValid(t, m)
}

func TestFromPolygonsRejectsBadInput(t *testing.T) {
	quad := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 2, Y: 0, Z: 0},
	}
	cases := []struct {
		name  string
		faces [][]int
	}{
		{"two sides", [][]int{{0, 1}}},
		{"index out of range", [][]int{{0, 1, 9}}},
		{"repeated vertex", [][]int{{0, 1, 1}}},
		{"doubled directed edge", [][]int{{0, 1, 2}, {0, 1, 3}}},
		{"bowtie", [][]int{{0, 1, 2}, {0, 3, 4}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromPolygons(quad, tc.faces)
			var te *TopologyError
			if !errors.As(err, &te) {
				t.Fatalf("err = %v, want *TopologyError", err)
			}
		})
	}
}

func TestPolygonsRoundTrip(t *testing.T) {
	m := Cube()
	positions, faces := m.Polygons()
	if len(positions) != 8 || len(faces) != 6 {
		t.Fatalf("export: %d positions, %d faces", len(positions), len(faces))
	}
	back, err := FromPolygons(positions, faces)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	checkCounts(t, back, 8, 12, 6)
	checkValid(t, back)
}

func TestNavigation(t *testing.T) {
	m := Cube()
	for _, h := range m.Halfedges() {
		if m.twin(m.twin(h)) != h {
			t.Fatal("twin is not an involution")
		}
		if m.origin(m.twin(h)) != m.dest(h) {
			t.Fatal("twin origin disagrees with dest")
		}
		if m.prev(m.next(h)) != h {
			t.Fatal("prev does not invert next")
		}
	}
	for _, v := range m.Vertices() {
		for _, n := range m.VertexNeighbors(v) {
			if n == v {
				t.Fatal("vertex neighbors itself")
			}
		}
	}
}

func TestGeometryQueries(t *testing.T) {
	m := Cube()
	for _, e := range m.Edges() {
		if got := m.EdgeLength(e); math.Abs(got-1) > 1e-9 {
			t.Errorf("edge length = %g, want 1", got)
		}
	}
	var total float64
	for _, f := range m.Faces() {
		c := m.FaceCentroid(f)
		total += c.X + c.Y + c.Z
	}
	// Face centroids of the unit cube sum component-wise to 9.
	if math.Abs(total-9) > 1e-9 {
		t.Errorf("centroid component sum = %g, want 9", total)
	}
}

func TestCloneIndependence(t *testing.T) {
	m := Cube()
	c := m.Clone()
	if _, err := m.CollapseEdge(m.Edges()[0]); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	checkCounts(t, c, 8, 12, 6)
	checkValid(t, c)
	checkValid(t, m)
}
