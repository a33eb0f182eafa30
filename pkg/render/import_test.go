package render

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestWeldClosedSoup(t *testing.T) {
	// A tetrahedron as four loose triangles welds into a closed mesh.
	a := v3.Vec{X: 1, Y: 1, Z: 1}
	b := v3.Vec{X: 1, Y: -1, Z: -1}
	c := v3.Vec{X: -1, Y: 1, Z: -1}
	d := v3.Vec{X: -1, Y: -1, Z: 1}
	soup := []sdf.Triangle3{
		{a, b, c},
		{a, c, d},
		{a, d, b},
		{b, d, c},
	}
	m, err := Weld(soup)
	if err != nil {
		t.Fatalf("weld: %v", err)
	}
	if got := m.NumVertices(); got != 4 {
		t.Errorf("vertices = %d, want 4", got)
	}
	if got := m.NumFaces(); got != 4 {
		t.Errorf("faces = %d, want 4", got)
	}
	if m.HasBoundary() {
		t.Error("welded tetrahedron has a boundary")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestWeldDropsDegenerateTriangles(t *testing.T) {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 0}
	m, err := Weld([]sdf.Triangle3{{a, b, c}, {a, a, b}})
	if err != nil {
		t.Fatalf("weld: %v", err)
	}
	if got := m.NumFaces(); got != 1 {
		t.Errorf("faces = %d, want 1", got)
	}
}

func TestFromSolidSphere(t *testing.T) {
	s, err := sdf.Sphere3D(5)
	if err != nil {
		t.Fatalf("sphere: %v", err)
	}
	m, err := FromSolid(s, 24)
	if err != nil {
		t.Fatalf("polygonize: %v", err)
	}
	if m.HasBoundary() {
		t.Error("polygonized sphere has a boundary")
	}
	if got := m.NumVertices() - m.NumEdges() + m.NumFaces(); got != 2 {
		t.Errorf("euler characteristic = %d, want 2", got)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
