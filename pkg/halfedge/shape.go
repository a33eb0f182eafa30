package halfedge

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Cube returns the unit cube as six quads with outward winding.
func Cube() *Mesh {
	positions := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 0, Y: 1, Z: 1},
	}
	faces := [][]int{
		{0, 3, 2, 1},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	m, err := FromPolygons(positions, faces)
	if err != nil {
		panic("halfedge: cube construction: " + err.Error())
	}
	return m
}

// Tetrahedron returns a regular tetrahedron with outward winding.
func Tetrahedron() *Mesh {
	positions := []v3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}
	faces := [][]int{
		{0, 1, 2},
		{0, 2, 3},
		{0, 3, 1},
		{1, 3, 2},
	}
	m, err := FromPolygons(positions, faces)
	if err != nil {
		panic("halfedge: tetrahedron construction: " + err.Error())
	}
	return m
}

// QuadStrip returns a row of n unit quads in the z=0 plane, an open
// mesh with every vertex on the boundary.
func QuadStrip(n int) *Mesh {
	if n < 1 {
		panic("halfedge: quad strip needs at least one quad")
	}
	positions := make([]v3.Vec, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		positions = append(positions,
			v3.Vec{X: float64(i), Y: 0, Z: 0},
			v3.Vec{X: float64(i), Y: 1, Z: 0})
	}
	faces := make([][]int, n)
	for i := 0; i < n; i++ {
		faces[i] = []int{2 * i, 2*i + 2, 2*i + 3, 2*i + 1}
	}
	m, err := FromPolygons(positions, faces)
	if err != nil {
		panic("halfedge: quad strip construction: " + err.Error())
	}
	return m
}
