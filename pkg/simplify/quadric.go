package simplify

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Quadric is a symmetric 4x4 error quadric in homogeneous coordinates.
// Summing the plane quadrics of the faces around a vertex gives a form
// whose value at a point is the sum of squared distances to those
// planes.
type Quadric [4][4]float64

// PlaneQuadric returns the quadric of the plane with unit normal n and
// offset d, the outer product of (n.X, n.Y, n.Z, d) with itself.
func PlaneQuadric(n v3.Vec, d float64) Quadric {
	u := [4]float64{n.X, n.Y, n.Z, d}
	var q Quadric
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			q[i][j] = u[i] * u[j]
		}
	}
	return q
}

// Add returns the sum of two quadrics.
func (q Quadric) Add(r Quadric) Quadric {
	var s Quadric
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			s[i][j] = q[i][j] + r[i][j]
		}
	}
	return s
}

// Error evaluates the quadric at p in homogeneous coordinates.
func (q Quadric) Error(p v3.Vec) float64 {
	u := [4]float64{p.X, p.Y, p.Z, 1}
	var total float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			total += u[i] * q[i][j] * u[j]
		}
	}
	return total
}

// detEps guards the 3x3 solve against near-singular quadrics, which
// arise around flat or colinear neighborhoods.
const detEps = 1e-10

// Optimal solves for the point minimizing the quadric error. The
// minimum satisfies A x = -b with A the upper-left 3x3 block and b the
// first three entries of the last column. Reports false when A is too
// close to singular to trust, in which case the caller should fall
// back to a point on the collapsing edge.
func (q Quadric) Optimal() (v3.Vec, bool) {
	a := [3][3]float64{
		{q[0][0], q[0][1], q[0][2]},
		{q[1][0], q[1][1], q[1][2]},
		{q[2][0], q[2][1], q[2][2]},
	}
	b := [3]float64{-q[0][3], -q[1][3], -q[2][3]}

	det := det3(a[0], a[1], a[2])
	if math.Abs(det) < detEps {
		return v3.Vec{}, false
	}
	x := det3([3]float64{b[0], a[0][1], a[0][2]},
		[3]float64{b[1], a[1][1], a[1][2]},
		[3]float64{b[2], a[2][1], a[2][2]}) / det
	y := det3([3]float64{a[0][0], b[0], a[0][2]},
		[3]float64{a[1][0], b[1], a[1][2]},
		[3]float64{a[2][0], b[2], a[2][2]}) / det
	z := det3([3]float64{a[0][0], a[0][1], b[0]},
		[3]float64{a[1][0], a[1][1], b[1]},
		[3]float64{a[2][0], a[2][1], b[2]}) / det
	return v3.Vec{X: x, Y: y, Z: z}, true
}

func det3(r0, r1, r2 [3]float64) float64 {
	return r0[0]*(r1[1]*r2[2]-r1[2]*r2[1]) -
		r0[1]*(r1[0]*r2[2]-r1[2]*r2[0]) +
		r0[2]*(r1[0]*r2[1]-r1[1]*r2[0])
}
