package halfedge

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// epsilon is the squared-length floor below which a direction is
// treated as degenerate.
const epsilon = 1e-12

// polygonNormal returns the unit Newell normal of a polygon, which is
// well defined for non-planar cycles. Returns the zero vector when the
// polygon is degenerate.
func polygonNormal(pts []v3.Vec) v3.Vec {
	var n v3.Vec
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	l := n.Length()
	if l*l < epsilon {
		return v3.Vec{}
	}
	return n.DivScalar(l)
}

// polygonCentroid returns the arithmetic mean of the points.
func polygonCentroid(pts []v3.Vec) v3.Vec {
	var c v3.Vec
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.DivScalar(float64(len(pts)))
}
