// Package render flattens half-edge meshes into GPU-ready triangle
// buffers and sdfx triangle soups.
package render

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/halfedge"
)

// Buffer is a flat-shaded triangle buffer. All arrays are flat:
// vertices has 3 floats per vertex (x,y,z), normals has 3 floats per
// vertex, indices has 3 uint32s per triangle. Vertices are not shared
// between triangles so each face keeps its own normal.
type Buffer struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// IsEmpty returns true if the buffer has no geometry.
func (b *Buffer) IsEmpty() bool {
	return len(b.Vertices) == 0
}

// Triangles exports the mesh as an sdfx triangle soup, fanning each
// polygon from its first corner. Boundary loops are skipped.
func Triangles(m *halfedge.Mesh) []sdf.Triangle3 {
	var out []sdf.Triangle3
	for _, f := range m.Faces() {
		hs := m.FaceHalfedges(f)
		pts := make([]v3.Vec, len(hs))
		for i, h := range hs {
			pts[i] = m.Vert(m.Halfedge(h).Origin()).Pos
		}
		for i := 1; i+1 < len(pts); i++ {
			out = append(out, sdf.Triangle3{pts[0], pts[i], pts[i+1]})
		}
	}
	return out
}

// FromMesh flattens a mesh into a flat-shaded buffer.
func FromMesh(m *halfedge.Mesh) *Buffer {
	triangles := Triangles(m)

	numVerts := len(triangles) * 3
	b := &Buffer{
		Vertices: make([]float32, 0, numVerts*3),
		Normals:  make([]float32, 0, numVerts*3),
		Indices:  make([]uint32, 0, numVerts),
	}
	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			b.Vertices = append(b.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			b.Normals = append(b.Normals, nx, ny, nz)
			b.Indices = append(b.Indices, uint32(i*3+j))
		}
	}
	return b
}
