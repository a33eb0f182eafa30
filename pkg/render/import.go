package render

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	sdfr "github.com/deadsy/sdfx/render"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/halfedge"
)

const defaultMeshCells = 40

// weldEps quantizes positions when welding the triangle soup. Marching
// cubes emits shared vertices with identical coordinates, so this only
// has to absorb float noise.
const weldEps = 1e-9

// FromSolid polygonizes a signed distance field with marching cubes
// and welds the triangle soup into a half-edge mesh. cells controls
// the sampling resolution; pass 0 for a reasonable default.
func FromSolid(s sdf.SDF3, cells int) (*halfedge.Mesh, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	renderer := sdfr.NewMarchingCubesUniform(cells)
	triangles := sdfr.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("solid polygonized to nothing")
	}
	soup := make([]sdf.Triangle3, len(triangles))
	for i, tri := range triangles {
		soup[i] = *tri
	}
	return Weld(soup)
}

// Weld merges coincident corners of a triangle soup and builds a
// half-edge mesh from the result. Degenerate triangles are dropped;
// soups that do not form a manifold surface fail with the underlying
// topology error.
func Weld(triangles []sdf.Triangle3) (*halfedge.Mesh, error) {
	type key [3]int64
	quantize := func(p v3.Vec) key {
		return key{
			int64(math.Round(p.X / weldEps)),
			int64(math.Round(p.Y / weldEps)),
			int64(math.Round(p.Z / weldEps)),
		}
	}

	index := make(map[key]int)
	var positions []v3.Vec
	var faces [][]int
	for _, tri := range triangles {
		var idx [3]int
		for j := 0; j < 3; j++ {
			k := quantize(tri[j])
			i, ok := index[k]
			if !ok {
				i = len(positions)
				index[k] = i
				positions = append(positions, tri[j])
			}
			idx[j] = i
		}
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[2] == idx[0] {
			continue
		}
		faces = append(faces, []int{idx[0], idx[1], idx[2]})
	}
	m, err := halfedge.FromPolygons(positions, faces)
	if err != nil {
		return nil, fmt.Errorf("weld: %w", err)
	}
	return m, nil
}
