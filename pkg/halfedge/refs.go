package halfedge

// ref is a slot index plus a generation counter. The generation lets
// dangling references be told apart from live ones after a slot has
// been reclaimed and reused. Generation 0 is reserved for the nil ref,
// so the zero value of every public ref type means "no element".
type ref struct {
	idx uint32
	gen uint32
}

func (r ref) isNil() bool { return r.gen == 0 }

// id packs the ref into a single stable integer, usable as a map key
// or ordering tie-break for as long as the slot is not reclaimed.
func (r ref) id() uint64 { return uint64(r.gen)<<32 | uint64(r.idx) }

// VertexRef is a stable handle to a vertex of a Mesh.
type VertexRef struct{ r ref }

// EdgeRef is a stable handle to an edge of a Mesh.
type EdgeRef struct{ r ref }

// FaceRef is a stable handle to a face of a Mesh.
type FaceRef struct{ r ref }

// HalfedgeRef is a stable handle to a half-edge of a Mesh.
type HalfedgeRef struct{ r ref }

// IsNil reports whether the ref is the zero "no element" value.
func (v VertexRef) IsNil() bool { return v.r.isNil() }

// IsNil reports whether the ref is the zero "no element" value.
func (e EdgeRef) IsNil() bool { return e.r.isNil() }

// IsNil reports whether the ref is the zero "no element" value.
func (f FaceRef) IsNil() bool { return f.r.isNil() }

// IsNil reports whether the ref is the zero "no element" value.
func (h HalfedgeRef) IsNil() bool { return h.r.isNil() }

// ID returns a stable integer identity for the vertex, suitable for
// deterministic ordering and diagnostics.
func (v VertexRef) ID() uint64 { return v.r.id() }

// ID returns a stable integer identity for the edge.
func (e EdgeRef) ID() uint64 { return e.r.id() }

// ID returns a stable integer identity for the face.
func (f FaceRef) ID() uint64 { return f.r.id() }

// ID returns a stable integer identity for the half-edge.
func (h HalfedgeRef) ID() uint64 { return h.r.id() }
