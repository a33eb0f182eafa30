package halfedge

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vertex is a mesh vertex. Pos is its position; NewPos and IsNew are
// transient staging fields used by the subdivision and remeshing
// algorithms and carry no meaning between calls.
type Vertex struct {
	Pos    v3.Vec
	NewPos v3.Vec
	IsNew  bool

	he HalfedgeRef // any outgoing half-edge
}

// Halfedge returns one outgoing half-edge of the vertex.
func (v *Vertex) Halfedge() HalfedgeRef { return v.he }

// Edge is an undirected mesh edge, represented by its two half-edges.
// NewPos and IsNew are transient staging fields for subdivision.
type Edge struct {
	NewPos v3.Vec
	IsNew  bool

	he HalfedgeRef // either of the two half-edges on this edge
}

// Halfedge returns one of the two half-edges of the edge.
func (e *Edge) Halfedge() HalfedgeRef { return e.he }

// Face is a polygonal face, or the virtual loop that closes a hole in
// an open mesh (IsBoundary). NewPos is a transient staging field for
// subdivision.
type Face struct {
	NewPos v3.Vec

	he       HalfedgeRef // any half-edge of the face cycle
	boundary bool
}

// Halfedge returns one half-edge of the face cycle.
func (f *Face) Halfedge() HalfedgeRef { return f.he }

// IsBoundary reports whether the face is a virtual boundary loop
// rather than a real polygon.
func (f *Face) IsBoundary() bool { return f.boundary }

// Halfedge is one directed side of an edge. Its vertex is the vertex
// it points away from.
type Halfedge struct {
	next   HalfedgeRef
	twin   HalfedgeRef
	vertex VertexRef
	edge   EdgeRef
	face   FaceRef
}

// Next returns the next half-edge around the face.
func (h *Halfedge) Next() HalfedgeRef { return h.next }

// Twin returns the oppositely directed half-edge on the same edge.
func (h *Halfedge) Twin() HalfedgeRef { return h.twin }

// Origin returns the vertex this half-edge points away from.
func (h *Halfedge) Origin() VertexRef { return h.vertex }

// Edge returns the undirected edge this half-edge belongs to.
func (h *Halfedge) Edge() EdgeRef { return h.edge }

// Face returns the face on the left of this half-edge.
func (h *Halfedge) Face() FaceRef { return h.face }
