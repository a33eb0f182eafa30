// Package halfedge implements a half-edge boundary representation for
// manifold polygon meshes, together with the local topological
// operators (collapse, flip, split, erase, bevel) that the editing
// algorithms in the sibling packages are built on.
//
// Elements live in per-kind arenas and are addressed by small
// generation-counted references (VertexRef, EdgeRef, FaceRef,
// HalfedgeRef). Erasing an element is a two-phase affair: operators
// soft-delete, and Validate both checks the structural invariants and
// physically reclaims soft-deleted slots. Dereferencing a soft-deleted
// or reclaimed element panics; that is a bug in the caller, not a
// recoverable condition.
//
// A Mesh is owned by a single goroutine. No method is safe for
// concurrent use, and no operator may be re-entered while another
// operator on the same mesh is running.
package halfedge
