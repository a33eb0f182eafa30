package simplify

import (
	"container/heap"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/halfedge"
)

// record is one candidate collapse: the edge, the point its endpoints
// would merge at, and the quadric error of that point.
type record struct {
	edge    halfedge.EdgeRef
	optimal v3.Vec
	cost    float64
	index   int // heap position, maintained by recordHeap
}

// recordHeap is an indexed min-heap of collapse candidates. Ties on
// cost break on edge identity so runs are reproducible. Removal by
// edge is constant-time lookup plus a sift, which the collapse loop
// needs when it invalidates every candidate touching a merged vertex.
type recordHeap struct {
	items []*record
	byEdg map[halfedge.EdgeRef]*record
}

func newRecordHeap() *recordHeap {
	return &recordHeap{byEdg: make(map[halfedge.EdgeRef]*record)}
}

func (h *recordHeap) Len() int { return len(h.items) }

func (h *recordHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.edge.ID() < b.edge.ID()
}

func (h *recordHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

func (h *recordHeap) Push(x any) {
	rec := x.(*record)
	rec.index = len(h.items)
	h.items = append(h.items, rec)
}

func (h *recordHeap) Pop() any {
	n := len(h.items)
	rec := h.items[n-1]
	h.items = h.items[:n-1]
	rec.index = -1
	return rec
}

// insert adds a candidate, replacing any existing record for the edge.
func (h *recordHeap) insert(rec *record) {
	if old, ok := h.byEdg[rec.edge]; ok {
		h.removeRecord(old)
	}
	h.byEdg[rec.edge] = rec
	heap.Push(h, rec)
}

// remove drops the candidate for an edge, if one is queued.
func (h *recordHeap) remove(e halfedge.EdgeRef) {
	if rec, ok := h.byEdg[e]; ok {
		h.removeRecord(rec)
	}
}

func (h *recordHeap) removeRecord(rec *record) {
	delete(h.byEdg, rec.edge)
	heap.Remove(h, rec.index)
}

// popBest removes and returns the cheapest candidate, or nil when the
// queue is empty.
func (h *recordHeap) popBest() *record {
	if len(h.items) == 0 {
		return nil
	}
	rec := heap.Pop(h).(*record)
	delete(h.byEdg, rec.edge)
	return rec
}
