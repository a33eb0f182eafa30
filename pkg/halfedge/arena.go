package halfedge

import "fmt"

// elemState tracks the two-phase delete lifecycle of an arena slot.
type elemState uint8

const (
	stateLive      elemState = iota
	statePending             // soft-deleted, reclaimed by Validate
	stateReclaimed           // free for reuse under a new generation
)

// slot pairs a record with the generation counter that makes stale
// references detectable after the slot has been reclaimed and reused.
type slot[T any] struct {
	elem  T
	gen   uint32
	state elemState
}

// pool is an arena of records addressed by {index, generation} refs.
// Slots are allocated individually so record addresses stay stable
// while the pool grows; reclaimed slots are reused with a bumped
// generation.
type pool[T any] struct {
	slots []*slot[T]
	free  []uint32
	count int // live records, excluding soft-deleted ones
}

func (p *pool[T]) alloc() ref {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		s := p.slots[idx]
		var zero T
		s.elem = zero
		s.gen++
		s.state = stateLive
		p.count++
		return ref{idx: idx, gen: s.gen}
	}
	p.slots = append(p.slots, &slot[T]{gen: 1, state: stateLive})
	p.count++
	return ref{idx: uint32(len(p.slots) - 1), gen: 1}
}

// lookup resolves a ref to its slot, panicking on nil or stale refs.
func (p *pool[T]) lookup(r ref, kind string) *slot[T] {
	if r.isNil() {
		panic("halfedge: nil " + kind + " ref")
	}
	if int(r.idx) >= len(p.slots) {
		panic(fmt.Sprintf("halfedge: %s ref out of range (slot %d)", kind, r.idx))
	}
	s := p.slots[r.idx]
	if s.gen != r.gen || s.state == stateReclaimed {
		panic(fmt.Sprintf("halfedge: stale %s ref (slot %d gen %d)", kind, r.idx, r.gen))
	}
	return s
}

// get resolves a ref to its record. Access to a soft-deleted record is
// a contract violation and panics.
func (p *pool[T]) get(r ref, kind string) *T {
	s := p.lookup(r, kind)
	if s.state == statePending {
		panic(fmt.Sprintf("halfedge: access to erased %s (slot %d gen %d)", kind, r.idx, r.gen))
	}
	return &s.elem
}

func (p *pool[T]) erase(r ref, kind string) {
	s := p.lookup(r, kind)
	if s.state != stateLive {
		return
	}
	s.state = statePending
	p.count--
}

func (p *pool[T]) alive(r ref) bool {
	if r.isNil() || int(r.idx) >= len(p.slots) {
		return false
	}
	s := p.slots[r.idx]
	return s.gen == r.gen && s.state == stateLive
}

// compact reclaims every soft-deleted slot for reuse.
func (p *pool[T]) compact() {
	for i, s := range p.slots {
		if s.state == statePending {
			s.state = stateReclaimed
			p.free = append(p.free, uint32(i))
		}
	}
}

// each calls fn for every live record, in slot order.
func (p *pool[T]) each(fn func(ref, *T)) {
	for i, s := range p.slots {
		if s.state == stateLive {
			fn(ref{idx: uint32(i), gen: s.gen}, &s.elem)
		}
	}
}

// refs returns the refs of all live records, in slot order.
func (p *pool[T]) refs() []ref {
	out := make([]ref, 0, p.count)
	for i, s := range p.slots {
		if s.state == stateLive {
			out = append(out, ref{idx: uint32(i), gen: s.gen})
		}
	}
	return out
}

func (p *pool[T]) clone() pool[T] {
	out := pool[T]{
		slots: make([]*slot[T], len(p.slots)),
		free:  append([]uint32(nil), p.free...),
		count: p.count,
	}
	for i, s := range p.slots {
		c := *s
		out.slots[i] = &c
	}
	return out
}
