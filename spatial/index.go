package spatial

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/kyroy/kdtree"

	"github.com/vsvg-go/vsvg/geom"
)

// Endpoints is the pair of points a single indexed item contributes:
// its start (for the non-flip slot key) and its end (additionally
// indexed under a distinct key when flip mode is on). Valid is false
// for a degenerate item (no endpoints at all, e.g. an empty path): it
// still occupies a slot reachable via PopFirst but never enters the
// k-d-tree, matching the source's "tree.add only when start is Some"
// behavior.
type Endpoints struct {
	Start, End geom.Point
	Valid      bool
}

// kdPoint adapts a 2D coordinate plus its tree key to kdtree.Point.
type kdPoint struct {
	x, y float64
	key  int
}

func (p *kdPoint) Dimensions() int { return 2 }
func (p *kdPoint) Dimension(i int) float64 {
	if i == 0 {
		return p.x
	}
	return p.y
}

// Index answers nearest-unconsumed-endpoint and pop-first queries
// over a fixed set of items, per spec.md §4.D. It borrows nothing
// beyond the Endpoints slice passed to New: callers keep their own
// path slice and interpret returned slots against it.
type Index struct {
	entries  []Endpoints
	flip     bool
	occupied *bitset.BitSet
	head     int // next candidate slot for PopFirst
	live     int // count of still-occupied slots

	tree  *kdtree.KDTree
	agent *reindexAgent
}

// New builds an index over items, in the given iteration order. When
// flip is true, both endpoints of every item are indexed so
// PopNearest may report either orientation; otherwise only the start
// point participates in nearest-neighbor queries.
func New(items []Endpoints, flip bool, strategy Strategy) *Index {
	idx := &Index{
		entries:  items,
		flip:     flip,
		occupied: bitset.New(uint(len(items))),
		live:     len(items),
		agent:    newReindexAgent(strategy),
	}
	for i := range items {
		idx.occupied.Set(uint(i))
	}
	idx.tree = buildTree(items, flip, idx.occupied)
	return idx
}

func buildTree(items []Endpoints, flip bool, occupied *bitset.BitSet) *kdtree.KDTree {
	var pts []kdtree.Point
	for slot, e := range items {
		if !occupied.Test(uint(slot)) || !e.Valid {
			continue
		}
		if flip {
			pts = append(pts, &kdPoint{x: e.Start.X, y: e.Start.Y, key: 2 * slot})
			pts = append(pts, &kdPoint{x: e.End.X, y: e.End.Y, key: 2*slot + 1})
		} else {
			pts = append(pts, &kdPoint{x: e.Start.X, y: e.Start.Y, key: slot})
		}
	}
	return kdtree.New(pts)
}

// Len reports the number of still-occupied entries.
func (idx *Index) Len() int { return idx.live }

// Empty reports whether every entry has been popped.
func (idx *Index) Empty() bool { return idx.live == 0 }

// PopFirst removes and returns the lowest-slot occupied entry, in
// original insertion order, for the drain-remaining fallback in
// Sort (§4.E step 4) and the initial chain seed in Join (§4.G step 2).
func (idx *Index) PopFirst() (slot int, ok bool) {
	for idx.head < len(idx.entries) {
		if idx.occupied.Test(uint(idx.head)) {
			slot = idx.head
			idx.occupied.Clear(uint(slot))
			idx.live--
			idx.head++
			return slot, true
		}
		idx.head++
	}
	return 0, false
}

// PopNearest finds the nearest occupied endpoint to query, skipping
// stale (already-popped) tree entries and charging a miss for each
// one encountered. Returns the entry's slot and whether it was hit in
// its reversed (End-first) orientation. Triggers a tree rebuild when
// the reindex agent's threshold is reached.
func (idx *Index) PopNearest(query geom.Point) (slot int, reversed bool, ok bool) {
	if idx.live == 0 {
		return 0, false, false
	}

	total := len(idx.entries)
	if idx.flip {
		total *= 2
	}
	candidates := idx.tree.KNN(&kdPoint{x: query.X, y: query.Y}, total)

	rebuildDue := false
	for _, c := range candidates {
		kp, isKd := c.(*kdPoint)
		if !isKd {
			continue
		}
		s, rev := decodeKey(kp.key, idx.flip)
		if !idx.occupied.Test(uint(s)) {
			if idx.agent.recordMiss(total) {
				rebuildDue = true
			}
			continue
		}
		idx.occupied.Clear(uint(s))
		idx.live--
		if rebuildDue {
			idx.rebuild()
		}
		return s, rev, true
	}
	return 0, false, false
}

func decodeKey(key int, flip bool) (slot int, reversed bool) {
	if !flip {
		return key, false
	}
	return key / 2, key%2 == 1
}

func (idx *Index) rebuild() {
	idx.tree = buildTree(idx.entries, idx.flip, idx.occupied)
	idx.agent.reset()
}
