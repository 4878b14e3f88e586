// Package spatial implements the path endpoint index used by the
// sort and join optimization operations: "nearest unconsumed
// endpoint to a query point" and "pop the first remaining path",
// backed by a k-d-tree (github.com/kyroy/kdtree) with lazy deletion
// tracked in a bitset (github.com/bits-and-blooms/bitset), since
// neither the teacher nor any pack repo ships a k-d-tree or occupancy
// bitmap of its own — the closest pack precedent for the bitmap is
// the per-rune usage tracking in the standalone boxesandglue font
// material, which uses the same bits-and-blooms/bitset package for an
// analogous "is this slot still live" occupancy question.
package spatial

import "math"

// Strategy decides when accumulated miss count (stale hits during
// pop_nearest) triggers a full tree rebuild.
type Strategy interface {
	threshold(total int) int
}

// Default rebuilds once misses reach 40% of the indexed entry count,
// floored at 200.
type defaultStrategy struct{}

func (defaultStrategy) threshold(total int) int {
	return floored200(int(math.Ceil(0.4 * float64(total))))
}

// Never disables rebuilding entirely.
type neverStrategy struct{}

func (neverStrategy) threshold(int) int { return math.MaxInt32 }

// thresholdStrategy rebuilds once misses reach a fixed count n.
type thresholdStrategy struct{ n int }

func (s thresholdStrategy) threshold(int) int { return s.n }

// ratioStrategy rebuilds once misses reach ceil(r*total), floored at 200.
type ratioStrategy struct{ r float64 }

func (s ratioStrategy) threshold(total int) int {
	return floored200(int(math.Ceil(s.r * float64(total))))
}

func floored200(n int) int {
	if n < 200 {
		return 200
	}
	return n
}

// Default is the 40%-floor-200 strategy.
func Default() Strategy { return defaultStrategy{} }

// Never disables rebuilding.
func Never() Strategy { return neverStrategy{} }

// Threshold rebuilds after exactly n misses.
func Threshold(n int) Strategy { return thresholdStrategy{n} }

// Ratio rebuilds after ceil(r*total) misses, floored at 200.
func Ratio(r float64) Strategy { return ratioStrategy{r} }

// reindexAgent counts misses against the active strategy and signals
// when a rebuild is due.
type reindexAgent struct {
	strategy Strategy
	misses   int
}

func newReindexAgent(s Strategy) *reindexAgent {
	if s == nil {
		s = Default()
	}
	return &reindexAgent{strategy: s}
}

func (a *reindexAgent) recordMiss(total int) bool {
	a.misses++
	return a.misses >= a.strategy.threshold(total)
}

func (a *reindexAgent) reset() { a.misses = 0 }
