// Package optimize implements the two pen-plotter travel-minimization
// operations that reorder or merge a path list: Sort (greedy
// nearest-neighbor reordering) and Join (greedy chain concatenation).
// Both are grounded on optimization.rs's sort_paths_with_builder and
// join_paths, built on top of the spatial package's index.
package optimize

import (
	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/spatial"
	"github.com/vsvg-go/vsvg/vpath"
)

// Sort reorders paths in place to minimize pen-up travel distance
// using a greedy nearest-neighbor walk starting at the origin, per
// spec.md §4.E. Equivalent to SortWithBuilder with the default reindex
// strategy.
func Sort(paths []*vpath.Path, flip bool) {
	SortWithBuilder(paths, flip, spatial.Default())
}

// SortWithBuilder is Sort with an explicit reindex strategy.
func SortWithBuilder(paths []*vpath.Path, flip bool, strategy spatial.Strategy) {
	if len(paths) <= 1 {
		return
	}

	idx := buildIndex(paths, flip, strategy)
	newPaths := make([]*vpath.Path, 0, len(paths))
	cursor := geom.ZeroPoint

	for {
		slot, reversed, ok := idx.PopNearest(cursor)
		if !ok {
			break
		}
		p := paths[slot]
		if reversed {
			p.Flip()
		}
		newPaths = append(newPaths, p)
		if next, has := p.Last(); has {
			cursor = next
		}
	}
	for {
		slot, ok := idx.PopFirst()
		if !ok {
			break
		}
		newPaths = append(newPaths, paths[slot])
	}

	copy(paths, newPaths)
}

// Join concatenates paths whose endpoints fall within tolerance,
// optionally reversing one side to permit more joins, reducing the
// total path count. Per spec.md §4.E ("Join (path concatenation)"),
// greedy chain building: extend the current chain while the nearest
// remaining candidate connects within tolerance; otherwise close the
// chain and start a new one from that candidate.
func Join(paths []*vpath.Path, tolerance float64, flip bool) []*vpath.Path {
	if len(paths) <= 1 {
		return paths
	}

	idx := buildIndex(paths, flip, spatial.Default())
	var result []*vpath.Path

	firstSlot, ok := idx.PopFirst()
	if !ok {
		return result
	}
	current := paths[firstSlot]

	for {
		end, hasEnd := current.Last()
		if !hasEnd {
			result = append(result, current)
			slot, ok := idx.PopFirst()
			if !ok {
				break
			}
			current = paths[slot]
			continue
		}

		slot, reversed, ok := idx.PopNearest(end)
		if !ok {
			result = append(result, current)
			break
		}

		candidate := paths[slot]
		if reversed {
			candidate.Flip()
		}
		candidateStart, _ := candidate.First()

		if end.Dist(candidateStart) <= tolerance {
			current.Join(candidate, tolerance)
		} else {
			result = append(result, current)
			current = candidate
		}
	}

	for {
		slot, ok := idx.PopFirst()
		if !ok {
			break
		}
		result = append(result, paths[slot])
	}
	return result
}

func buildIndex(paths []*vpath.Path, flip bool, strategy spatial.Strategy) *spatial.Index {
	items := make([]spatial.Endpoints, len(paths))
	for i, p := range paths {
		start, hasStart := p.First()
		end, hasEnd := p.Last()
		if !hasEnd {
			end = start
		}
		items[i] = spatial.Endpoints{Start: start, End: end, Valid: hasStart}
	}
	return spatial.New(items, flip, strategy)
}
