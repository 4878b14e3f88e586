// Package document implements the top-level container of the pen-plotter
// pipeline: an ordered mapping from layer ID to Layer plus document-wide
// Metadata. Grounded on the teacher's SvgIcon-to-image aggregation in
// svgicon (a named set of icons rendered together), generalized here to
// an ordered, independently addressable set of plotter layers.
package document

import (
	"sort"
	"sync"

	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/layer"
	"github.com/vsvg-go/vsvg/spatial"
	"github.com/vsvg-go/vsvg/vpath"
)

// Document is an ordered mapping from layer.ID to *layer.Layer plus
// Metadata. Iteration (LayerIDs, bulk ops) always visits layers in
// ascending ID order, regardless of insertion order.
type Document struct {
	Layers   map[layer.ID]*layer.Layer
	Metadata Metadata
}

// New returns an empty document.
func New() *Document {
	return &Document{Layers: make(map[layer.ID]*layer.Layer)}
}

// NewWithPageSize returns an empty document with the given page size.
func NewWithPageSize(ps PageSize) *Document {
	d := New()
	d.Metadata.PageSize = &ps
	return d
}

// LayerIDs returns every layer ID present, in ascending order.
func (d *Document) LayerIDs() []layer.ID {
	ids := make([]layer.ID, 0, len(d.Layers))
	for id := range d.Layers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EnsureLayer returns the layer at id, creating an empty one if absent.
func (d *Document) EnsureLayer(id layer.ID) *layer.Layer {
	if l, ok := d.Layers[id]; ok {
		return l
	}
	l := layer.New()
	d.Layers[id] = l
	return l
}

// PushPath appends path to the layer at id, creating the layer if it
// does not yet exist.
func (d *Document) PushPath(id layer.ID, p *vpath.Path) {
	d.EnsureLayer(id).Push(p)
}

// Bounds is the union of every layer's bounding box.
func (d *Document) Bounds() geom.Rect {
	r := geom.EmptyRect
	for _, l := range d.Layers {
		r = r.Union(l.Bounds())
	}
	return r
}

// forEachLayer runs fn over every layer concurrently, mirroring
// layer.parallelMap's index-addressed fan-out but keyed by LayerID
// instead of slice position.
func forEachLayer(layers map[layer.ID]*layer.Layer, fn func(*layer.Layer)) {
	var wg sync.WaitGroup
	wg.Add(len(layers))
	for _, l := range layers {
		go func(l *layer.Layer) {
			defer wg.Done()
			fn(l)
		}(l)
	}
	wg.Wait()
}

// Transform applies an affine transform to every layer, in place.
func (d *Document) Transform(m geom.Affine) {
	forEachLayer(d.Layers, func(l *layer.Layer) { l.Transform(m) })
}

// Crop clips every layer against rect, in place.
func (d *Document) Crop(rect geom.Rect) {
	forEachLayer(d.Layers, func(l *layer.Layer) { l.Paths = l.Crop(rect) })
}

// Explode splits every compound path, in every layer, into one path
// per subpath, in place.
func (d *Document) Explode() {
	forEachLayer(d.Layers, func(l *layer.Layer) { l.Explode() })
}

// Sort reorders every layer's paths independently to minimize pen-up
// travel, using the default reindex strategy.
func (d *Document) Sort(flip bool) {
	forEachLayer(d.Layers, func(l *layer.Layer) { l.Sort(flip) })
}

// SortWithBuilder is Sort with an explicit reindex strategy.
func (d *Document) SortWithBuilder(flip bool, strategy spatial.Strategy) {
	forEachLayer(d.Layers, func(l *layer.Layer) { l.SortWithBuilder(flip, strategy) })
}

// JoinPaths joins each layer's paths independently; paths never join
// across a layer boundary.
func (d *Document) JoinPaths(tolerance float64, flip bool) {
	forEachLayer(d.Layers, func(l *layer.Layer) { l.JoinPaths(tolerance, flip) })
}

// Flatten returns a new Document whose layers hold only Polyline
// paths, decomposed within tolerance; the receiver is unchanged. The
// result's Source metadata gains a " (flattened)" suffix.
func (d *Document) Flatten(tolerance float64) *Document {
	out := &Document{
		Layers:   make(map[layer.ID]*layer.Layer, len(d.Layers)),
		Metadata: d.Metadata.WithSourceSuffix(" (flattened)"),
	}
	for id, l := range d.Layers {
		flat := layer.New()
		flat.Metadata = l.Metadata
		flat.Paths = l.Flatten(tolerance)
		out.Layers[id] = flat
	}
	return out
}

// BezierHandles returns a new Document holding, per layer, the
// control-polygon edges of every curve segment, for debug rendering.
// The result's Source metadata gains a " (control points)" suffix.
func (d *Document) BezierHandles() *Document {
	out := &Document{
		Layers:   make(map[layer.ID]*layer.Layer, len(d.Layers)),
		Metadata: d.Metadata.WithSourceSuffix(" (control points)"),
	}
	for id, l := range d.Layers {
		handles := layer.New()
		handles.Metadata = l.Metadata
		handles.Paths = l.BezierHandles()
		out.Layers[id] = handles
	}
	return out
}

// CenterContent translates every layer so the document's content is
// centered on the page: on the page rectangle if a page size is set,
// otherwise on the origin (bounds' minimum corner moves to (0, 0)).
// A document with no content is left untouched.
func (d *Document) CenterContent() {
	bounds := d.Bounds()
	if bounds.IsEmpty() {
		return
	}

	var dx, dy float64
	if d.Metadata.PageSize != nil {
		w, h := d.Metadata.PageSize.ToPixels()
		curCenterX := (bounds.MinX + bounds.MaxX) / 2
		curCenterY := (bounds.MinY + bounds.MaxY) / 2
		dx = w/2 - curCenterX
		dy = h/2 - curCenterY
	} else {
		dx = -bounds.MinX
		dy = -bounds.MinY
	}

	d.Transform(geom.Identity.Translate(dx, dy))
}

// Merge appends other's layers onto the receiver's, merging metadata
// where layer IDs collide and adopting other's layers verbatim
// otherwise. The receiver's own Metadata is unchanged.
func (d *Document) Merge(other *Document) {
	for id, l := range other.Layers {
		if existing, ok := d.Layers[id]; ok {
			existing.Merge(l)
		} else {
			d.Layers[id] = l
		}
	}
}
