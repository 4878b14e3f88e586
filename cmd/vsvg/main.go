// Command vsvg is a thin dispatcher exercising the core library
// end-to-end: read an SVG, run one bulk operation, write it back out.
// Grounded on the teacher's absence of a CLI framework (oksvg ships no
// cmd/ at all, so the stdlib flag package is the teacher's own
// implicit choice here) - every subcommand is a few lines composing
// svgio and document.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/vsvg-go/vsvg/config"
	"github.com/vsvg-go/vsvg/geom"
	"github.com/vsvg-go/vsvg/hatch"
	"github.com/vsvg-go/vsvg/layer"
	"github.com/vsvg-go/vsvg/svgio"
	"github.com/vsvg-go/vsvg/vpath"
)

// loadConfig loads a TOML config from path, falling back to
// config.Default() when path is empty or fails to load - a CLI never
// hard-fails on a missing settings file, it just warns and proceeds
// with built-in defaults.
func loadConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Println("vsvg:", err)
		return config.Default()
	}
	return cfg
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = cmdInfo(os.Args[2:])
	case "sort":
		err = cmdSort(os.Args[2:])
	case "join":
		err = cmdJoin(os.Args[2:])
	case "crop":
		err = cmdCrop(os.Args[2:])
	case "hatch":
		err = cmdHatch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "vsvg:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vsvg <info|sort|join|crop|hatch> ...")
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: vsvg info <file>")
	}

	doc, err := svgio.ReadFile(fs.Arg(0), svgio.WarnErrorMode)
	if err != nil {
		return err
	}

	for _, id := range doc.LayerIDs() {
		l := doc.Layers[id]
		stats := l.ComputeStats()
		name := fmt.Sprintf("layer %d", id)
		if l.Metadata.Name != nil {
			name = fmt.Sprintf("%s (%q)", name, *l.Metadata.Name)
		}
		fmt.Printf("%s: %d paths, %d points\n", name, stats.PathCount, stats.PointCount)
	}
	return nil
}

func cmdSort(args []string) error {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	flip := fs.Bool("flip", false, "allow flipping a path's direction to shorten pen-up travel")
	configPath := fs.String("config", "", "path to a vsvg.toml overriding the reindex strategy")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: vsvg sort <in> <out> [-flip] [-config=path]")
	}
	cfg := loadConfig(*configPath)

	doc, err := svgio.ReadFile(fs.Arg(0), svgio.WarnErrorMode)
	if err != nil {
		return err
	}
	doc.SortWithBuilder(*flip, cfg.ReindexStrategy)
	return svgio.WriteFile(fs.Arg(1), doc)
}

func cmdJoin(args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	tolerance := fs.Float64("tolerance", -1, "maximum gap between joinable path endpoints (defaults to the config's join tolerance)")
	flip := fs.Bool("flip", false, "allow flipping a path's direction when joining")
	configPath := fs.String("config", "", "path to a vsvg.toml overriding the default join tolerance")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: vsvg join <in> <out> [-tolerance=F] [-flip] [-config=path]")
	}
	cfg := loadConfig(*configPath)
	tol := *tolerance
	if tol < 0 {
		tol = cfg.JoinTolerance
	}

	doc, err := svgio.ReadFile(fs.Arg(0), svgio.WarnErrorMode)
	if err != nil {
		return err
	}
	doc.JoinPaths(tol, *flip)
	return svgio.WriteFile(fs.Arg(1), doc)
}

func cmdCrop(args []string) error {
	fs := flag.NewFlagSet("crop", flag.ExitOnError)
	rect := fs.String("rect", "", "x0,y0,x1,y1")
	fs.Parse(args)
	if fs.NArg() != 2 || *rect == "" {
		return fmt.Errorf("usage: vsvg crop <in> <out> -rect=x0,y0,x1,y1")
	}
	r, err := parseRect(*rect)
	if err != nil {
		return err
	}

	doc, err := svgio.ReadFile(fs.Arg(0), svgio.WarnErrorMode)
	if err != nil {
		return err
	}
	doc.Crop(r)
	return svgio.WriteFile(fs.Arg(1), doc)
}

func cmdHatch(args []string) error {
	fs := flag.NewFlagSet("hatch", flag.ExitOnError)
	layerN := fs.Uint("layer", 0, "layer whose closed paths to hatch")
	spacing := fs.Float64("spacing", 2, "distance between hatch lines, in pixels")
	angle := fs.Float64("angle", 0, "hatch angle, in degrees")
	inset := fs.Bool("inset", true, "inset the polygon by half the spacing before hatching")
	join := fs.Bool("join", true, "join adjacent hatch lines that end close together")
	configPath := fs.String("config", "", "path to a vsvg.toml overriding the flattening tolerance")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: vsvg hatch <in> <out> -layer=N -spacing=F [-angle=F] [-inset] [-join] [-config=path]")
	}
	cfg := loadConfig(*configPath)

	doc, err := svgio.ReadFile(fs.Arg(0), svgio.WarnErrorMode)
	if err != nil {
		return err
	}

	l, ok := doc.Layers[layer.ID(*layerN)]
	if !ok {
		return fmt.Errorf("layer %d not found", *layerN)
	}
	poly, ok := layerToPolygon(l, cfg.FlattenTolerance)
	if !ok {
		return fmt.Errorf("layer %d has no closed path to hatch", *layerN)
	}

	params := hatch.NewParams(*spacing).
		WithAngle(*angle * math.Pi / 180).
		WithInset(*inset).
		WithJoinLines(*join)
	for _, p := range hatch.Hatch(poly, params) {
		l.Push(p)
	}

	return svgio.WriteFile(fs.Arg(1), doc)
}

func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("rect wants 4 comma-separated values, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("bad rect value %q: %w", p, err)
		}
		v[i] = f
	}
	return geom.Rect{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}, nil
}

// layerToPolygon flattens a layer's paths and takes its first closed
// polyline as the hatch exterior, every other closed polyline as a
// hole - a direct reading of hatch.rs's hatch_polygon contract, which
// expects one exterior ring plus zero or more hole rings rather than
// an arbitrary path soup.
func layerToPolygon(l *layer.Layer, tolerance float64) (hatch.Polygon, bool) {
	var poly hatch.Polygon
	for _, p := range l.Paths {
		for _, frag := range p.Flatten(tolerance) {
			pl, ok := frag.Data.(*vpath.Polyline)
			if !ok {
				continue
			}
			// Flatten closes a ring by repeating its first point at the end
			pts, closed := pl.Points, pl.Closed
			if n := len(pts); !closed && n > 1 && pts[0].Equal(pts[n-1]) {
				pts, closed = pts[:n-1], true
			}
			if !closed || len(pts) < 3 {
				continue
			}
			if poly.Exterior == nil {
				poly.Exterior = pts
			} else {
				poly.Holes = append(poly.Holes, pts)
			}
		}
	}
	return poly, poly.Exterior != nil
}
