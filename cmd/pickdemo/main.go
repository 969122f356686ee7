// Command pickdemo picks from a synthetic tiled scene and prints what was
// hit. The scene is drawn by a registered picking backend, "software" by
// default.
//
// Usage:
//
//	pickdemo -rect 0,0,31,23
//	pickdemo -poly "2,2 40,4 20,30" -assoc points
//	pickdemo -at 17,9 -dist 3 -z
//	pickdemo -dump out -scale 8
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/backend"
	"github.com/gogpu/pick/debugview"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	width, height int
	cols, rows    int
	assoc         pick.FieldAssociation
	captureZ      bool
	area          pick.Area
	poly          []image.Point
	at            *image.Point
	dist          int
	dumpDir       string
	scale         int
	lang          language.Tag
	backend       string
}

func main() {
	var (
		width    = flag.Int("width", 64, "viewport width in pixels")
		height   = flag.Int("height", 48, "viewport height in pixels")
		cols     = flag.Int("cols", 4, "tile columns")
		rows     = flag.Int("rows", 3, "tile rows")
		assoc    = flag.String("assoc", "cells", "field association: cells, points or none")
		captureZ = flag.Bool("z", false, "capture depth values")
		rect     = flag.String("rect", "", "selection rectangle x1,y1,x2,y2 (default: whole viewport)")
		poly     = flag.String("poly", "", "selection polygon \"x,y x,y x,y ...\" relative to the rectangle")
		at       = flag.String("at", "", "report the pixel x,y instead of a selection")
		dist     = flag.Int("dist", 0, "search radius for -at")
		dumpDir  = flag.String("dump", "", "write false-colour pass images into this directory")
		scale    = flag.Int("scale", 4, "upscale factor for -dump")
		lang     = flag.String("lang", "en", "output language tag")
		verbose  = flag.Bool("v", false, "log capture diagnostics to stderr")
		name     = flag.String("backend", backend.BackendSoftware, "picking backend: "+strings.Join(backend.Available(), ", "))
	)
	flag.Parse()

	if *verbose {
		pick.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config{
		width:    *width,
		height:   *height,
		cols:     *cols,
		rows:     *rows,
		captureZ: *captureZ,
		dist:     *dist,
		dumpDir:  *dumpDir,
		scale:    *scale,
		area:     pick.NewArea(0, 0, *width-1, *height-1),
		backend:  *name,
	}

	var err error
	if cfg.assoc, err = parseAssociation(*assoc); err != nil {
		log.Fatal(err)
	}
	if *rect != "" {
		if cfg.area, err = parseArea(*rect); err != nil {
			log.Fatal(err)
		}
	}
	if *poly != "" {
		if cfg.poly, err = parsePolygon(*poly); err != nil {
			log.Fatal(err)
		}
	}
	if *at != "" {
		p, err := parsePoint(*at)
		if err != nil {
			log.Fatal(err)
		}
		cfg.at = &p
	}
	if cfg.lang, err = language.Parse(*lang); err != nil {
		log.Fatalf("invalid -lang: %v", err)
	}

	if err := run(os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}

// run captures the scene described by cfg and writes the report to w.
func run(w io.Writer, cfg config) error {
	b, err := backend.New(cfg.backend, backend.Config{Width: cfg.width, Height: cfg.height})
	if err != nil {
		return err
	}
	defer b.Close()
	if err := buildScene(b, cfg.width, cfg.height, cfg.cols, cfg.rows); err != nil {
		return err
	}

	a := cfg.area
	opts := append(b.Options(),
		pick.WithArea(a.XMin, a.YMin, a.XMax, a.YMax),
		pick.WithFieldAssociation(cfg.assoc),
		pick.WithCaptureZValues(cfg.captureZ),
		pick.WithProcessID(0),
	)
	s := pick.NewSelector(opts...)

	if err := s.CaptureBuffers(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	defer s.ReleasePixBuffers()

	p := message.NewPrinter(cfg.lang)
	switch {
	case cfg.at != nil:
		info, pos := s.GetPixelInformation(*cfg.at, cfg.dist)
		printPixel(p, w, info, pos)
	case cfg.poly != nil:
		printSelection(p, w, s.GeneratePolygonSelection(cfg.poly))
	default:
		area := s.Area()
		printSelection(p, w, s.GenerateSelection(area.XMin, area.YMin, area.XMax, area.YMax))
	}

	if cfg.dumpDir != "" {
		if err := os.MkdirAll(cfg.dumpDir, 0o755); err != nil {
			return err
		}
		paths, err := debugview.Dump(s, cfg.dumpDir, cfg.scale)
		if err != nil {
			return err
		}
		p.Fprintf(w, "%d pass images written to %s\n", len(paths), cfg.dumpDir)
	}
	return nil
}

func printSelection(p *message.Printer, w io.Writer, sel *pick.Selection) {
	p.Fprintf(w, "%d nodes selected\n", sel.Len())
	for _, n := range sel.Nodes() {
		p.Fprintf(w, "  %v block %d: %d ids", n.Prop, n.CompositeIndex, n.NumAttributes())
		if n.ProcessID >= 0 {
			p.Fprintf(w, ", process %d", n.ProcessID)
		}
		if n.HasDepth {
			p.Fprintf(w, ", depth %.3f", n.MinDepth)
		}
		p.Fprintf(w, " %v\n", n.AttributeIDs())
	}
}

func printPixel(p *message.Printer, w io.Writer, info pick.PixelInformation, pos image.Point) {
	if !info.Valid {
		p.Fprintf(w, "nothing found\n")
		return
	}
	p.Fprintf(w, "%v block %d at (%d,%d): id %d", info.Prop, info.CompositeIndex, pos.X, pos.Y, info.AttributeID)
	if info.HasDepth {
		p.Fprintf(w, ", depth %.3f", info.Depth)
	}
	p.Fprintf(w, "\n")
}
