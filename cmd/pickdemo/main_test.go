package main

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/backend"
	"golang.org/x/text/language"
)

func testConfig() config {
	return config{
		width:   8,
		height:  8,
		cols:    2,
		rows:    2,
		assoc:   pick.FieldAssociationCells,
		area:    pick.NewArea(0, 0, 7, 7),
		scale:   1,
		lang:    language.English,
		backend: backend.BackendSoftware,
	}
}

func TestRunSelection(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, testConfig()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "6 nodes selected" {
		t.Fatalf("first line = %q, want %q", lines[0], "6 nodes selected")
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "tile[0,0] block 0:") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(out.String(), "tile[0,1] block 1:") {
		t.Errorf("split tile block 1 missing:\n%s", out.String())
	}
}

func TestRunPixel(t *testing.T) {
	cfg := testConfig()
	cfg.at = &image.Point{X: 1, Y: 1}
	cfg.captureZ = true

	var out bytes.Buffer
	if err := run(&out, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "tile[0,0] block 0 at (1,1): id ") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "depth 0.333") {
		t.Errorf("output %q lacks the tile depth", got)
	}
}

func TestRunDump(t *testing.T) {
	cfg := testConfig()
	cfg.dumpDir = filepath.Join(t.TempDir(), "passes")

	var out bytes.Buffer
	if err := run(&out, cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.dumpDir, "actor.png")); err != nil {
		t.Errorf("actor.png not written: %v", err)
	}
	if !strings.Contains(out.String(), "pass images written to") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.backend = "vulkan"
	if err := run(&bytes.Buffer{}, cfg); !errors.Is(err, backend.ErrBackendNotAvailable) {
		t.Errorf("run() error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestBuildSceneInvalidGrid(t *testing.T) {
	if err := buildScene(backend.NewSoftwareBackend(8, 8), 8, 8, 0, 2); err == nil {
		t.Error("buildScene() with zero columns should fail")
	}
}

func TestBuildSceneIDs(t *testing.T) {
	r := backend.NewSoftwareBackend(8, 8)
	if err := buildScene(r, 8, 8, 2, 2); err != nil {
		t.Fatalf("buildScene() error = %v", err)
	}
	var ids []int64
	for _, a := range r.Actors() {
		for _, m := range a.Blocks {
			ids = append(ids, m.CellIDs...)
		}
	}
	want := []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if !slices.Equal(ids, want) {
		t.Errorf("cell ids = %v, want %v", ids, want)
	}
}

func TestParseAssociation(t *testing.T) {
	tests := []struct {
		in      string
		want    pick.FieldAssociation
		wantErr bool
	}{
		{"cells", pick.FieldAssociationCells, false},
		{"Points", pick.FieldAssociationPoints, false},
		{"none", pick.FieldAssociationNone, false},
		{"edges", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAssociation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAssociation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseAssociation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseArea(t *testing.T) {
	a, err := parseArea("9, 1,2,7")
	if err != nil {
		t.Fatalf("parseArea() error = %v", err)
	}
	if want := pick.NewArea(2, 1, 9, 7); a != want {
		t.Errorf("parseArea() = %v, want %v", a, want)
	}
	for _, bad := range []string{"1,2,3", "a,b,c,d", ""} {
		if _, err := parseArea(bad); err == nil {
			t.Errorf("parseArea(%q) should fail", bad)
		}
	}
}

func TestParsePolygon(t *testing.T) {
	pts, err := parsePolygon("0,0 4,0 2,3")
	if err != nil {
		t.Fatalf("parsePolygon() error = %v", err)
	}
	want := []image.Point{{0, 0}, {4, 0}, {2, 3}}
	if !slices.Equal(pts, want) {
		t.Errorf("parsePolygon() = %v, want %v", pts, want)
	}
	if _, err := parsePolygon("0,0 4,0"); err == nil {
		t.Error("two vertices should fail")
	}
	if _, err := parsePolygon("0,0 4;0 2,3"); err == nil {
		t.Error("malformed vertex should fail")
	}
}
