package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/gogpu/pick"
)

func parseAssociation(s string) (pick.FieldAssociation, error) {
	switch strings.ToLower(s) {
	case "cells":
		return pick.FieldAssociationCells, nil
	case "points":
		return pick.FieldAssociationPoints, nil
	case "none":
		return pick.FieldAssociationNone, nil
	default:
		return 0, fmt.Errorf("unknown association %q", s)
	}
}

// parseInts parses exactly n comma-separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma-separated values", s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func parsePoint(s string) (image.Point, error) {
	v, err := parseInts(s, 2)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(v[0], v[1]), nil
}

func parseArea(s string) (pick.Area, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return pick.Area{}, err
	}
	return pick.NewArea(v[0], v[1], v[2], v[3]), nil
}

// parsePolygon parses space-separated "x,y" vertices.
func parsePolygon(s string) ([]image.Point, error) {
	var pts []image.Point
	for _, f := range strings.Fields(s) {
		p, err := parsePoint(f)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("polygon %q: need at least 3 vertices", s)
	}
	return pts, nil
}
