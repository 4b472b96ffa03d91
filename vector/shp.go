/*
Copyright © 2025 the Relief authors.
This file is part of Relief.

Relief is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Relief is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Relief.  If not, see <http://www.gnu.org/licenses/>.
*/

package vector

import (
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/geom"
	shpenc "github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
	log "github.com/sirupsen/logrus"

	"github.com/spatialrelief/relief"
)

// LoadShapefile reads point, polyline, and polygon shapes from a
// shapefile into a collection. Attribute fields are ignored; shape types
// other than the three geometry kinds are logged and skipped.
func LoadShapefile(path string) (*Collection, error) {
	r, err := goshp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vector: opening shapefile: %w", err)
	}
	defer r.Close()

	out := new(Collection)
	for r.Next() {
		i, shape := r.Shape()
		switch s := shape.(type) {
		case *goshp.Point:
			out.Waypoints = append(out.Waypoints, geom.Point{X: s.X, Y: s.Y})
		case *goshp.PolyLine:
			for _, part := range polyParts(s.Parts, s.Points) {
				out.Trails = append(out.Trails, geom.LineString(part))
			}
		case *goshp.Polygon:
			poly := geom.Polygon(polyParts(s.Parts, s.Points))
			if len(poly) > 0 {
				out.Polygons = append(out.Polygons, poly)
			}
		default:
			log.Warnf("vector: skipping shape %d of %s: unsupported type %T", i, path, shape)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("vector: reading shapefile %s: %w", path, err)
	}
	return out, nil
}

// polyParts splits a flat shapefile point array at the given part start
// offsets.
func polyParts(parts []int32, points []goshp.Point) []geom.Path {
	out := make([]geom.Path, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		part := make(geom.Path, 0, end-int(start))
		for _, p := range points[start:end] {
			part = append(part, geom.Point{X: p.X, Y: p.Y})
		}
		if len(part) > 0 {
			out = append(out, part)
		}
	}
	return out
}

// WriteGridShp writes the height grid's cell outlines to a shapefile at
// path, one square polygon per cell with its row and column as attribute
// fields. Shapefile sidecars (.dbf, .shx) already at the path are
// replaced along with the .shp itself.
func WriteGridShp(h *relief.HeightMap, path string) error {
	base := strings.TrimSuffix(path, ".shp")
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(base + ext)
	}
	fields := []goshp.Field{
		goshp.NumberField("row", 10),
		goshp.NumberField("col", 10),
	}
	enc, err := shpenc.NewEncoderFromFields(base+".shp", goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("vector: creating grid shapefile: %w", err)
	}
	xTick, yTick := h.Ticks()
	for y := 0; y < h.YRes-1; y++ {
		// Row 0 is the north edge, so planar y decreases with the row.
		y0 := h.Bounds.MaxY - float64(y)*yTick
		y1 := y0 - yTick
		for x := 0; x < h.XRes-1; x++ {
			x0 := h.Bounds.MinX + float64(x)*xTick
			x1 := x0 + xTick
			cell := geom.Polygon{{
				{X: x0, Y: y0}, {X: x1, Y: y0},
				{X: x1, Y: y1}, {X: x0, Y: y1},
				{X: x0, Y: y0},
			}}
			if err := enc.EncodeFields(cell, y, x); err != nil {
				return fmt.Errorf("vector: encoding grid cell (%d, %d): %w", x, y, err)
			}
		}
	}
	enc.Close()
	return nil
}
