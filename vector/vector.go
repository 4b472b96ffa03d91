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

// Package vector loads polygon, trail, and waypoint geometry from KML
// and shapefile sources, reprojects it into the planar coordinates of a
// height grid, and clips it to the grid's extent so the geometry can be
// rasterized into masks.
package vector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
	log "github.com/sirupsen/logrus"
)

// ErrNoGeometries is returned when none of a set of input files yields a
// usable geometry.
var ErrNoGeometries = errors.New("vector: no geometries could be loaded")

// A Collection holds geometry sorted by how it will be rasterized:
// polygons become filled regions, line strings become trails, and points
// become waypoints. All three slices may be used together or any may be
// empty.
type Collection struct {
	Polygons  []geom.Polygon
	Trails    []geom.LineString
	Waypoints []geom.Point
}

// Empty reports whether the collection holds no geometry at all.
func (c *Collection) Empty() bool {
	return len(c.Polygons) == 0 && len(c.Trails) == 0 && len(c.Waypoints) == 0
}

func (c *Collection) append(o *Collection) {
	c.Polygons = append(c.Polygons, o.Polygons...)
	c.Trails = append(c.Trails, o.Trails...)
	c.Waypoints = append(c.Waypoints, o.Waypoints...)
}

// LoadFiles reads every path into one collection, dispatching on file
// extension (.kml, .shp). A file that cannot be read or has an unknown
// extension is logged and skipped; it is an error only if no geometry at
// all could be loaded.
func LoadFiles(paths []string) (*Collection, error) {
	out := new(Collection)
	for _, p := range paths {
		var c *Collection
		var err error
		switch ext := strings.ToLower(filepath.Ext(p)); ext {
		case ".kml":
			c, err = LoadKML(p)
		case ".shp":
			c, err = LoadShapefile(p)
		default:
			err = fmt.Errorf("vector: unsupported file extension %q", ext)
		}
		if err != nil {
			log.WithError(err).Warnf("vector: skipping file %s", p)
			continue
		}
		out.append(c)
	}
	if out.Empty() {
		return nil, ErrNoGeometries
	}
	return out, nil
}

// ToPlanar reprojects every geometry in the collection with ct, which
// typically converts geographic long/lat coordinates into the UTM zone
// of the height grid. The result is a new collection.
func (c *Collection) ToPlanar(ct proj.Transformer) (*Collection, error) {
	out := &Collection{
		Polygons:  make([]geom.Polygon, 0, len(c.Polygons)),
		Trails:    make([]geom.LineString, 0, len(c.Trails)),
		Waypoints: make([]geom.Point, 0, len(c.Waypoints)),
	}
	for i, p := range c.Polygons {
		g, err := p.Transform(ct)
		if err != nil {
			return nil, fmt.Errorf("vector: reprojecting polygon %d: %w", i, err)
		}
		out.Polygons = append(out.Polygons, g.(geom.Polygon))
	}
	for i, t := range c.Trails {
		g, err := t.Transform(ct)
		if err != nil {
			return nil, fmt.Errorf("vector: reprojecting trail %d: %w", i, err)
		}
		out.Trails = append(out.Trails, g.(geom.LineString))
	}
	for i, w := range c.Waypoints {
		g, err := w.Transform(ct)
		if err != nil {
			return nil, fmt.Errorf("vector: reprojecting waypoint %d: %w", i, err)
		}
		out.Waypoints = append(out.Waypoints, g.(geom.Point))
	}
	return out, nil
}

// spatialItem adapts a geometry for r-tree storage, remembering which
// collection slot it came from.
type spatialItem struct {
	geom.Geom
	kind int // 0 polygon, 1 trail, 2 waypoint
	idx  int
}

// Clip returns the subset of the collection whose bounding boxes
// intersect b. Geometry wholly outside the grid extent is discarded
// here so that mask rasterization never sees it.
func (c *Collection) Clip(b *geom.Bounds) *Collection {
	tree := rtree.NewTree(25, 50)
	for i, p := range c.Polygons {
		tree.Insert(spatialItem{Geom: p, kind: 0, idx: i})
	}
	for i, t := range c.Trails {
		tree.Insert(spatialItem{Geom: t, kind: 1, idx: i})
	}
	for i, w := range c.Waypoints {
		tree.Insert(spatialItem{Geom: w, kind: 2, idx: i})
	}
	out := new(Collection)
	for _, item := range tree.SearchIntersect(b) {
		s := item.(spatialItem)
		switch s.kind {
		case 0:
			out.Polygons = append(out.Polygons, c.Polygons[s.idx])
		case 1:
			out.Trails = append(out.Trails, c.Trails[s.idx])
		case 2:
			out.Waypoints = append(out.Waypoints, c.Waypoints[s.idx])
		}
	}
	dropped := (len(c.Polygons) + len(c.Trails) + len(c.Waypoints)) -
		(len(out.Polygons) + len(out.Trails) + len(out.Waypoints))
	if dropped > 0 {
		log.Infof("vector: clipped away %d geometries outside %v", dropped, *b)
	}
	return out
}
