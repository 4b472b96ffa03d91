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
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
)

// KML coordinates are "lon,lat[,alt]" tuples separated by whitespace.
// Only the Placemark geometry types used by mapping tools for region,
// route, and marker export are read; styles and attributes are ignored.

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	Ring kmlLinearRing `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlCoordinates struct {
	Coordinates string `xml:"coordinates"`
}

type kmlGeometry struct {
	Points      []kmlCoordinates `xml:"Point"`
	LineStrings []kmlCoordinates `xml:"LineString"`
	Polygons    []kmlPolygon     `xml:"Polygon"`
}

type kmlPlacemark struct {
	kmlGeometry
	MultiGeometries []kmlGeometry `xml:"MultiGeometry"`
}

// kmlFolder matches Document and Folder elements alike; KML allows them
// to nest arbitrarily.
type kmlFolder struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlFolder    `xml:"Folder"`
	Documents  []kmlFolder    `xml:"Document"`
}

type kmlRoot struct {
	XMLName xml.Name `xml:"kml"`
	kmlFolder
}

// LoadKML reads every Point, LineString, and Polygon placemark in a KML
// file into a collection, recursing through folders and multi-geometries.
// Coordinates are left in the file's native long/lat degrees.
func LoadKML(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vector: reading kml file: %w", err)
	}
	var root kmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("vector: parsing kml file %s: %w", path, err)
	}
	out := new(Collection)
	if err := collectKMLFolder(&root.kmlFolder, out); err != nil {
		return nil, fmt.Errorf("vector: kml file %s: %w", path, err)
	}
	return out, nil
}

func collectKMLFolder(f *kmlFolder, out *Collection) error {
	for i := range f.Placemarks {
		pm := &f.Placemarks[i]
		if err := collectKMLGeometry(&pm.kmlGeometry, out); err != nil {
			return err
		}
		for j := range pm.MultiGeometries {
			if err := collectKMLGeometry(&pm.MultiGeometries[j], out); err != nil {
				return err
			}
		}
	}
	for i := range f.Folders {
		if err := collectKMLFolder(&f.Folders[i], out); err != nil {
			return err
		}
	}
	for i := range f.Documents {
		if err := collectKMLFolder(&f.Documents[i], out); err != nil {
			return err
		}
	}
	return nil
}

func collectKMLGeometry(g *kmlGeometry, out *Collection) error {
	for _, p := range g.Points {
		pts, err := parseCoordinates(p.Coordinates)
		if err != nil {
			return err
		}
		out.Waypoints = append(out.Waypoints, pts...)
	}
	for _, l := range g.LineStrings {
		pts, err := parseCoordinates(l.Coordinates)
		if err != nil {
			return err
		}
		if len(pts) > 0 {
			out.Trails = append(out.Trails, geom.LineString(pts))
		}
	}
	for _, p := range g.Polygons {
		outer, err := parseCoordinates(p.Outer.Ring.Coordinates)
		if err != nil {
			return err
		}
		poly := geom.Polygon{outer}
		for _, inner := range p.Inner {
			ring, err := parseCoordinates(inner.Ring.Coordinates)
			if err != nil {
				return err
			}
			poly = append(poly, ring)
		}
		out.Polygons = append(out.Polygons, poly)
	}
	return nil
}

// parseCoordinates splits a KML coordinate string into points, ignoring
// any altitude component.
func parseCoordinates(s string) ([]geom.Point, error) {
	var pts []geom.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			return nil, fmt.Errorf("malformed coordinate tuple %q", tuple)
		}
		lon, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing longitude %q: %w", vals[0], err)
		}
		lat, err := strconv.ParseFloat(vals[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing latitude %q: %w", vals[1], err)
		}
		pts = append(pts, geom.Point{X: lon, Y: lat})
	}
	return pts, nil
}
