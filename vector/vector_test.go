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
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"

	"github.com/spatialrelief/relief"
)

const testKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>summit</name>
      <Point><coordinates>-122.5,45.5,1200</coordinates></Point>
    </Placemark>
    <Folder>
      <Placemark>
        <LineString>
          <coordinates>
            -122.5,45.5,0 -122.4,45.6,0 -122.3,45.6,0
          </coordinates>
        </LineString>
      </Placemark>
      <Placemark>
        <Polygon>
          <outerBoundaryIs>
            <LinearRing>
              <coordinates>-122.5,45.5 -122.4,45.5 -122.4,45.6 -122.5,45.6 -122.5,45.5</coordinates>
            </LinearRing>
          </outerBoundaryIs>
        </Polygon>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func writeTestKML(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.kml")
	if err := os.WriteFile(path, []byte(testKML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKML(t *testing.T) {
	c, err := LoadKML(writeTestKML(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Waypoints) != 1 || len(c.Trails) != 1 || len(c.Polygons) != 1 {
		t.Fatalf("got %d waypoints, %d trails, %d polygons; want 1 of each",
			len(c.Waypoints), len(c.Trails), len(c.Polygons))
	}
	wantPoint := geom.Point{X: -122.5, Y: 45.5}
	if !reflect.DeepEqual(c.Waypoints[0], wantPoint) {
		t.Errorf("waypoint: got %+v, want %+v", c.Waypoints[0], wantPoint)
	}
	if n := len(c.Trails[0]); n != 3 {
		t.Errorf("trail vertex count: got %d, want 3", n)
	}
	if n := len(c.Polygons[0][0]); n != 5 {
		t.Errorf("polygon ring vertex count: got %d, want 5", n)
	}
}

func TestLoadKMLMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.kml")
	if err := os.WriteFile(path, []byte("<kml><Document><Placemark"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKML(path); err == nil {
		t.Error("malformed kml: got nil error")
	}
}

func TestLoadFilesNoGeometries(t *testing.T) {
	_, err := LoadFiles([]string{filepath.Join(t.TempDir(), "missing.kml")})
	if !errors.Is(err, ErrNoGeometries) {
		t.Errorf("got error %v, want ErrNoGeometries", err)
	}
}

func TestClip(t *testing.T) {
	c := &Collection{
		Polygons: []geom.Polygon{
			{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}},
			{{{X: 100, Y: 100}, {X: 101, Y: 100}, {X: 101, Y: 101}, {X: 100, Y: 101}, {X: 100, Y: 100}}},
		},
		Trails: []geom.LineString{
			{{X: 0, Y: 0}, {X: 2, Y: 2}},
			{{X: 200, Y: 200}, {X: 201, Y: 201}},
		},
		Waypoints: []geom.Point{
			{X: 1, Y: 1},
			{X: 300, Y: 300},
		},
	}
	b := &geom.Bounds{Min: geom.Point{X: -1, Y: -1}, Max: geom.Point{X: 10, Y: 10}}
	got := c.Clip(b)
	if len(got.Polygons) != 1 || len(got.Trails) != 1 || len(got.Waypoints) != 1 {
		t.Fatalf("got %d polygons, %d trails, %d waypoints; want 1 of each",
			len(got.Polygons), len(got.Trails), len(got.Waypoints))
	}
	if !reflect.DeepEqual(got.Waypoints[0], c.Waypoints[0]) {
		t.Errorf("clip kept the wrong waypoint: %+v", got.Waypoints[0])
	}
}

func TestGridShpRoundTrip(t *testing.T) {
	data := sparse.ZerosDense(3, 4)
	h := &relief.HeightMap{
		Data: data,
		XRes: 4,
		YRes: 3,
		Bounds: relief.Extent{
			MinX: 0, MaxX: 30, MinY: 0, MaxY: 20, MinZ: 0, MaxZ: 1,
		},
	}
	path := filepath.Join(t.TempDir(), "grid.shp")
	if err := WriteGridShp(h, path); err != nil {
		t.Fatal(err)
	}
	c, err := LoadShapefile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := (h.XRes - 1) * (h.YRes - 1)
	if len(c.Polygons) != want {
		t.Fatalf("round trip: got %d polygons, want %d", len(c.Polygons), want)
	}
	// The first cell outline starts at the grid's northwest corner.
	first := c.Polygons[0][0][0]
	if first.X != h.Bounds.MinX || first.Y != h.Bounds.MaxY {
		t.Errorf("first cell corner: got %+v, want (%g, %g)", first, h.Bounds.MinX, h.Bounds.MaxY)
	}
}
