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

package relief

import (
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func TestUTMSRZoneRange(t *testing.T) {
	for _, zone := range []int{0, 61, -3} {
		if _, err := UTMSR(zone, false); err == nil {
			t.Errorf("zone %d: got nil error", zone)
		}
	}
	if _, err := UTMSR(10, false); err != nil {
		t.Errorf("zone 10: %v", err)
	}
}

func TestTransformCentralMeridian(t *testing.T) {
	// The central meridian of UTM zone 10 is 123°W; a point on it at the
	// equator maps to the false easting, 500 km.
	ct, err := NewUTMTransform(10, false)
	if err != nil {
		t.Fatal(err)
	}
	got, err := TransformPoint(ct, geom.Point{X: -123, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.X-500000) > 1e-2 {
		t.Errorf("easting: got %g, want 500000", got.X)
	}
	if math.Abs(got.Y) > 1e-2 {
		t.Errorf("northing: got %g, want 0", got.Y)
	}
}

func TestTransformSouthernHemisphere(t *testing.T) {
	ct, err := NewUTMTransform(10, true)
	if err != nil {
		t.Fatal(err)
	}
	got, err := TransformPoint(ct, geom.Point{X: -123, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	// The southern variant adds a 10000 km false northing.
	if math.Abs(got.Y-10000000) > 1e-2 {
		t.Errorf("northing: got %g, want 10000000", got.Y)
	}
}

func TestTransformLineString(t *testing.T) {
	ct, err := NewUTMTransform(10, false)
	if err != nil {
		t.Fatal(err)
	}
	line := geom.LineString{{X: -123, Y: 45}, {X: -122.9, Y: 45.1}}
	got, err := TransformLineString(ct, line)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(line) {
		t.Fatalf("got %d points, want %d", len(got), len(line))
	}
	for i, p := range got {
		if math.Abs(p.X) > 1e7 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("point %d: implausible planar coordinate %+v", i, p)
		}
	}
}
