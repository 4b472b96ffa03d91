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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// The pipeline works in exactly one planar coordinate system: a UTM zone.
// The only geographic conversion supported is WGS84 long/lat into that
// zone, applied to vector input before it touches a grid.

// LongLatSR returns the WGS84 geographic spatial reference.
func LongLatSR() (*proj.SR, error) {
	sr, err := proj.Parse("+proj=longlat +datum=WGS84 +no_defs")
	if err != nil {
		return nil, fmt.Errorf("relief: parsing long/lat spatial reference: %v", err)
	}
	return sr, nil
}

// UTMSR returns the spatial reference for the given UTM zone. Zones run
// from 1 to 60; south selects the southern-hemisphere variant.
func UTMSR(zone int, south bool) (*proj.SR, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("relief: UTM zone %d is out of range [1, 60]", zone)
	}
	s := fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone)
	if south {
		s += " +south"
	}
	sr, err := proj.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("relief: parsing UTM zone %d spatial reference: %v", zone, err)
	}
	return sr, nil
}

// NewUTMTransform returns a transform from WGS84 long/lat coordinates to
// planar coordinates in the given UTM zone.
func NewUTMTransform(zone int, south bool) (proj.Transformer, error) {
	ll, err := LongLatSR()
	if err != nil {
		return nil, err
	}
	utm, err := UTMSR(zone, south)
	if err != nil {
		return nil, err
	}
	ct, err := ll.NewTransform(utm)
	if err != nil {
		return nil, fmt.Errorf("relief: building long/lat to UTM zone %d transform: %v", zone, err)
	}
	return ct, nil
}

// TransformPoint converts a geographic point to planar coordinates.
func TransformPoint(ct proj.Transformer, p geom.Point) (geom.Point, error) {
	g, err := p.Transform(ct)
	if err != nil {
		return geom.Point{}, fmt.Errorf("relief: transforming point (%g, %g): %v", p.X, p.Y, err)
	}
	return g.(geom.Point), nil
}

// TransformLineString converts a geographic polyline to planar coordinates.
func TransformLineString(ct proj.Transformer, l geom.LineString) (geom.LineString, error) {
	g, err := l.Transform(ct)
	if err != nil {
		return nil, fmt.Errorf("relief: transforming %d-point line: %v", len(l), err)
	}
	return g.(geom.LineString), nil
}

// TransformPolygon converts a geographic polygon to planar coordinates.
func TransformPolygon(ct proj.Transformer, p geom.Polygon) (geom.Polygon, error) {
	g, err := p.Transform(ct)
	if err != nil {
		return nil, fmt.Errorf("relief: transforming %d-ring polygon: %v", len(p), err)
	}
	return g.(geom.Polygon), nil
}
