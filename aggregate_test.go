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
	"errors"
	"reflect"
	"testing"
)

// testBounds is a 4 x 4 planar extent whose 5 x 5 grid has unit cells.
var testBounds = Extent{MinX: 0, MaxX: 4, MinY: 0, MaxY: 4, MinZ: 0, MaxZ: 100}

func TestDeriveResolution(t *testing.T) {
	wide := Extent{MinX: 0, MaxX: 40, MinY: 0, MaxY: 20, MinZ: 0, MaxZ: 1}
	tests := []struct {
		name         string
		xRes, yRes   int
		wantX, wantY int
		wantErr      error
	}{
		{name: "both given", xRes: 10, yRes: 7, wantX: 10, wantY: 7},
		{name: "derive y", xRes: 40, yRes: 0, wantX: 40, wantY: 20},
		{name: "derive x", xRes: 0, yRes: 20, wantX: 40, wantY: 20},
		{name: "neither given", xRes: 0, yRes: 0, wantErr: ErrNoResolution},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			x, y, err := DeriveResolution(test.xRes, test.yRes, wide)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("got error %v, want %v", err, test.wantErr)
			}
			if err == nil && (x != test.wantX || y != test.wantY) {
				t.Errorf("got %d x %d, want %d x %d", x, y, test.wantX, test.wantY)
			}
		})
	}
}

func TestNewAggregatorErrors(t *testing.T) {
	if _, err := NewAggregator(5, 5, NewExtent()); err == nil {
		t.Error("empty bounds: got nil error")
	}
	if _, err := NewAggregator(1, 5, testBounds); err == nil {
		t.Error("resolution below 2: got nil error")
	}
}

func TestAggregatorAveraging(t *testing.T) {
	agg, err := NewAggregator(5, 5, testBounds)
	if err != nil {
		t.Fatal(err)
	}
	// Three samples in the cell at planar (2, 2), exactly representable
	// so the average is exact.
	agg.AddSample(2.1, 2.1, 1.5)
	agg.AddSample(2.5, 2.5, 2.25)
	agg.AddSample(2.9, 2.9, 2.25)
	hm := agg.Finalize()
	got, err := hm.Get(2, 5-2-1)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2.0 {
		t.Errorf("averaged cell: got %g, want 2", got)
	}
}

func TestAggregatorOrderIndependence(t *testing.T) {
	samples := [][3]float64{
		{0.5, 0.5, 1.5}, {0.5, 0.5, 2.25}, {3.5, 3.5, 4.5}, {2, 1, 3},
	}
	a, err := NewAggregator(5, 5, testBounds)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewAggregator(5, 5, testBounds)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range samples {
		a.AddSample(s[0], s[1], s[2])
	}
	for i := len(samples) - 1; i >= 0; i-- {
		b.AddSample(samples[i][0], samples[i][1], samples[i][2])
	}
	if !reflect.DeepEqual(a.Finalize().Data.Elements, b.Finalize().Data.Elements) {
		t.Error("sample order changed the finalized grid")
	}
}

func TestAggregatorEmptyCellDefault(t *testing.T) {
	bounds := testBounds
	bounds.MinZ = -7
	agg, err := NewAggregator(5, 5, bounds)
	if err != nil {
		t.Fatal(err)
	}
	hm := agg.Finalize()
	for i, v := range hm.Data.Elements {
		if v != -7 {
			t.Fatalf("empty cell %d: got %g, want the minimum elevation -7", i, v)
		}
	}
}

func TestAggregatorDropsOutOfRange(t *testing.T) {
	agg, err := NewAggregator(5, 5, testBounds)
	if err != nil {
		t.Fatal(err)
	}
	agg.AddSample(-0.5, 2, 1) // west of the grid
	agg.AddSample(2, 99, 1)   // north of the grid
	agg.AddSample(2, 2, 1)
	if got := agg.Dropped(); got != 2 {
		t.Errorf("dropped: got %d, want 2", got)
	}
}

func TestAggregatorRowInversion(t *testing.T) {
	agg, err := NewAggregator(5, 5, testBounds)
	if err != nil {
		t.Fatal(err)
	}
	// A sample at the extent's minimum corner (southwest) must land in
	// the bottom row of storage, since row 0 is the north edge.
	agg.AddSample(0, 0, 42)
	hm := agg.Finalize()
	got, err := hm.Get(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("southwest sample: Get(0, 4) = %g, want 42", got)
	}
	if north, _ := hm.Get(0, 0); north == 42 {
		t.Error("southwest sample landed in the north row")
	}
}
