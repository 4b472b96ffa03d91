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
	"reflect"
	"testing"
)

func TestExtentUnionIdentity(t *testing.T) {
	e := NewExtent()
	o := Extent{MinX: 1, MaxX: 2, MinY: 3, MaxY: 4, MinZ: 5, MaxZ: 6}
	e.Union(o)
	if !reflect.DeepEqual(e, o) {
		t.Errorf("union with identity extent: got %v, want %v", e, o)
	}
}

func TestExtentUnion(t *testing.T) {
	e := Extent{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}
	e.Union(Extent{MinX: -5, MaxX: 5, MinY: 2, MaxY: 20, MinZ: 1, MaxZ: 9})
	want := Extent{MinX: -5, MaxX: 10, MinY: 0, MaxY: 20, MinZ: 0, MaxZ: 10}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("got %v, want %v", e, want)
	}
}

func TestExtentUnionPoint(t *testing.T) {
	e := NewExtent()
	e.UnionPoint(3, -2, 7)
	e.UnionPoint(-1, 4, 2)
	want := Extent{MinX: -1, MaxX: 3, MinY: -2, MaxY: 4, MinZ: 2, MaxZ: 7}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("got %v, want %v", e, want)
	}
}

func TestExtentRanges(t *testing.T) {
	e := Extent{MinX: 1, MaxX: 4, MinY: -2, MaxY: 2, MinZ: 0, MaxZ: 10}
	if got := e.XRange(); got != 3 {
		t.Errorf("XRange: got %g, want 3", got)
	}
	if got := e.YRange(); got != 4 {
		t.Errorf("YRange: got %g, want 4", got)
	}
	if got := e.ZRange(); got != 10 {
		t.Errorf("ZRange: got %g, want 10", got)
	}
}

func TestExtentEmpty(t *testing.T) {
	if !NewExtent().Empty() {
		t.Error("identity extent should be empty")
	}
	e := Extent{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1, MinZ: 0, MaxZ: 1}
	if e.Empty() {
		t.Errorf("%v should not be empty", e)
	}
	inverted := Extent{MinX: 1, MaxX: 0, MinY: 0, MaxY: 1, MinZ: 0, MaxZ: 1}
	if !inverted.Empty() {
		t.Errorf("%v should be empty", inverted)
	}
}
