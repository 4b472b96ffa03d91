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
	"math"
)

// Extent is an axis-aligned 3D bounding box in planar (projected) units.
// It anchors a height grid or mask to a region of terrain and is used to
// convert between planar coordinates and discrete grid cells.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// NewExtent returns the identity extent: every minimum is +Inf and every
// maximum is -Inf, so unioning it with any real extent yields that extent
// unchanged. It is the starting accumulator when bounding multiple files.
func NewExtent() Extent {
	return Extent{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		MinZ: math.Inf(1), MaxZ: math.Inf(-1),
	}
}

// Union grows e to include all of o.
func (e *Extent) Union(o Extent) {
	e.MinX = math.Min(e.MinX, o.MinX)
	e.MaxX = math.Max(e.MaxX, o.MaxX)
	e.MinY = math.Min(e.MinY, o.MinY)
	e.MaxY = math.Max(e.MaxY, o.MaxY)
	e.MinZ = math.Min(e.MinZ, o.MinZ)
	e.MaxZ = math.Max(e.MaxZ, o.MaxZ)
}

// UnionPoint grows e to include the planar point (x, y, z).
func (e *Extent) UnionPoint(x, y, z float64) {
	e.Union(Extent{MinX: x, MaxX: x, MinY: y, MaxY: y, MinZ: z, MaxZ: z})
}

// XRange returns the difference between the largest and smallest x values.
func (e Extent) XRange() float64 { return e.MaxX - e.MinX }

// YRange returns the difference between the largest and smallest y values.
func (e Extent) YRange() float64 { return e.MaxY - e.MinY }

// ZRange returns the difference between the largest and smallest z values.
func (e Extent) ZRange() float64 { return e.MaxZ - e.MinZ }

// Empty reports whether e is still the identity extent (or otherwise
// inverted), meaning no real bounds have been added to it.
func (e Extent) Empty() bool {
	return e.MinX > e.MaxX || e.MinY > e.MaxY || e.MinZ > e.MaxZ
}

func (e Extent) String() string {
	return fmt.Sprintf("x: (%g, %g), y: (%g, %g), z: (%g, %g)",
		e.MinX, e.MaxX, e.MinY, e.MaxY, e.MinZ, e.MaxZ)
}
