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
	"fmt"
)

// ErrNoResolution is returned when a grid is requested without either an
// x or a y resolution. One of the two may be omitted (it is derived from
// the extent's aspect ratio), but not both.
var ErrNoResolution = errors.New("relief: no grid resolution specified; at least one of the x and y resolutions is required")

// IndexError reports a cell lookup outside the valid grid range. X and Y
// must be strictly less than their resolutions; indexing starts at zero.
type IndexError struct {
	XRes, YRes int
	X, Y       int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("relief: cell (%d, %d) is out of range for a %d x %d grid",
		e.X, e.Y, e.XRes, e.YRes)
}

// GeometryError reports an attempt to combine two grids (mask with mask,
// or mask with height map) that do not share resolution and bounds.
type GeometryError struct {
	XRes, YRes           int
	Bounds               Extent
	OtherXRes, OtherYRes int
	OtherBounds          Extent
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("relief: grid geometry mismatch: %d x %d over [%v] vs %d x %d over [%v]",
		e.XRes, e.YRes, e.Bounds, e.OtherXRes, e.OtherYRes, e.OtherBounds)
}

// StampError reports a disk stamp whose every offset landed outside the
// grid. A stamp that lands at least partially on the grid is not an error;
// the out-of-range offsets are skipped individually.
type StampError struct {
	XRes, YRes int
	X, Y       int
}

func (e *StampError) Error() string {
	return fmt.Sprintf("relief: stamp centered at cell (%d, %d) lies entirely outside the %d x %d grid",
		e.X, e.Y, e.XRes, e.YRes)
}

// Index converts grid coordinates to the flat storage index y*xRes+x.
// It fails with an *IndexError when x or y is out of range; callers never
// see wraparound or truncation.
func Index(xRes, yRes, x, y int) (int, error) {
	if x < 0 || y < 0 || x >= xRes || y >= yRes {
		return 0, &IndexError{XRes: xRes, YRes: yRes, X: x, Y: y}
	}
	return y*xRes + x, nil
}
