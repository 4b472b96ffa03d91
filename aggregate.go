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

	"github.com/ctessum/sparse"
)

// pointAggregate is the running sum and count for one grid cell while
// samples stream in. It only exists between aggregator construction and
// finalization.
type pointAggregate struct {
	sum   float64
	count uint32
}

func (p *pointAggregate) add(z float64) {
	p.sum += z
	p.count++
}

// averageOr returns the mean of the added samples, or def when the cell
// never received one.
func (p *pointAggregate) averageOr(def float64) float64 {
	if p.count == 0 {
		return def
	}
	return p.sum / float64(p.count)
}

// An Aggregator bins an unbounded stream of planar (x, y, z) samples into
// a fixed-resolution grid of running averages. Finalize converts the
// result into a HeightMap.
//
// Aggregation is single threaded. Classifying a sample only reads the
// immutable grid geometry and writes one cell, so a future parallel
// version could classify in workers and merge partial grids; the merged
// averages would match the serial result to within floating-point
// summation tolerance.
type Aggregator struct {
	cells        []pointAggregate
	xRes, yRes   int
	xTick, yTick float64
	bounds       Extent
	dropped      uint64
}

// DeriveResolution resolves the requested grid resolution against the
// extent's aspect ratio. A zero value means "derive this axis from the
// other one"; if both are zero it fails with ErrNoResolution. Derived
// values are truncated to integers.
func DeriveResolution(xRes, yRes int, bounds Extent) (int, int, error) {
	switch {
	case xRes > 0 && yRes > 0:
		return xRes, yRes, nil
	case xRes > 0:
		return xRes, int(float64(xRes) * (bounds.YRange() / bounds.XRange())), nil
	case yRes > 0:
		return int(float64(yRes) * (bounds.XRange() / bounds.YRange())), yRes, nil
	default:
		return 0, 0, ErrNoResolution
	}
}

// NewAggregator allocates a zeroed aggregation grid over bounds. Either
// resolution may be zero to derive it from the extent's aspect ratio, but
// not both. Resolutions below 2 are rejected: with a single row or column
// the cell size is undefined.
func NewAggregator(xRes, yRes int, bounds Extent) (*Aggregator, error) {
	if bounds.Empty() {
		return nil, fmt.Errorf("relief: aggregator bounds are empty: %v", bounds)
	}
	xRes, yRes, err := DeriveResolution(xRes, yRes, bounds)
	if err != nil {
		return nil, err
	}
	if xRes < 2 || yRes < 2 {
		return nil, fmt.Errorf("relief: grid resolution %d x %d is too small; both axes need at least 2 cells", xRes, yRes)
	}
	xTick := bounds.XRange() / float64(xRes-1)
	yTick := bounds.YRange() / float64(yRes-1)
	if !tickValid(xTick) || !tickValid(yTick) {
		return nil, fmt.Errorf("relief: degenerate cell size %g x %g for bounds %v", xTick, yTick, bounds)
	}
	return &Aggregator{
		cells:  make([]pointAggregate, xRes*yRes),
		xRes:   xRes,
		yRes:   yRes,
		xTick:  xTick,
		yTick:  yTick,
		bounds: bounds,
	}, nil
}

func tickValid(t float64) bool {
	return t > 0 && !math.IsInf(t, 1)
}

// Resolution returns the grid dimensions, with any derived axis resolved.
func (a *Aggregator) Resolution() (xRes, yRes int) { return a.xRes, a.yRes }

// Dropped returns how many samples fell outside the grid and were
// discarded.
func (a *Aggregator) Dropped() uint64 { return a.dropped }

// AddSample accumulates one elevation sample at planar position (x, y).
// Samples that fall outside the grid are silently discarded; a malformed
// point must not abort a multi-hour ingestion. The row index is inverted
// so that increasing y (north) maps to decreasing row, giving the
// conventional raster order with row 0 at the north edge.
func (a *Aggregator) AddSample(x, y, z float64) {
	cx := int(math.Floor((x - a.bounds.MinX) / a.xTick))
	cy := int(math.Floor((y - a.bounds.MinY) / a.yTick))
	if cx < 0 || cy < 0 || cx >= a.xRes || cy >= a.yRes {
		a.dropped++
		return
	}
	a.cells[(a.yRes-cy-1)*a.xRes+cx].add(z)
}

// Finalize converts the aggregate grid into a HeightMap, averaging each
// cell and defaulting empty cells to the extent's minimum elevation. The
// conversion is lossy and one way; the aggregator should not be used
// afterwards.
func (a *Aggregator) Finalize() *HeightMap {
	data := sparse.ZerosDense(a.yRes, a.xRes)
	for i := range a.cells {
		data.Elements[i] = a.cells[i].averageOr(a.bounds.MinZ)
	}
	return &HeightMap{
		Data:   data,
		XRes:   a.xRes,
		YRes:   a.yRes,
		Bounds: a.bounds,
	}
}
