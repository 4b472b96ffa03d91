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

/*Package relief turns point-cloud elevation data into regular height
grids, restricts or annotates those grids with boolean masks built from
vector geometry, and (through the mesh subpackage) emits printable
watertight terrain solids.*/
package relief

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"

	"github.com/ctessum/sparse"
	"github.com/gonum/floats"
)

// A HeightMap is a finalized grid of elevation values (in planar units)
// spanning Bounds. Row 0 is the north (maximum y) edge. It is created by
// Aggregator.Finalize or by Load and is never resized.
type HeightMap struct {
	Data       *sparse.DenseArray
	XRes, YRes int
	Bounds     Extent
}

// Ticks returns the cell size along each axis.
func (h *HeightMap) Ticks() (xTick, yTick float64) {
	return h.Bounds.XRange() / float64(h.XRes-1), h.Bounds.YRange() / float64(h.YRes-1)
}

// Get returns the elevation at grid cell (x, y). The coordinates are
// unitless but evenly spaced over the extent.
func (h *HeightMap) Get(x, y int) (float64, error) {
	i, err := Index(h.XRes, h.YRes, x, y)
	if err != nil {
		return 0, err
	}
	return h.Data.Elements[i], nil
}

// MinMax returns the smallest and largest stored elevation.
func (h *HeightMap) MinMax() (min, max float64) {
	return floats.Min(h.Data.Elements), floats.Max(h.Data.Elements)
}

// OffsetByMask adds delta to every cell where mask is true. The mask must
// share the grid's resolution and bounds; build it with NewMaskFor to
// guarantee that.
func (h *HeightMap) OffsetByMask(m *Mask, delta float64) error {
	if err := m.CompatibleWith(h.XRes, h.YRes, h.Bounds); err != nil {
		return err
	}
	for i, set := range m.Data {
		if set {
			h.Data.Elements[i] += delta
		}
	}
	return nil
}

// SetByMask overwrites every cell where mask is true with value. The same
// geometry rule as OffsetByMask applies.
func (h *HeightMap) SetByMask(m *Mask, value float64) error {
	if err := m.CompatibleWith(h.XRes, h.YRes, h.Bounds); err != nil {
		return err
	}
	for i, set := range m.Data {
		if set {
			h.Data.Elements[i] = value
		}
	}
	return nil
}

// ConvertProjection replaces the stored extent without touching the data.
// It exists to relabel a grid built in one projection as though it were
// built in another; the caller is responsible for supplying compatible
// bounds, and no validation is performed.
func (h *HeightMap) ConvertProjection(newBounds Extent) {
	h.Bounds = newBounds
}

// heightMapFile is the gob image of a HeightMap. The element slice is
// stored flat so the file does not depend on the in-memory array layout.
type heightMapFile struct {
	Elements   []float64
	XRes, YRes int
	Bounds     Extent
}

// Save writes the height map to path as a gob stream. The format is
// self-describing but specific to this module, not a public standard;
// its purpose is checkpointing so that slow point-cloud ingestion does
// not have to be repeated to tweak masks or mesh output.
func (h *HeightMap) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("relief: creating height map file: %w", err)
	}
	defer f.Close()
	enc := gob.NewEncoder(f)
	if err := enc.Encode(heightMapFile{
		Elements: h.Data.Elements,
		XRes:     h.XRes,
		YRes:     h.YRes,
		Bounds:   h.Bounds,
	}); err != nil {
		return fmt.Errorf("relief: encoding height map: %w", err)
	}
	return f.Close()
}

// Load reads a height map previously written by Save.
func Load(path string) (*HeightMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("relief: opening height map file: %w", err)
	}
	defer f.Close()
	var hf heightMapFile
	if err := gob.NewDecoder(f).Decode(&hf); err != nil {
		return nil, fmt.Errorf("relief: decoding height map %s: %w", path, err)
	}
	if len(hf.Elements) != hf.XRes*hf.YRes {
		return nil, fmt.Errorf("relief: height map %s holds %d cells, want %d x %d",
			path, len(hf.Elements), hf.XRes, hf.YRes)
	}
	data := sparse.ZerosDense(hf.YRes, hf.XRes)
	copy(data.Elements, hf.Elements)
	return &HeightMap{Data: data, XRes: hf.XRes, YRes: hf.YRes, Bounds: hf.Bounds}, nil
}

// Image renders the grid as an 8-bit grayscale image, mapping elevations
// affinely from [Bounds.MinZ, Bounds.MaxZ] to [0, 255]. Row 0 of the
// image is the north edge. Useful as a sanity check against a map.
func (h *HeightMap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.XRes, h.YRes))
	zRange := h.Bounds.ZRange()
	for i, v := range h.Data.Elements {
		img.Pix[i] = scaleToByte(v, h.Bounds.MinZ, zRange)
	}
	return img
}

// scaleToByte maps v from [min, min+zRange] to 0..255, clamping values
// pushed outside the extent by masked offsets.
func scaleToByte(v, min, zRange float64) uint8 {
	s := (v - min) / zRange * 255
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// SaveImage writes the grayscale rendering to path as a PNG.
func (h *HeightMap) SaveImage(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("relief: creating image file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, h.Image()); err != nil {
		return fmt.Errorf("relief: encoding image: %w", err)
	}
	return f.Close()
}

// SaveCSV writes the raw elevation values to path, one row per grid row,
// comma separated, without a header. Nothing in the pipeline reads this
// back; it exists for external inspection.
func (h *HeightMap) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("relief: creating csv file: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	row := make([]string, h.XRes)
	for y := 0; y < h.YRes; y++ {
		for x := 0; x < h.XRes; x++ {
			row[x] = strconv.FormatFloat(h.Data.Elements[y*h.XRes+x], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("relief: writing csv row %d: %w", y, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("relief: flushing csv: %w", err)
	}
	return f.Close()
}
