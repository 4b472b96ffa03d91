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

// Package las streams elevation samples out of LAS point-cloud files and
// bins them into height grids. Files are read twice: once for their
// header extents, once for their points, so that an arbitrary set of
// tiles can share a single grid without holding any tile in memory.
package las

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jblindsay/lidario"
	log "github.com/sirupsen/logrus"

	"github.com/spatialrelief/relief"
)

// progressInterval is how often, in points, ingestion progress is logged.
const progressInterval = 1 << 21

// Glob expands pattern into a sorted list of LAS file paths. A pattern
// that matches nothing is an error: an empty tile set would silently
// yield an all-default grid.
func Glob(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("las: bad glob pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("las: pattern %q matched no files", pattern)
	}
	return paths, nil
}

// Bounds unions the header extents of the given LAS files. Unreadable
// files are skipped with a warning; it is an error only if no file
// could be read.
func Bounds(paths []string) (relief.Extent, error) {
	bounds := relief.NewExtent()
	read := 0
	for _, p := range paths {
		lf, err := lidario.NewLasFile(p, "r")
		if err != nil {
			log.WithError(err).Warnf("las: skipping unreadable file %s", p)
			continue
		}
		bounds.Union(relief.Extent{
			MinX: lf.Header.MinX, MaxX: lf.Header.MaxX,
			MinY: lf.Header.MinY, MaxY: lf.Header.MaxY,
			MinZ: lf.Header.MinZ, MaxZ: lf.Header.MaxZ,
		})
		lf.Close()
		read++
	}
	if read == 0 {
		return relief.Extent{}, fmt.Errorf("las: none of the %d files could be read", len(paths))
	}
	return bounds, nil
}

// Resample bins every point in the LAS files matching pattern into a
// grid of averaged elevations over the files' combined extent. Either
// resolution may be zero to derive it from the extent's aspect ratio.
func Resample(pattern string, xRes, yRes int) (*relief.HeightMap, error) {
	paths, err := Glob(pattern)
	if err != nil {
		return nil, err
	}
	bounds, err := Bounds(paths)
	if err != nil {
		return nil, err
	}
	agg, err := relief.NewAggregator(xRes, yRes, bounds)
	if err != nil {
		return nil, err
	}
	gx, gy := agg.Resolution()
	log.Infof("las: resampling %d files into a %d x %d grid over %v", len(paths), gx, gy, bounds)

	var total uint64
	for _, p := range paths {
		n, err := addFile(agg, p, total)
		if err != nil {
			log.WithError(err).Warnf("las: skipping file %s", p)
			continue
		}
		total += n
	}
	if total == 0 {
		return nil, fmt.Errorf("las: no points could be read from %d files", len(paths))
	}
	if d := agg.Dropped(); d > 0 {
		log.Warnf("las: %d of %d points fell outside the grid and were dropped", d, total)
	}
	return agg.Finalize(), nil
}

// addFile streams one LAS file into the aggregator, returning the number
// of points read. offset is the point count already ingested from earlier
// files, used only to keep the progress log monotonic.
func addFile(agg *relief.Aggregator, path string, offset uint64) (uint64, error) {
	start := time.Now()
	lf, err := lidario.NewLasFile(path, "r")
	if err != nil {
		return 0, fmt.Errorf("las: opening %s: %w", path, err)
	}
	defer lf.Close()

	n := lf.Header.NumberPoints
	for i := 0; i < n; i++ {
		pt, err := lf.LasPoint(i)
		if err != nil {
			log.WithError(err).Warnf("las: skipping point %d of %s", i, path)
			continue
		}
		d := pt.PointData()
		agg.AddSample(d.X, d.Y, d.Z)
		if (offset+uint64(i)+1)%progressInterval == 0 {
			log.Infof("las: ingested %d points", offset+uint64(i)+1)
		}
	}
	log.Infof("las: read %d points from %s in %v", n, path, time.Since(start))
	return uint64(n), nil
}
