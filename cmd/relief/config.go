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

package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	log "github.com/sirupsen/logrus"

	"github.com/spatialrelief/relief"
	"github.com/spatialrelief/relief/las"
	"github.com/spatialrelief/relief/mesh"
	"github.com/spatialrelief/relief/plot"
	"github.com/spatialrelief/relief/vector"
)

// A Job describes one end-to-end pipeline run, decoded from a TOML file.
type Job struct {
	Input struct {
		// Glob selects the LAS tiles to ingest. When empty, the height
		// map named in [output] is loaded instead of being rebuilt.
		Glob string `toml:"glob"`
		XRes int    `toml:"xres"`
		YRes int    `toml:"yres"`
	} `toml:"input"`

	Output struct {
		HeightMap     string `toml:"heightmap"`
		Image         string `toml:"image"`
		CSV           string `toml:"csv"`
		STL           string `toml:"stl"`
		GridShapefile string `toml:"grid_shapefile"`
		// ProfileRow selects a grid row for a cross-section chart at
		// Profile; negative means no chart.
		ProfileRow int    `toml:"profile_row"`
		Profile    string `toml:"profile"`
	} `toml:"output"`

	Solid struct {
		ZScaling      float64 `toml:"z_scaling"`
		BaseThickness float64 `toml:"base_thickness"`
	} `toml:"solid"`

	Vector struct {
		UTMZone        int      `toml:"utm_zone"`
		South          bool     `toml:"south"`
		RegionFiles    []string `toml:"region_files"`
		TrailFiles     []string `toml:"trail_files"`
		WaypointFiles  []string `toml:"waypoint_files"`
		TrailRadius    int      `toml:"trail_radius"`
		WaypointRadius int      `toml:"waypoint_radius"`
		TrailOffset    float64  `toml:"trail_offset"`
		WaypointOffset float64  `toml:"waypoint_offset"`
		// MaskSolid restricts the STL to the region polygons instead of
		// meshing the full rectangular grid.
		MaskSolid bool `toml:"mask_solid"`
	} `toml:"vector"`
}

// LoadJob decodes a job description from a TOML file and applies
// defaults.
func LoadJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()
	job := new(Job)
	job.Output.ProfileRow = -1
	job.Solid.ZScaling = 1
	if _, err := toml.NewDecoder(f).Decode(job); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return job, nil
}

// Run executes the full pipeline: ingest or load a height grid, write
// the requested exports, rasterize any vector geometry into masks, and
// emit the printable solid.
func Run(job *Job) error {
	hm, err := loadOrResample(job)
	if err != nil {
		return err
	}

	var regionMask *relief.Mask
	if job.Vector.UTMZone != 0 {
		regionMask, err = applyVectors(job, hm)
		if err != nil {
			return err
		}
	}

	if err := writeExports(job, hm); err != nil {
		return err
	}

	if job.Output.STL == "" {
		return nil
	}
	o := mesh.Options{
		ZScaling:      job.Solid.ZScaling,
		BaseThickness: float32(job.Solid.BaseThickness),
	}
	var tris []mesh.Triangle
	if job.Vector.MaskSolid {
		if regionMask == nil {
			return fmt.Errorf("mask_solid is set but no region polygons were loaded")
		}
		tris, err = mesh.SolidMasked(hm, regionMask, o)
	} else {
		tris, err = mesh.Solid(hm, o)
	}
	if err != nil {
		return err
	}
	log.Infof("writing %d triangles to %s", len(tris), job.Output.STL)
	return mesh.Write(job.Output.STL, tris)
}

func loadOrResample(job *Job) (*relief.HeightMap, error) {
	if job.Input.Glob != "" {
		hm, err := las.Resample(job.Input.Glob, job.Input.XRes, job.Input.YRes)
		if err != nil {
			return nil, err
		}
		if job.Output.HeightMap != "" {
			if err := hm.Save(job.Output.HeightMap); err != nil {
				return nil, err
			}
			log.Infof("saved height map checkpoint to %s", job.Output.HeightMap)
		}
		return hm, nil
	}
	if job.Output.HeightMap == "" {
		return nil, fmt.Errorf("config names neither an input glob nor a saved height map")
	}
	log.Infof("loading height map checkpoint from %s", job.Output.HeightMap)
	return relief.Load(job.Output.HeightMap)
}

// applyVectors loads the configured geometry files, reprojects them into
// the grid's UTM zone, clips them to the grid, and stamps them into
// masks. Trail and waypoint masks offset the terrain in place; the
// region mask is returned for optional use by the mesher.
func applyVectors(job *Job, hm *relief.HeightMap) (*relief.Mask, error) {
	ct, err := relief.NewUTMTransform(job.Vector.UTMZone, job.Vector.South)
	if err != nil {
		return nil, err
	}
	clip := &geom.Bounds{
		Min: geom.Point{X: hm.Bounds.MinX, Y: hm.Bounds.MinY},
		Max: geom.Point{X: hm.Bounds.MaxX, Y: hm.Bounds.MaxY},
	}

	load := func(paths []string) (*vector.Collection, error) {
		c, err := vector.LoadFiles(paths)
		if err != nil {
			return nil, err
		}
		c, err = c.ToPlanar(ct)
		if err != nil {
			return nil, err
		}
		return c.Clip(clip), nil
	}

	var regionMask *relief.Mask
	if len(job.Vector.RegionFiles) > 0 {
		c, err := load(job.Vector.RegionFiles)
		if err != nil {
			return nil, err
		}
		regionMask, err = relief.NewMaskFor(hm)
		if err != nil {
			return nil, err
		}
		for _, p := range c.Polygons {
			if err := regionMask.AddFilledPolygon(p); err != nil {
				return nil, err
			}
		}
		log.Infof("region mask covers %d cells", regionMask.CountTrue())
	}

	if len(job.Vector.TrailFiles) > 0 {
		c, err := load(job.Vector.TrailFiles)
		if err != nil {
			return nil, err
		}
		m, err := relief.NewMaskFor(hm)
		if err != nil {
			return nil, err
		}
		for _, t := range c.Trails {
			if err := m.AddTrail(t, job.Vector.TrailRadius); err != nil {
				return nil, err
			}
		}
		if err := hm.OffsetByMask(m, job.Vector.TrailOffset); err != nil {
			return nil, err
		}
		log.Infof("offset %d trail cells by %g", m.CountTrue(), job.Vector.TrailOffset)
	}

	if len(job.Vector.WaypointFiles) > 0 {
		c, err := load(job.Vector.WaypointFiles)
		if err != nil {
			return nil, err
		}
		m, err := relief.NewMaskFor(hm)
		if err != nil {
			return nil, err
		}
		if err := m.AddPoints(c.Waypoints, job.Vector.WaypointRadius); err != nil {
			return nil, err
		}
		if err := hm.OffsetByMask(m, job.Vector.WaypointOffset); err != nil {
			return nil, err
		}
		log.Infof("offset %d waypoint cells by %g", m.CountTrue(), job.Vector.WaypointOffset)
	}
	return regionMask, nil
}

func writeExports(job *Job, hm *relief.HeightMap) error {
	if job.Output.Image != "" {
		if err := hm.SaveImage(job.Output.Image); err != nil {
			return err
		}
	}
	if job.Output.CSV != "" {
		if err := hm.SaveCSV(job.Output.CSV); err != nil {
			return err
		}
	}
	if job.Output.GridShapefile != "" {
		if err := vector.WriteGridShp(hm, job.Output.GridShapefile); err != nil {
			return err
		}
	}
	if job.Output.Profile != "" && job.Output.ProfileRow >= 0 {
		if err := plot.Profile(hm, job.Output.ProfileRow, job.Output.Profile); err != nil {
			return err
		}
	}
	return nil
}
