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
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testConfig = `
[input]
glob = "tiles/*.las"
xres = 1000

[output]
heightmap = "out/heightmap.gob"
stl = "out/terrain.stl"

[solid]
z_scaling = 2.5
base_thickness = 10.0

[vector]
utm_zone = 10
region_files = ["park.kml"]
trail_files = ["trails.kml", "roads.shp"]
trail_radius = 2
trail_offset = 4.5
mask_solid = true
`

func TestLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	job, err := LoadJob(path)
	if err != nil {
		t.Fatal(err)
	}
	if job.Input.Glob != "tiles/*.las" || job.Input.XRes != 1000 || job.Input.YRes != 0 {
		t.Errorf("input: got %+v", job.Input)
	}
	if job.Solid.ZScaling != 2.5 || job.Solid.BaseThickness != 10 {
		t.Errorf("solid: got %+v", job.Solid)
	}
	if job.Vector.UTMZone != 10 || !job.Vector.MaskSolid {
		t.Errorf("vector: got %+v", job.Vector)
	}
	wantTrails := []string{"trails.kml", "roads.shp"}
	if !reflect.DeepEqual(job.Vector.TrailFiles, wantTrails) {
		t.Errorf("trail files: got %v, want %v", job.Vector.TrailFiles, wantTrails)
	}
}

func TestLoadJobDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.toml")
	if err := os.WriteFile(path, []byte("[input]\nglob = \"*.las\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	job, err := LoadJob(path)
	if err != nil {
		t.Fatal(err)
	}
	if job.Solid.ZScaling != 1 {
		t.Errorf("default z scaling: got %g, want 1", job.Solid.ZScaling)
	}
	if job.Output.ProfileRow != -1 {
		t.Errorf("default profile row: got %d, want -1", job.Output.ProfileRow)
	}
}

func TestLoadJobMissingFile(t *testing.T) {
	if _, err := LoadJob(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing config: got nil error")
	}
}
