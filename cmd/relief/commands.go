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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialrelief/relief"
	"github.com/spatialrelief/relief/las"
	"github.com/spatialrelief/relief/mesh"
	"github.com/spatialrelief/relief/plot"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "relief",
	Short: "Turn LAS point clouds into printable terrain solids",
	Long: `relief bins LAS point-cloud tiles into a height grid, optionally
shapes the grid with KML or shapefile geometry, and writes the result
as a watertight binary STL ready for slicing.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run config.toml",
	Short: "Execute a full pipeline described by a TOML config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := LoadJob(args[0])
		if err != nil {
			return err
		}
		return Run(job)
	},
}

var resampleFlags struct {
	xRes, yRes int
	out        string
}

var resampleCmd = &cobra.Command{
	Use:   "resample 'tiles/*.las'",
	Short: "Bin LAS tiles into a height grid checkpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hm, err := las.Resample(args[0], resampleFlags.xRes, resampleFlags.yRes)
		if err != nil {
			return err
		}
		return hm.Save(resampleFlags.out)
	},
}

var solidFlags struct {
	zScaling float64
	base     float64
	out      string
}

var solidCmd = &cobra.Command{
	Use:   "solid heightmap.gob",
	Short: "Mesh a height grid checkpoint into a binary STL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hm, err := relief.Load(args[0])
		if err != nil {
			return err
		}
		tris, err := mesh.Solid(hm, mesh.Options{
			ZScaling:      solidFlags.zScaling,
			BaseThickness: float32(solidFlags.base),
		})
		if err != nil {
			return err
		}
		log.Infof("writing %d triangles to %s", len(tris), solidFlags.out)
		return mesh.Write(solidFlags.out, tris)
	},
}

var previewFlags struct {
	image      string
	csv        string
	profile    string
	profileRow int
}

var previewCmd = &cobra.Command{
	Use:   "preview heightmap.gob",
	Short: "Render diagnostic views of a height grid checkpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hm, err := relief.Load(args[0])
		if err != nil {
			return err
		}
		if previewFlags.image != "" {
			if err := hm.SaveImage(previewFlags.image); err != nil {
				return err
			}
		}
		if previewFlags.csv != "" {
			if err := hm.SaveCSV(previewFlags.csv); err != nil {
				return err
			}
		}
		if previewFlags.profile != "" {
			if err := plot.Profile(hm, previewFlags.profileRow, previewFlags.profile); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	resampleCmd.Flags().IntVar(&resampleFlags.xRes, "xres", 0, "grid width in cells (0 derives it from yres)")
	resampleCmd.Flags().IntVar(&resampleFlags.yRes, "yres", 0, "grid height in cells (0 derives it from xres)")
	resampleCmd.Flags().StringVar(&resampleFlags.out, "out", "heightmap.gob", "checkpoint output path")

	solidCmd.Flags().Float64Var(&solidFlags.zScaling, "zscale", 1, "vertical exaggeration")
	solidCmd.Flags().Float64Var(&solidFlags.base, "base", 0, "base thickness in grid units")
	solidCmd.Flags().StringVar(&solidFlags.out, "out", "terrain.stl", "STL output path")

	previewCmd.Flags().StringVar(&previewFlags.image, "image", "", "grayscale PNG output path")
	previewCmd.Flags().StringVar(&previewFlags.csv, "csv", "", "raw elevation CSV output path")
	previewCmd.Flags().StringVar(&previewFlags.profile, "profile", "", "row cross-section chart output path")
	previewCmd.Flags().IntVar(&previewFlags.profileRow, "row", 0, "grid row for the cross-section chart")

	rootCmd.AddCommand(runCmd, resampleCmd, solidCmd, previewCmd)
}
