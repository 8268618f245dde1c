package main

import (
	"github.com/spf13/cobra"
	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
)

type staticFlags struct {
	outDir         string
	diffThreshold  int
	scoreThreshold float64
	header         bool
	banner         bool
	sampleSize     int
	headerName     string
	bannerName     string
}

var staticOpts staticFlags

var staticCmd = &cobra.Command{
	Use:   "static [video]",
	Short: "Cut out the static header and banner of a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := loadValues(cmd, resolverFor(cfgFile))
		if err != nil {
			return err
		}
		staticOpts.apply(cmd, &values)

		runner, recorder, err := newRunner(values)
		if err != nil {
			return err
		}
		defer writeMetrics(values, recorder)

		report, err := runner.DetectStatic(cmd.Context(), args[0], values.StaticRegion)
		if err != nil {
			return err
		}

		if len(report.Locations) == 0 {
			log.Warn("No static regions found in: %s", args[0])
		}
		for _, location := range report.Locations {
			log.Info("Saved: %s", location)
		}
		return nil
	},
}

func (f staticFlags) apply(cmd *cobra.Command, values *configdef.Values) {
	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		values.OutputDir = f.outDir
	}
	if flags.Changed("diff-threshold") {
		values.StaticRegion.DiffThreshold = f.diffThreshold
	}
	if flags.Changed("score-threshold") {
		values.StaticRegion.StaticScoreThreshold = f.scoreThreshold
	}
	if flags.Changed("header") {
		values.StaticRegion.CheckHeader = f.header
	}
	if flags.Changed("banner") {
		values.StaticRegion.CheckBanner = f.banner
	}
	if flags.Changed("sample-size") {
		values.StaticRegion.SampleSize = f.sampleSize
	}
	if flags.Changed("header-name") {
		values.StaticRegion.HeaderName = f.headerName
	}
	if flags.Changed("banner-name") {
		values.StaticRegion.BannerName = f.bannerName
	}
}

func init() {
	flags := staticCmd.Flags()
	flags.StringVar(&staticOpts.outDir, "out-dir", ".", "directory to write images to")
	flags.IntVar(&staticOpts.diffThreshold, "diff-threshold", 30, "per pixel grayscale difference that counts as a change")
	flags.Float64Var(&staticOpts.scoreThreshold, "score-threshold", 250, "mean static score a band must exceed, 0 to 255")
	flags.BoolVar(&staticOpts.header, "header", true, "look for a static header")
	flags.BoolVar(&staticOpts.banner, "banner", true, "look for a static banner")
	flags.IntVar(&staticOpts.sampleSize, "sample-size", 30, "number of leading frames to sample")
	flags.StringVar(&staticOpts.headerName, "header-name", "header.png", "name of the header image")
	flags.StringVar(&staticOpts.bannerName, "banner-name", "banner.png", "name of the banner image")
}
