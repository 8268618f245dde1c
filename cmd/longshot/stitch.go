package main

import (
	"github.com/spf13/cobra"
	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
)

type stitchFlags struct {
	outDir         string
	threshold      int
	ratio          float64
	pngName        string
	jpegName       string
	quality        int
	keepPNG        bool
	thumbnailWidth int
	frameLimit     int
}

var stitchOpts stitchFlags

var stitchCmd = &cobra.Command{
	Use:   "stitch [video]",
	Short: "Stitch the unique frames of a recording into one long image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := loadValues(cmd, resolverFor(cfgFile))
		if err != nil {
			return err
		}
		stitchOpts.apply(cmd, &values)

		runner, recorder, err := newRunner(values)
		if err != nil {
			return err
		}
		defer writeMetrics(values, recorder)

		report, err := runner.Stitch(cmd.Context(), args[0], values.Stitch)
		if err != nil {
			return err
		}

		for _, location := range report.Locations {
			log.Info("Saved: %s", location)
		}
		return nil
	},
}

func (f stitchFlags) apply(cmd *cobra.Command, values *configdef.Values) {
	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		values.OutputDir = f.outDir
	}
	if flags.Changed("threshold") {
		values.Stitch.Threshold = f.threshold
	}
	if flags.Changed("ratio") {
		values.Stitch.Ratio = f.ratio
	}
	if flags.Changed("png-name") {
		values.Stitch.PNGName = f.pngName
	}
	if flags.Changed("jpeg-name") {
		values.Stitch.JPEGName = f.jpegName
	}
	if flags.Changed("quality") {
		values.Stitch.JPEGQuality = f.quality
	}
	if flags.Changed("keep-png") {
		values.Stitch.KeepPNG = f.keepPNG
	}
	if flags.Changed("thumbnail-width") {
		values.Stitch.ThumbnailWidth = f.thumbnailWidth
	}
	if flags.Changed("frame-limit") {
		values.Stitch.FrameLimit = f.frameLimit
	}
}

func init() {
	flags := stitchCmd.Flags()
	flags.StringVar(&stitchOpts.outDir, "out-dir", ".", "directory to write images to")
	flags.IntVar(&stitchOpts.threshold, "threshold", 30, "per pixel grayscale difference that counts as a change")
	flags.Float64Var(&stitchOpts.ratio, "ratio", 0.01, "fraction of changed pixels that makes a frame unique")
	flags.StringVar(&stitchOpts.pngName, "png-name", "long.png", "name of the intermediate lossless image")
	flags.StringVar(&stitchOpts.jpegName, "jpeg-name", "long.jpg", "name of the compressed image")
	flags.IntVar(&stitchOpts.quality, "quality", 90, "JPEG quality, 1 to 100")
	flags.BoolVar(&stitchOpts.keepPNG, "keep-png", false, "keep the intermediate lossless image")
	flags.IntVar(&stitchOpts.thumbnailWidth, "thumbnail-width", 0, "scale the compressed image down to this width, 0 keeps full size")
	flags.IntVar(&stitchOpts.frameLimit, "frame-limit", 0, "decode at most this many frames, 0 reads the whole video")
}
