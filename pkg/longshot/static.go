package longshot

import (
	"context"

	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoexport"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"github.com/tauraamui/longshot/pkg/video/videoregion"
)

const (
	headerBand = "header"
	bannerBand = "banner"
)

// DetectStatic samples the first frames of video and writes out each
// requested band that stayed still across the whole sample.
func (r *runner) DetectStatic(ctx context.Context, video string, settings configdef.StaticRegion) (report StaticReport, err error) {
	report.RunID = newRunID()
	defer func() { r.markRun(staticPipeline, err) }()

	log.Info("[%s] Sampling %d frames from video: %s", report.RunID, settings.SampleSize, video)
	stageDone := r.recorder.Stage("decode")
	frames, err := videobackend.Decode(ctx, r.backend, video, settings.SampleSize)
	stageDone()
	if err != nil {
		return report, err
	}
	defer frames.Close()

	report.FramesSampled = frames.Len()
	r.recorder.FramesDecoded.Add(float64(report.FramesSampled))
	if report.FramesSampled == 0 {
		return report, noFramesError(video)
	}

	stageDone = r.recorder.Stage("detect")
	result, err := videoregion.Detect(frames, videoregion.Options{
		CheckHeader:          settings.CheckHeader,
		CheckBanner:          settings.CheckBanner,
		DiffThreshold:        settings.DiffThreshold,
		StaticScoreThreshold: settings.StaticScoreThreshold,
	})
	stageDone()
	if err != nil {
		return report, err
	}
	defer result.Close()

	report.HeaderScore = result.HeaderScore
	report.BannerScore = result.BannerScore

	if err := videoexport.Prepare(ctx, r.sink); err != nil {
		return report, err
	}
	exporter := videoexport.New(r.sink, videoexport.DefaultJPEGQuality)

	stageDone = r.recorder.Stage("export")
	defer stageDone()

	bands := []struct {
		name    string
		checked bool
		score   float64
		slice   videoframe.Frame
		output  string
	}{
		{headerBand, settings.CheckHeader, result.HeaderScore, result.Header, settings.HeaderName},
		{bannerBand, settings.CheckBanner, result.BannerScore, result.Banner, settings.BannerName},
	}

	for _, band := range bands {
		if !band.checked {
			continue
		}
		r.recorder.BandStaticness.WithLabelValues(band.name).Set(band.score)
		log.Info("[%s] Static %s score: %.2f", report.RunID, band.name, band.score)

		if band.slice == nil {
			log.Info("[%s] No static %s found", report.RunID, band.name)
			continue
		}

		location, err := exporter.WriteFrame(ctx, band.slice, band.output)
		if err != nil {
			return report, err
		}
		format, _ := videoexport.FormatFromName(band.output)
		r.recorder.FilesWritten.WithLabelValues(string(format)).Inc()
		log.Info("[%s] Wrote static %s: %s", report.RunID, band.name, location)
		report.Locations = append(report.Locations, location)
	}

	return report, nil
}
