package longshot

import (
	"context"

	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videodiff"
	"github.com/tauraamui/longshot/pkg/video/videoexport"
	"github.com/tauraamui/longshot/pkg/video/videostitch"
)

// Stitch decodes video, drops frames too similar to the one before them,
// stacks what is left into one tall image and writes it as a PNG. The
// PNG is then re-encoded as a JPEG and removed unless asked to keep it.
func (r *runner) Stitch(ctx context.Context, video string, settings configdef.Stitch) (report StitchReport, err error) {
	report.RunID = newRunID()
	defer func() { r.markRun(stitchPipeline, err) }()

	log.Info("[%s] Decoding video: %s", report.RunID, video)
	stageDone := r.recorder.Stage("decode")
	frames, err := videobackend.Decode(ctx, r.backend, video, settings.FrameLimit)
	stageDone()
	if err != nil {
		return report, err
	}
	defer frames.Close()

	report.FramesDecoded = frames.Len()
	r.recorder.FramesDecoded.Add(float64(report.FramesDecoded))
	if report.FramesDecoded == 0 {
		return report, noFramesError(video)
	}

	stageDone = r.recorder.Stage("filter")
	unique, err := videodiff.Unique(frames, videodiff.Options{
		Threshold: settings.Threshold,
		Ratio:     settings.Ratio,
	})
	stageDone()
	if err != nil {
		return report, err
	}

	report.FramesKept = unique.Len()
	r.recorder.FramesKept.Add(float64(report.FramesKept))
	log.Info("[%s] Kept %d unique frames out of %d", report.RunID, report.FramesKept, report.FramesDecoded)

	stageDone = r.recorder.Stage("stitch")
	composite, err := videostitch.Stitch(unique)
	stageDone()
	if err != nil {
		return report, err
	}
	defer composite.Close()

	if err := videoexport.Prepare(ctx, r.sink); err != nil {
		return report, err
	}
	exporter := videoexport.New(r.sink, settings.JPEGQuality)

	stageDone = r.recorder.Stage("export")
	defer stageDone()

	img, err := videoexport.ToImage(composite)
	if err != nil {
		return report, err
	}

	pngLocation, pngData, err := exporter.WriteImage(ctx, img, settings.PNGName)
	if err != nil {
		return report, err
	}
	r.recorder.FilesWritten.WithLabelValues(string(videoexport.PNG)).Inc()
	log.Info("[%s] Wrote stitched image: %s", report.RunID, pngLocation)

	jpegLocation, err := r.convertToJPEG(ctx, exporter, pngData, settings)
	if err != nil {
		log.Warn("[%s] Keeping %s, conversion failed", report.RunID, pngLocation)
		report.Locations = append(report.Locations, pngLocation)
		return report, err
	}
	log.Info("[%s] Wrote compressed image: %s", report.RunID, jpegLocation)

	if settings.KeepPNG {
		report.Locations = append(report.Locations, pngLocation)
	} else {
		if err := exporter.Remove(ctx, settings.PNGName); err != nil {
			return report, err
		}
		log.Debug("[%s] Removed intermediate image: %s", report.RunID, pngLocation)
	}
	report.Locations = append(report.Locations, jpegLocation)

	return report, nil
}

func (r *runner) convertToJPEG(ctx context.Context, exporter *videoexport.Exporter, pngData []byte, settings configdef.Stitch) (string, error) {
	img, err := videoexport.Decode(pngData)
	if err != nil {
		return "", err
	}

	img = videoexport.Thumbnail(img, settings.ThumbnailWidth)
	location, _, err := exporter.WriteImage(ctx, img, settings.JPEGName)
	if err != nil {
		return "", err
	}
	r.recorder.FilesWritten.WithLabelValues(string(videoexport.JPEG)).Inc()
	return location, nil
}
