package longshot_test

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/longshot"
	"github.com/tauraamui/longshot/pkg/metrics"
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoexport"
)

const (
	mockW = 600
	mockH = 400
)

func stitchSettings() configdef.Stitch {
	return configdef.Stitch{
		Threshold:   30,
		Ratio:       0.001,
		PNGName:     "long.png",
		JPEGName:    "long.jpg",
		JPEGQuality: 80,
	}
}

func staticSettings() configdef.StaticRegion {
	return configdef.StaticRegion{
		DiffThreshold:        30,
		StaticScoreThreshold: 250,
		CheckHeader:          true,
		CheckBanner:          true,
		SampleSize:           30,
		HeaderName:           "header.png",
		BannerName:           "banner.png",
	}
}

func boundsOf(t *testing.T, data []byte) image.Rectangle {
	t.Helper()
	img, err := videoexport.Decode(data)
	if err != nil {
		t.Fatalf("decoding written image: %v", err)
	}
	return img.Bounds()
}

func TestStitchWritesJPEGAndRemovesPNG(t *testing.T) {
	is := is.New(t)

	var infoLogs []string
	reset := overloadInfoLog(captureLog(&infoLogs))
	defer reset()

	sink := newMemorySink()
	recorder := metrics.New()
	runner := longshot.NewRunner(videobackend.MockWithFrames(4), sink, recorder)

	report, err := runner.Stitch(context.Background(), "TestRecording", stitchSettings())
	is.NoErr(err)
	is.True(len(report.RunID) > 0)
	is.Equal(report.FramesDecoded, 4)
	is.Equal(report.FramesKept, 4)
	is.Equal(report.Locations, []string{"mem://long.jpg"})
	is.Equal(sink.names(), []string{"long.jpg"})

	bounds := boundsOf(t, sink.files["long.jpg"])
	is.Equal(bounds.Dx(), mockW)
	is.Equal(bounds.Dy(), mockH*4)

	is.Equal(testutil.ToFloat64(recorder.FramesDecoded), 4.0)
	is.Equal(testutil.ToFloat64(recorder.FramesKept), 4.0)
	is.Equal(testutil.ToFloat64(recorder.FilesWritten.WithLabelValues("png")), 1.0)
	is.Equal(testutil.ToFloat64(recorder.FilesWritten.WithLabelValues("jpeg")), 1.0)
	is.Equal(testutil.ToFloat64(recorder.LastRunSuccess.WithLabelValues("stitch")), 1.0)

	is.True(containsLine(infoLogs, "Kept 4 unique frames out of 4"))
	is.True(containsLine(infoLogs, "Wrote compressed image: mem://long.jpg"))
}

func TestStitchKeepsPNGAndScalesJPEG(t *testing.T) {
	is := is.New(t)

	sink := newMemorySink()
	settings := stitchSettings()
	settings.KeepPNG = true
	settings.ThumbnailWidth = 300
	runner := longshot.NewRunner(videobackend.MockWithFrames(3), sink, nil)

	report, err := runner.Stitch(context.Background(), "TestRecording", settings)
	is.NoErr(err)
	is.Equal(report.Locations, []string{"mem://long.png", "mem://long.jpg"})

	pngBounds := boundsOf(t, sink.files["long.png"])
	is.Equal(pngBounds.Dx(), mockW)
	is.Equal(pngBounds.Dy(), mockH*3)

	jpegBounds := boundsOf(t, sink.files["long.jpg"])
	is.Equal(jpegBounds.Dx(), mockW/2)
	is.Equal(jpegBounds.Dy(), mockH*3/2)
}

func TestStitchRespectsFrameLimit(t *testing.T) {
	is := is.New(t)

	settings := stitchSettings()
	settings.FrameLimit = 2
	runner := longshot.NewRunner(videobackend.MockWithFrames(10), newMemorySink(), nil)

	report, err := runner.Stitch(context.Background(), "TestRecording", settings)
	is.NoErr(err)
	is.Equal(report.FramesDecoded, 2)
	is.Equal(report.FramesKept, 2)
}

func TestStitchOfEmptyVideoFails(t *testing.T) {
	is := is.New(t)

	recorder := metrics.New()
	runner := longshot.NewRunner(videobackend.MockWithFrames(0), newMemorySink(), recorder)

	_, err := runner.Stitch(context.Background(), "TestRecording", stitchSettings())
	is.True(errors.Is(err, videoerr.ErrDecode))
	is.Equal(testutil.ToFloat64(recorder.LastRunSuccess.WithLabelValues("stitch")), 0.0)
}

func TestStitchKeepsPNGWhenJPEGWriteFails(t *testing.T) {
	is := is.New(t)

	var warnLogs []string
	reset := overloadWarnLog(captureLog(&warnLogs))
	defer reset()

	sink := newMemorySink()
	sink.failOn = ".jpg"
	runner := longshot.NewRunner(videobackend.MockWithFrames(2), sink, nil)

	report, err := runner.Stitch(context.Background(), "TestRecording", stitchSettings())
	is.True(errors.Is(err, videoerr.ErrIO))
	is.Equal(report.Locations, []string{"mem://long.png"})
	is.Equal(sink.names(), []string{"long.png"})
	is.True(containsLine(warnLogs, "Keeping mem://long.png, conversion failed"))
}

func TestStitchWithCancelledContextFails(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := newMemorySink()
	runner := longshot.NewRunner(videobackend.MockWithFrames(2), sink, nil)
	_, err := runner.Stitch(ctx, "TestRecording", stitchSettings())
	is.True(errors.Is(err, videoerr.ErrDecode))
	is.Equal(len(sink.names()), 0)
}

func TestDetectStaticWritesHeaderAndBanner(t *testing.T) {
	is := is.New(t)

	sink := newMemorySink()
	recorder := metrics.New()
	runner := longshot.NewRunner(videobackend.MockWithFrames(5), sink, recorder)

	report, err := runner.DetectStatic(context.Background(), "TestRecording", staticSettings())
	is.NoErr(err)
	is.Equal(report.FramesSampled, 5)
	is.Equal(report.HeaderScore, 255.0)
	is.Equal(report.BannerScore, 255.0)
	is.Equal(report.Locations, []string{"mem://header.png", "mem://banner.png"})

	for _, name := range []string{"header.png", "banner.png"} {
		bounds := boundsOf(t, sink.files[name])
		is.Equal(bounds.Dx(), mockW)
		is.Equal(bounds.Dy(), mockH/10)
	}

	is.Equal(testutil.ToFloat64(recorder.BandStaticness.WithLabelValues("header")), 255.0)
	is.Equal(testutil.ToFloat64(recorder.FilesWritten.WithLabelValues("png")), 2.0)
	is.Equal(testutil.ToFloat64(recorder.LastRunSuccess.WithLabelValues("static")), 1.0)
}

func TestDetectStaticSamplesOnlySampleSize(t *testing.T) {
	is := is.New(t)

	settings := staticSettings()
	settings.SampleSize = 3
	runner := longshot.NewRunner(videobackend.MockWithFrames(20), newMemorySink(), nil)

	report, err := runner.DetectStatic(context.Background(), "TestRecording", settings)
	is.NoErr(err)
	is.Equal(report.FramesSampled, 3)
}

func TestDetectStaticSkipsUnrequestedBand(t *testing.T) {
	is := is.New(t)

	sink := newMemorySink()
	settings := staticSettings()
	settings.CheckBanner = false
	runner := longshot.NewRunner(videobackend.MockWithFrames(5), sink, nil)

	report, err := runner.DetectStatic(context.Background(), "TestRecording", settings)
	is.NoErr(err)
	is.Equal(report.Locations, []string{"mem://header.png"})
	is.Equal(sink.names(), []string{"header.png"})
}

func TestDetectStaticWriteFailure(t *testing.T) {
	is := is.New(t)

	sink := newMemorySink()
	sink.failOn = "header.png"
	runner := longshot.NewRunner(videobackend.MockWithFrames(5), sink, nil)

	_, err := runner.DetectStatic(context.Background(), "TestRecording", staticSettings())
	is.True(errors.Is(err, videoerr.ErrIO))
}

func containsLine(lines []string, sub string) bool {
	for _, line := range lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}
