// Package longshot runs the two frame pipelines: stitching the unique
// frames of a recording into one long image, and cutting out the static
// header and banner bands of a recording.
package longshot

import (
	"context"

	"github.com/google/uuid"
	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/metrics"
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoexport"
)

const (
	stitchPipeline = "stitch"
	staticPipeline = "static"
)

type Runner interface {
	Stitch(ctx context.Context, video string, settings configdef.Stitch) (StitchReport, error)
	DetectStatic(ctx context.Context, video string, settings configdef.StaticRegion) (StaticReport, error)
}

type StitchReport struct {
	RunID         string
	FramesDecoded int
	FramesKept    int
	Locations     []string
}

type StaticReport struct {
	RunID         string
	FramesSampled int
	HeaderScore   float64
	BannerScore   float64
	Locations     []string
}

func NewRunner(backend videobackend.Backend, sink videoexport.Sink, recorder *metrics.Recorder) Runner {
	if recorder == nil {
		recorder = metrics.New()
	}
	return &runner{
		backend:  backend,
		sink:     sink,
		recorder: recorder,
	}
}

type runner struct {
	backend  videobackend.Backend
	sink     videoexport.Sink
	recorder *metrics.Recorder
}

func (r *runner) markRun(pipeline string, err error) {
	if err != nil {
		r.recorder.LastRunSuccess.WithLabelValues(pipeline).Set(0)
		return
	}
	r.recorder.LastRunSuccess.WithLabelValues(pipeline).Set(1)
}

func newRunID() string {
	return uuid.NewString()
}

func noFramesError(video string) error {
	return videoerr.Decode("no frames decoded from %s", video)
}
