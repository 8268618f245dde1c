// Package metrics records per run counters and writes them out in the
// Prometheus text format for a node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tauraamui/xerror"
)

type Recorder struct {
	registry *prometheus.Registry

	FramesDecoded  prometheus.Counter
	FramesKept     prometheus.Counter
	FilesWritten   *prometheus.CounterVec
	BandStaticness *prometheus.GaugeVec
	StageDuration  *prometheus.HistogramVec
	LastRunSuccess *prometheus.GaugeVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		FramesDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "longshot_frames_decoded_total",
			Help: "Frames decoded from the input video",
		}),
		FramesKept: factory.NewCounter(prometheus.CounterOpts{
			Name: "longshot_frames_kept_total",
			Help: "Frames kept by the uniqueness filter",
		}),
		FilesWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "longshot_files_written_total",
			Help: "Images written, by format",
		}, []string{"format"}),
		BandStaticness: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "longshot_band_staticness",
			Help: "Mean static mask score of a band, 0 to 255",
		}, []string{"band"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "longshot_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}, []string{"stage"}),
		LastRunSuccess: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "longshot_last_run_success",
			Help: "1 when the last run of a pipeline succeeded, 0 otherwise",
		}, []string{"pipeline"}),
	}
}

// Stage starts timing a named stage; call the returned func when it ends.
func (r *Recorder) Stage(name string) func() {
	start := time.Now()
	return func() {
		r.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile atomically writes every recorded metric to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return xerror.Errorf("unable to write metrics to %s: %w", path, err)
	}
	return nil
}
