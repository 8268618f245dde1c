package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tauraamui/longshot/internal/config"
	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
	"github.com/tauraamui/longshot/pkg/longshot"
	"github.com/tauraamui/longshot/pkg/metrics"
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoexport"
)

// resolveLogLevel picks the first level set, from the flag then the
// environment then the config file's debug switch.
func resolveLogLevel(flagLevel, envLevel string, debug bool) string {
	if len(flagLevel) > 0 {
		return flagLevel
	}
	if len(envLevel) > 0 {
		return envLevel
	}
	if debug {
		return "debug"
	}
	return "warn"
}

// loadValues resolves config and lays any flags the user set over it.
func loadValues(cmd *cobra.Command, resolver configdef.Resolver) (configdef.Values, error) {
	values, err := resolver.Resolve()
	if err != nil {
		return configdef.Values{}, err
	}

	flags := cmd.Flags()
	if !flags.Changed("log-level") {
		log.SetLevel(resolveLogLevel("", values.LogLevel, values.Debug))
	}
	if flags.Changed("backend") {
		values.Backend = backendName
	}
	if flags.Changed("metrics-textfile") {
		values.MetricsTextfile = metricsTextfile
	}

	return values, nil
}

func resolveSink(values configdef.Values) (videoexport.Sink, error) {
	if strings.EqualFold(values.Sink.Kind, "minio") {
		return videoexport.MinIOSink(videoexport.MinIOConfig{
			Endpoint:  values.Sink.Endpoint,
			AccessKey: values.Sink.AccessKey,
			SecretKey: values.Sink.SecretKey,
			UseSSL:    values.Sink.UseSSL,
			Bucket:    values.Sink.Bucket,
			Prefix:    values.Sink.Prefix,
		})
	}
	return videoexport.LocalSink(values.OutputDir), nil
}

// newRunner builds a runner from values once they have been validated
// again with every flag applied.
func newRunner(values configdef.Values) (longshot.Runner, *metrics.Recorder, error) {
	if err := values.RunValidate(); err != nil {
		return nil, nil, err
	}

	sink, err := resolveSink(values)
	if err != nil {
		return nil, nil, err
	}

	recorder := metrics.New()
	return longshot.NewRunner(videobackend.Resolve(values.Backend), sink, recorder), recorder, nil
}

func writeMetrics(values configdef.Values, recorder *metrics.Recorder) {
	if len(values.MetricsTextfile) == 0 {
		return
	}
	if err := recorder.WriteTextfile(values.MetricsTextfile); err != nil {
		log.Warn("Unable to write metrics: %s", err.Error())
		return
	}
	log.Debug("Wrote metrics to: %s", values.MetricsTextfile)
}

var resolverFor = func(path string) configdef.Resolver {
	return config.DefaultResolver(path)
}
