package log_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/tacusci/logging/v2"
	"github.com/tauraamui/longshot/pkg/log"
)

func TestSetLevelResolvesKnownNames(t *testing.T) {
	is := is.New(t)
	defer log.SetLevel("warn")

	log.SetLevel("DEBUG")
	is.Equal(logging.CurrentLoggingLevel, logging.DebugLevel)
	is.True(logging.CallbackLabel)

	log.SetLevel("info")
	is.Equal(logging.CurrentLoggingLevel, logging.InfoLevel)
	is.True(!logging.CallbackLabel)

	log.SetLevel(" silent ")
	is.Equal(logging.CurrentLoggingLevel, logging.SilentLevel)
}

func TestSetLevelFallsBackToWarn(t *testing.T) {
	is := is.New(t)

	log.SetLevel("")
	is.Equal(logging.CurrentLoggingLevel, logging.WarnLevel)

	log.SetLevel("verbose")
	is.Equal(logging.CurrentLoggingLevel, logging.WarnLevel)
}
