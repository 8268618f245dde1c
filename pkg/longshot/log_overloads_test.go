package longshot_test

import (
	"fmt"

	"github.com/tauraamui/longshot/pkg/log"
)

func overloadInfoLog(overload func(string, ...interface{})) func() {
	logInfoRef := log.Info
	log.Info = overload
	return func() { log.Info = logInfoRef }
}

func overloadWarnLog(overload func(string, ...interface{})) func() {
	logWarnRef := log.Warn
	log.Warn = overload
	return func() { log.Warn = logWarnRef }
}

func captureLog(into *[]string) func(string, ...interface{}) {
	return func(format string, a ...interface{}) {
		*into = append(*into, fmt.Sprintf(format, a...))
	}
}
