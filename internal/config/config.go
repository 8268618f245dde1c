package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/xerror"
)

const (
	vendorName     = "tauraamui"
	appName        = "longshot"
	configFileName = "config.json"
	configPathEnv  = "LONGSHOT_CONFIG"
	envPrefix      = "LONGSHOT_"
)

var fs afero.Fs = afero.NewOsFs()

// resolveConfigPath gives the explicit override if set, then the path in
// LONGSHOT_CONFIG, then the per user default location. The bool reports
// whether the path was asked for rather than defaulted.
func resolveConfigPath(override string) (string, bool, error) {
	if len(override) > 0 {
		return override, true, nil
	}

	if configPath := os.Getenv(configPathEnv); len(configPath) > 0 {
		return configPath, true, nil
	}

	configParentDir, err := userConfigDir()
	if err != nil {
		return "", false, xerror.Errorf("unable to resolve %s location: %w", configFileName, err)
	}

	return filepath.Join(
		configParentDir,
		vendorName,
		appName,
		configFileName), false, nil
}

var userConfigDir = func() (string, error) {
	return os.UserConfigDir()
}
