package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
	"github.com/tauraamui/xerror"
	"gopkg.in/yaml.v3"
)

func load(override string) (configdef.Values, error) {
	values := Defaults()

	configPath, explicit, err := resolveConfigPath(override)
	if err != nil {
		return configdef.Values{}, err
	}

	file, err := readConfigFile(configPath)
	switch {
	case err == nil:
		log.Info("Resolved config file location: %s", configPath)
		if err := unmarshal(configPath, file, &values); err != nil {
			return configdef.Values{}, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		log.Debug("No config file at %s, using defaults", configPath)
	case errors.Is(err, os.ErrNotExist):
		return configdef.Values{}, xerror.Errorf("%w: %s", configdef.ErrConfigNotFound, configPath)
	default:
		return configdef.Values{}, xerror.Errorf("unable to read config file %s: %w", configPath, err)
	}

	if err := applyEnvOverrides(&values); err != nil {
		return configdef.Values{}, err
	}

	if err := values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	return values, nil
}

var readConfigFile = func(path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}

func unmarshal(path string, content []byte, values *configdef.Values) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, values)
	default:
		err = json.Unmarshal(content, values)
	}
	if err != nil {
		return pkgerrors.Errorf("parsing configuration error: %v", err)
	}
	return nil
}

func applyEnvOverrides(values *configdef.Values) error {
	if err := env.ParseWithOptions(values, env.Options{Prefix: envPrefix}); err != nil {
		return pkgerrors.Errorf("parsing configuration environment error: %v", err)
	}
	return nil
}
