package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
	"github.com/tauraamui/xerror"
)

func create(override string) error {
	data, err := loadRawDefaultConfig()
	if err != nil {
		return xerror.Errorf("unable to init default config into memory: %w", err)
	}

	path, err := resolveConfigPathWithParent(override)
	if err != nil {
		return err
	}

	err = writeConfigToDisk(data, path, false)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return configdef.ErrConfigAlreadyExists
		}
		return err
	}

	log.Info("Created default config at: %s", path)
	return nil
}

func destroy(override string) error {
	path, _, err := resolveConfigPath(override)
	if err != nil {
		return err
	}

	if err := fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return xerror.Errorf("%w: %s", configdef.ErrConfigNotFound, path)
		}
		return xerror.Errorf("unable to delete config file %s: %w", path, err)
	}

	log.Info("Removed config at: %s", path)
	return nil
}

func writeConfigToDisk(data []byte, path string, overwrite bool) error {
	flags := os.O_RDWR | os.O_CREATE
	if !overwrite {
		flags |= os.O_EXCL
	}

	file, err := fs.OpenFile(path, flags, 0666)
	if err != nil {
		return xerror.Errorf("unable to create/open file: %w", err)
	}
	defer file.Close()

	bc, err := file.Write(data)
	if err != nil {
		return xerror.Errorf("unable to write config to file: %s: %w", path, err)
	}

	if bc != len(data) {
		return xerror.Errorf("unable to write full config data to file: %s", path)
	}

	return nil
}

func loadRawDefaultConfig() ([]byte, error) {
	return json.MarshalIndent(Defaults(), "", " ")
}

func resolveConfigPathWithParent(override string) (string, error) {
	path, _, err := resolveConfigPath(override)
	if err != nil {
		return "", xerror.Errorf("unable to resolve config path: %w", err)
	}

	parentDirPath := filepath.Dir(path)
	if _, err := fs.Stat(parentDirPath); errors.Is(err, os.ErrNotExist) {
		if err := fs.MkdirAll(parentDirPath, os.ModeDir|os.ModePerm); err != nil {
			return "", xerror.Errorf("unable to create config parent directory: %w", err)
		}
	}

	return path, nil
}
