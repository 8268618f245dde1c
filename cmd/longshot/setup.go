package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/tauraamui/longshot/internal/config"
	"github.com/tauraamui/longshot/pkg/configdef"
	"github.com/tauraamui/longshot/pkg/log"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(config.DefaultCreator(cfgFile))
	},
}

func runSetup(creator configdef.Creator) error {
	log.Info("Setting up longshot...")
	if err := creator.Create(); err != nil {
		if errors.Is(err, configdef.ErrConfigAlreadyExists) {
			log.Info("Keeping existing config, %s", err.Error())
			return nil
		}
		return err
	}
	log.Info("Setup successful...")
	return nil
}

var removeSetupCmd = &cobra.Command{
	Use:   "remove-setup",
	Short: "Delete the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("Removing setup for longshot...")
		if err := config.DefaultDestroyer(cfgFile).Destroy(); err != nil {
			log.Error("unable to delete config file: %s", err.Error())
		}
		log.Info("Removing setup successful...")
		return nil
	},
}
