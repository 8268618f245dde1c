package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tauraamui/longshot/pkg/log"
)

var (
	cfgFile         string
	logLevel        string
	backendName     string
	metricsTextfile string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		stop()
		os.Exit(1)
	}
}

func reportError(err error) {
	log.Error("%s", err.Error())
}

var rootCmd = &cobra.Command{
	Use:           "longshot",
	Short:         "longshot - turn screen recordings into long screenshots",
	Long:          "Stitches the unique frames of a screen recording into one tall image, and cuts out the static header and banner of a recording.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(resolveLogLevel(logLevel, os.Getenv("LONGSHOT_LOGGING_LEVEL"), false))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $LONGSHOT_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or silent")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "video backend: opencv or mock")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "write run metrics in Prometheus text format to this file")

	rootCmd.AddCommand(stitchCmd)
	rootCmd.AddCommand(staticCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(removeSetupCmd)
}
