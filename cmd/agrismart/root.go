package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agrismart/config"
	"agrismart/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agrismart",
		Short:         "Fertilizer advisory service and field tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newAnalyzeCmd(),
		newDosageCmd(),
		newGrowthCmd(),
		newExportCmd(),
		newContactsCmd(),
	)
	return root
}

// setup loads configuration and builds the logger. A config warning is
// logged, never fatal.
func setup() (config.AppConfig, *zap.Logger, error) {
	cfg, warn := config.Load()
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	if warn != nil {
		log.Warn("config", zap.Error(warn))
	}
	return cfg, log, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
