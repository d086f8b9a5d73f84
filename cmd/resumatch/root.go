package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	logpkg "github.com/kailas-cloud/resumatch/internal/logger"
)

const app = "resumatch"

var (
	// Used for flags.
	envName  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "resumatch scores resumes against job descriptions with a TF-IDF model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "config environment, selects config/<env>.yaml (default is $ENV or local)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level: debug, info, warn, error")
}

// setup loads the configuration and builds the logger shared by all commands.
func setup() (config.Config, *zap.Logger, string, error) {
	env := envName
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return config.Config{}, nil, "", fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, env, nil
}
