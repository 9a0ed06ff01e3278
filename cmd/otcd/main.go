package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagBind     = "bind"
	flagHRP      = "hrp"
	flagDebug    = "debug"
	flagGenesis  = "genesis"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "otcd",
		Short: "Escrow based asset exchange ABCI application",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
		SilenceUsage: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".otcd")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")
	_ = viper.BindPFlag(flagHome, root.PersistentFlags().Lookup(flagHome))
	_ = viper.BindPFlag(flagLogLevel, root.PersistentFlags().Lookup(flagLogLevel))

	root.AddCommand(
		initCmd(),
		startCmd(),
		versionCmd(),
	)
	return root
}

// loadConfig reads otcd.toml from the home directory if present.
// Environment variables prefixed with OTCD_ override file values.
func loadConfig() error {
	viper.SetEnvPrefix("OTCD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("otcd")
	viper.SetConfigType("toml")
	viper.AddConfigPath(viper.GetString(flagHome))
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// newLogger returns a logger filtered by the configured level.
func newLogger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "otc")
	opt, err := levelOption(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}

func levelOption(level string) (log.Option, error) {
	switch level {
	case "debug":
		return log.AllowDebug(), nil
	case "info":
		return log.AllowInfo(), nil
	case "error":
		return log.AllowError(), nil
	case "none":
		return log.AllowNone(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
}
