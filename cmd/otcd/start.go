package main

import (
	"path/filepath"

	"github.com/iov-one/otc/app"
	"github.com/iov-one/otc/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	cmn "github.com/tendermint/tendermint/libs/common"
)

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart()
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().String(flagHRP, "juno", "human readable prefix of accepted addresses")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	_ = viper.BindPFlag(flagBind, cmd.Flags().Lookup(flagBind))
	_ = viper.BindPFlag(flagHRP, cmd.Flags().Lookup(flagHRP))
	_ = viper.BindPFlag(flagDebug, cmd.Flags().Lookup(flagDebug))
	return cmd
}

func runStart() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	dbPath := filepath.Join(viper.GetString(flagHome), "otc.db")
	application, err := app.Application(app.Options{
		DBPath: dbPath,
		HRP:    viper.GetString(flagHRP),
		Debug:  viper.GetBool(flagDebug),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	addr := viper.GetString(flagBind)
	logger.Info("Starting ABCI app", "bind", addr, "db", dbPath)

	svr, err := server.NewServer(addr, "socket", application)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return err
	}

	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("stopping abci server", "err", err)
		}
	})

	// Wait forever
	select {}
}
