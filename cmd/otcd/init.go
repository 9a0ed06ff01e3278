package main

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/otc/app"
	"github.com/iov-one/otc/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <fee-address> [service-fee]",
		Short: "Initialize app options in genesis file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fee string
			if len(args) > 1 {
				fee = args[1]
			}
			options, err := app.GenInitOptions(args[0], fee)
			if err != nil {
				return err
			}
			genFile := viper.GetString(flagGenesis)
			if genFile == "" {
				genFile = filepath.Join(viper.GetString(flagHome), "config", "genesis.json")
			}
			return addGenesisOptions(genFile, options)
		},
	}
	cmd.Flags().String(flagGenesis, "", "genesis file to update, defaults to <home>/config/genesis.json")
	_ = viper.BindPFlag(flagGenesis, cmd.Flags().Lookup(flagGenesis))
	return cmd
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file: %s", err)
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
