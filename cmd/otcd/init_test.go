package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/otctest"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAddsAppState(t *testing.T) {
	dir, err := ioutil.TempDir("", "otcd-init")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	defer viper.Reset()

	genFile := filepath.Join(dir, "genesis.json")
	require.NoError(t, ioutil.WriteFile(genFile, []byte(`{"chain_id":"test-chain-otc"}`), 0600))

	feeAddr := otctest.NewAddress(t)
	root := rootCmd()
	root.SetArgs([]string{"init", feeAddr.String(), "0.05", "--genesis", genFile, "--home", dir})
	require.NoError(t, root.Execute())

	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)
	var doc struct {
		ChainID  string `json:"chain_id"`
		AppState struct {
			OTC struct {
				FeeAddress string `json:"fee_address"`
				ServiceFee string `json:"service_fee"`
			} `json:"otc"`
		} `json:"app_state"`
	}
	require.NoError(t, json.Unmarshal(bz, &doc))
	assert.Equal(t, "test-chain-otc", doc.ChainID)
	assert.Equal(t, feeAddr.String(), doc.AppState.OTC.FeeAddress)
	assert.Equal(t, "0.05", doc.AppState.OTC.ServiceFee)
}

func TestInitMissingGenesis(t *testing.T) {
	err := addGenesisOptions(filepath.Join(os.TempDir(), "no-such-otcd", "genesis.json"), json.RawMessage(`{}`))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestLevelOption(t *testing.T) {
	for _, level := range []string{"debug", "info", "error", "none"} {
		_, err := levelOption(level)
		assert.NoError(t, err, level)
	}
	_, err := levelOption("loud")
	assert.Error(t, err)
}
