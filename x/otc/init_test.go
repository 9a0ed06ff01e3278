package otc

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/otctest"
	"github.com/iov-one/otc/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	feeAddr := otctest.NewAddress(t)

	cases := map[string]struct {
		genesis  string
		wantErr  *errors.Error
		wantFee  string
		wantName string
	}{
		"defaults": {
			genesis:  `{"otc": {"fee_address": "` + feeAddr.String() + `"}}`,
			wantFee:  "0.01",
			wantName: DefaultContractName,
		},
		"explicit": {
			genesis:  `{"otc": {"fee_address": "` + feeAddr.String() + `", "service_fee": "0.025", "contract_name": "juno-otc"}}`,
			wantFee:  "0.025",
			wantName: "juno-otc",
		},
		"fee of one": {
			genesis: `{"otc": {"fee_address": "` + feeAddr.String() + `", "service_fee": "1"}}`,
			wantErr: errors.ErrInvalidInput,
		},
		"negative fee": {
			genesis: `{"otc": {"fee_address": "` + feeAddr.String() + `", "service_fee": "-0.1"}}`,
			wantErr: errors.ErrInvalidInput,
		},
		"bad address": {
			genesis: `{"otc": {"fee_address": "cosmos1xyz"}}`,
			wantErr: errors.ErrInvalidInput,
		},
		"missing section": {
			genesis: `{}`,
			wantErr: errors.ErrEmpty,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var opts otc.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))
			db := store.MemStore()

			init := Initializer{Validator: otctest.Validator}
			err := init.FromGenesis(opts, db)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			fee, err := LoadFeeConfig(db)
			require.NoError(t, err)
			assert.Equal(t, feeAddr, fee.FeeAddress)
			wantFee, err := decimal.NewFromString(tc.wantFee)
			require.NoError(t, err)
			assert.True(t, fee.ServiceFee.Equal(wantFee), "fee %s", fee.ServiceFee)

			info, err := LoadContractInfo(db)
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, info.Name)
			assert.Equal(t, otc.Version(), info.Version)
		})
	}
}

func TestConfigNotInitialized(t *testing.T) {
	db := store.MemStore()
	_, err := LoadFeeConfig(db)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = LoadContractInfo(db)
	assert.True(t, errors.ErrNotFound.Is(err))
}
