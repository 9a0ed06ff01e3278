package app

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/store/iavl"
	escrow "github.com/iov-one/otc/x/otc"
	"github.com/iov-one/otc/x/sigs"
	"github.com/iov-one/otc/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the abci Info call.
const Name = "otc"

// Chain returns the chain of decorators every transaction passes:
// logging, panic recovery, signature verification and savepoints.
func Chain(validator otc.Bech32Validator) Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(validator),
		// on DeliverTx, a failing message keeps the incremented
		// signer sequence but leaves no partial ledger changes
		utils.NewSavepoint().OnDeliver(),
	)
}

// Routes returns a router dispatching to the escrow handlers.
func Routes(validator otc.AddressValidator) *Router {
	r := NewRouter()
	escrow.RegisterRoutes(r, validator)
	return r
}

// QueryRouter returns a query router serving deposits, configuration and
// signer sequences.
func QueryRouter(validator otc.AddressValidator) otc.QueryRouter {
	r := otc.NewQueryRouter()
	escrow.RegisterQuery(r, validator)
	sigs.RegisterQuery(r, validator)
	return r
}

// Stack wires up the standard router with the standard decorator chain.
func Stack(validator otc.Bech32Validator) otc.Handler {
	return Chain(validator).WithHandler(Routes(validator))
}

// Options configure an Application.
type Options struct {
	// DBPath is where the state is persisted, in memory if empty.
	DBPath string
	// HRP is the human readable prefix of all accepted addresses.
	HRP    string
	Debug  bool
	Logger log.Logger
}

// Application constructs the ABCI application: the escrow stack on top
// of a persistent store.
func Application(opts Options) (BaseApp, error) {
	if opts.HRP == "" {
		return BaseApp{}, errors.Wrap(errors.ErrEmpty, "address prefix")
	}
	validator := otc.Bech32Validator{HRP: opts.HRP}

	kv, err := CommitKVStore(opts.DBPath)
	if err != nil {
		return BaseApp{}, err
	}
	storeApp, err := NewStoreApp(Name, kv, QueryRouter(validator), context.Background())
	if err != nil {
		return BaseApp{}, err
	}
	if opts.Logger != nil {
		storeApp = storeApp.WithLogger(opts.Logger)
	}
	storeApp = storeApp.WithInit(&escrow.Initializer{Validator: validator})

	cdc := MakeCodec()
	return NewBaseApp(storeApp, TxDecoder(cdc), Stack(validator), cdc, opts.Debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (otc.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "database name: %s", dbPath)
	}

	// some callers add a ".db", which is removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}

// GenInitOptions produces the app state of a genesis file. The fee
// address is required.
func GenInitOptions(feeAddress string, serviceFee string) (json.RawMessage, error) {
	if feeAddress == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "fee address")
	}
	conf := map[string]interface{}{
		"fee_address":   feeAddress,
		"contract_name": escrow.DefaultContractName,
	}
	if serviceFee != "" {
		conf["service_fee"] = serviceFee
	}
	return json.Marshal(map[string]interface{}{
		escrow.OptionsKey: conf,
	})
}
