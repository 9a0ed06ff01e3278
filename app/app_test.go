package app

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/orm"
	"github.com/iov-one/otc/otctest"
	escrow "github.com/iov-one/otc/x/otc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	amino "github.com/tendermint/go-amino"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

const testChainID = "test-chain-otc"

type account struct {
	addr otc.Address
	priv ed25519.PrivateKey
	seq  uint64
}

func newAccount(t *testing.T) *account {
	pub, priv := otctest.NewKey(t)
	addr, err := otctest.Validator.PubKeyAddress(pub)
	require.NoError(t, err)
	return &account{addr: addr, priv: priv}
}

// sign returns a signed tx for the next sequence of the account.
func (a *account) sign(t *testing.T, cdc *amino.Codec, msg otc.Msg, funds ...asset.Coin) []byte {
	raw, err := SignTx(cdc, msg, funds, a.priv, testChainID, a.seq)
	require.NoError(t, err)
	a.seq++
	return raw
}

func newTestApp(t *testing.T, feeAddr otc.Address) BaseApp {
	t.Helper()
	app, err := Application(Options{HRP: otctest.HRP})
	require.NoError(t, err)

	state, err := GenInitOptions(feeAddr.String(), "0.02")
	require.NoError(t, err)
	app.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: state})
	return app
}

func decodeResult(t *testing.T, cdc *amino.Codec, res abci.ResponseDeliverTx) TxResult {
	t.Helper()
	require.Equal(t, uint32(0), res.Code, res.Log)
	var out TxResult
	require.NoError(t, cdc.UnmarshalBinaryBare(res.Data, &out))
	return out
}

func TestExchangeOverABCI(t *testing.T) {
	cdc := MakeCodec()
	alice, bob := newAccount(t), newAccount(t)
	app := newTestApp(t, otctest.NewAddress(t))
	assert.Equal(t, testChainID, app.GetChainID())

	app.BeginBlock(abci.RequestBeginBlock{})
	depositTx := alice.sign(t, cdc,
		&escrow.DepositMsg{Exchange: asset.NewNative(50, "uusdc")},
		asset.NewCoin(100, "ujuno"))

	check := app.CheckTx(depositTx)
	require.Equal(t, uint32(0), check.Code, check.Log)
	assert.True(t, check.GasWanted > 0)

	res := decodeResult(t, cdc, app.DeliverTx(depositTx))
	id, err := escrow.DecodeID(res.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	app.EndBlock(abci.RequestEndBlock{})
	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	q := app.Query(abci.RequestQuery{Path: escrow.QueryDeposits, Data: orm.EncodeSequence(id)})
	require.Equal(t, uint32(0), q.Code, q.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(q.Value))
	require.Len(t, values.Results, 1)
	var entry struct {
		Owner otc.Address `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(values.Results[0], &entry))
	assert.Equal(t, alice.addr, entry.Owner)

	// a replayed tx is rejected by the signature check
	replay := app.DeliverTx(depositTx)
	code, _ := errors.ABCIInfo(errors.ErrUnauthorized, false)
	assert.Equal(t, code, replay.Code)

	app.BeginBlock(abci.RequestBeginBlock{})
	short := bob.sign(t, cdc, &escrow.AcceptExchangeMsg{DepositID: id}, asset.NewCoin(40, "uusdc"))
	failed := app.DeliverTx(short)
	code, _ = errors.ABCIInfo(errors.ErrIncorrectAmount, false)
	assert.Equal(t, code, failed.Code)

	// the failed call consumed bob's sequence
	accept := bob.sign(t, cdc, &escrow.AcceptExchangeMsg{DepositID: id}, asset.NewCoin(50, "uusdc"))
	settled := decodeResult(t, cdc, app.DeliverTx(accept))
	assert.Equal(t, []otc.Instruction{
		&escrow.BankSend{To: alice.addr, Coins: asset.Coins{asset.NewCoin(50, "uusdc")}},
		&escrow.BankSend{To: bob.addr, Coins: asset.Coins{asset.NewCoin(100, "ujuno")}},
	}, settled.Instructions)
	app.Commit()

	q = app.Query(abci.RequestQuery{Path: escrow.QueryDeposits, Data: orm.EncodeSequence(id)})
	code, _ = errors.ABCIInfo(errors.ErrNotFound, false)
	assert.Equal(t, code, q.Code)
}

func TestWithdrawFirstDepositOverABCI(t *testing.T) {
	cdc := MakeCodec()
	alice := newAccount(t)
	app := newTestApp(t, otctest.NewAddress(t))

	app.BeginBlock(abci.RequestBeginBlock{})
	for _, amount := range []uint64{10, 20} {
		tx := alice.sign(t, cdc, &escrow.DepositMsg{Exchange: asset.NewNative(1, "uusdc")}, asset.NewCoin(amount, "ujuno"))
		decodeResult(t, cdc, app.DeliverTx(tx))
	}

	withdraw := alice.sign(t, cdc, &escrow.WithdrawMsg{ID: 0})
	tx, err := TxDecoder(cdc)(withdraw)
	require.NoError(t, err)
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, &escrow.WithdrawMsg{ID: 0}, msg)

	res := decodeResult(t, cdc, app.DeliverTx(withdraw))
	assert.Equal(t, []otc.Instruction{
		&escrow.BankSend{To: alice.addr, Coins: asset.Coins{asset.NewCoin(10, "ujuno")}},
	}, res.Instructions)
	app.EndBlock(abci.RequestEndBlock{})
	app.Commit()

	q := app.Query(abci.RequestQuery{Path: escrow.QueryDepositsByOwner, Data: []byte(alice.addr.String())})
	require.Equal(t, uint32(0), q.Code, q.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(q.Value))
	require.Len(t, values.Results, 1)
	var entry struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(values.Results[0], &entry))
	assert.Equal(t, uint64(1), entry.ID)
}

func TestDeliverRejectsInvalidInstruction(t *testing.T) {
	app := BaseApp{cdc: MakeCodec()}

	res := app.deliverResponse(&otc.DeliverResult{
		Instructions: []otc.Instruction{
			&escrow.BankSend{To: "juno1x", Coins: asset.Coins{asset.NewCoin(1, "ujuno")}},
			&escrow.TokenTransfer{Contract: "juno1c", Recipient: "juno1x"},
		},
	}, nil)
	code, _ := errors.ABCIInfo(errors.ErrInvalidAmount, false)
	assert.Equal(t, code, res.Code)
	assert.Empty(t, res.Data)

	res = app.deliverResponse(&otc.DeliverResult{
		Instructions: []otc.Instruction{&escrow.BankSend{Coins: asset.Coins{asset.NewCoin(1, "ujuno")}}},
	}, nil)
	code, _ = errors.ABCIInfo(errors.ErrEmpty, false)
	assert.Equal(t, code, res.Code)

	ok := app.deliverResponse(&otc.DeliverResult{
		Instructions: []otc.Instruction{&escrow.BankSend{To: "juno1x", Coins: asset.Coins{asset.NewCoin(1, "ujuno")}}},
	}, nil)
	assert.Equal(t, uint32(0), ok.Code, ok.Log)
	assert.NotEmpty(t, ok.Data)
}

func TestUnknownQueryPath(t *testing.T) {
	app := newTestApp(t, otctest.NewAddress(t))
	q := app.Query(abci.RequestQuery{Path: "/nothing"})
	assert.NotEqual(t, uint32(0), q.Code)
	assert.Contains(t, q.Log, "/nothing")
}

func TestInitChainTwice(t *testing.T) {
	feeAddr := otctest.NewAddress(t)
	app := newTestApp(t, feeAddr)
	state, err := GenInitOptions(feeAddr.String(), "")
	require.NoError(t, err)
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: state})
	})
}

func TestBadTxBytes(t *testing.T) {
	app := newTestApp(t, otctest.NewAddress(t))
	res := app.DeliverTx([]byte("not a tx"))
	code, _ := errors.ABCIInfo(errors.ErrInvalidInput, false)
	assert.Equal(t, code, res.Code)
}

func TestResultSets(t *testing.T) {
	models := []otc.Model{
		otc.Pair([]byte("a"), []byte("1")),
		otc.Pair([]byte("b"), []byte("2")),
	}
	keys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	values, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var k, v ResultSet
	require.NoError(t, k.Unmarshal(keys))
	require.NoError(t, v.Unmarshal(values))
	joined, err := JoinResults(&k, &v)
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(&k, &ResultSet{})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
