package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/otc/app"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/otctest"
	escrow "github.com/iov-one/otc/x/otc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

const chainID = "test-chain-client"

// appConn runs every broadcast tx through a local application and
// commits it in its own block.
type appConn struct {
	app    app.BaseApp
	height int64
	txs    []*ctypes.ResultTx
}

func newAppConn(t *testing.T) *appConn {
	base, err := app.Application(app.Options{HRP: otctest.HRP})
	require.NoError(t, err)
	state, err := app.GenInitOptions(otctest.NewAddress(t).String(), "")
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	return &appConn{app: base}
}

func (c *appConn) Status() (*ctypes.ResultStatus, error) {
	return &ctypes.ResultStatus{SyncInfo: ctypes.SyncInfo{LatestBlockHeight: c.height}}, nil
}

func (c *appConn) ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error) {
	return &ctypes.ResultABCIQuery{Response: c.app.Query(abci.RequestQuery{Path: path, Data: data})}, nil
}

func (c *appConn) BroadcastTxSync(tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error) {
	check := c.app.CheckTx(tx)
	if check.Code != 0 {
		return &ctypes.ResultBroadcastTx{Code: check.Code, Log: check.Log, Hash: tx.Hash()}, nil
	}
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: c.height}})
	res := c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	c.txs = append(c.txs, &ctypes.ResultTx{Hash: tx.Hash(), Height: c.height, TxResult: res, Tx: tx})
	return &ctypes.ResultBroadcastTx{Hash: tx.Hash()}, nil
}

func (c *appConn) Tx(hash []byte, prove bool) (*ctypes.ResultTx, error) {
	for _, tx := range c.txs {
		if string(tx.Hash) == string(hash) {
			return tx, nil
		}
	}
	return nil, fmt.Errorf("tx %X not found", hash)
}

// TxSearch only understands the deposit sender query.
func (c *appConn) TxSearch(query string, prove bool, page, perPage int) (*ctypes.ResultTxSearch, error) {
	var found []*ctypes.ResultTx
	for _, tx := range c.txs {
		var execute, sender string
		for _, tag := range tx.TxResult.Tags {
			switch string(tag.Key) {
			case "execute":
				execute = string(tag.Value)
			case "sender":
				sender = string(tag.Value)
			}
		}
		if query == fmt.Sprintf("execute='%s' AND sender='%s'", execute, sender) {
			found = append(found, tx)
		}
	}
	return &ctypes.ResultTxSearch{Txs: found, TotalCount: len(found)}, nil
}

func TestClientExchange(t *testing.T) {
	conn := newAppConn(t)
	c := NewClient(conn)
	cdc := app.MakeCodec()
	ctx := context.Background()

	pub, priv := otctest.NewKey(t)
	alice, err := otctest.Validator.PubKeyAddress(pub)
	require.NoError(t, err)

	seq, err := c.NextSequence(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)

	raw, err := app.SignTx(cdc, &escrow.DepositMsg{Exchange: asset.NewNative(50, "uusdc")},
		asset.Coins{asset.NewCoin(100, "ujuno")}, priv, chainID, seq)
	require.NoError(t, err)
	id, err := c.SubmitTx(ctx, raw)
	require.NoError(t, err)

	committed, err := c.GetTxByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, committed.Err)
	depositID, err := escrow.DecodeID(committed.Result.Data)
	require.NoError(t, err)

	entry, err := c.DepositByID(depositID)
	require.NoError(t, err)
	assert.Equal(t, alice, entry.Owner)
	assert.Equal(t, asset.NewNative(100, "ujuno"), entry.Deposit.Deposit)

	owned, err := c.DepositsByOwner(alice)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	created, err := c.DepositsCreatedBy(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, created, 1)

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Height)

	seq, err = c.NextSequence(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	// replaying the same tx fails in check
	_, err = c.SubmitTx(ctx, raw)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = c.DepositByID(depositID + 1)
	assert.True(t, errors.ErrNotFound.Is(err))
}
