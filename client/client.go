/*
Package client talks to a running otc node through the tendermint rpc.
It submits signed transactions and decodes deposit queries and delivery
results into the types of the escrow module.
*/
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/app"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/orm"
	escrow "github.com/iov-one/otc/x/otc"
	amino "github.com/tendermint/go-amino"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

const txPerPage = 50

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// Conn is the subset of the tendermint rpc client used here.
// rpcclient.Client satisfies it.
type Conn interface {
	Status() (*ctypes.ResultStatus, error)
	ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error)
	BroadcastTxSync(tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error)
	Tx(hash []byte, prove bool) (*ctypes.ResultTx, error)
	TxSearch(query string, prove bool, page, perPage int) (*ctypes.ResultTxSearch, error)
}

var _ Conn = (rpcclient.Client)(nil)

// Client wraps a tendermint connection to provide simple access to the
// escrow state.
type Client struct {
	conn Conn
	cdc  *amino.Codec
}

// NewClient wraps a Client around an existing tendermint connection.
func NewClient(conn Conn) *Client {
	return &Client{
		conn: conn,
		cdc:  app.MakeCodec(),
	}
}

// NewHTTPConnection takes a URL and sends all requests to the remote node
func NewHTTPConnection(remote string) rpcclient.Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// Status is the current status of the node we connect to.
type Status struct {
	Height     int64
	CatchingUp bool
}

// CommitResult is returned from the block (DeliverTx).
// Result is only set on success codes, Err is set if it was a failure code
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *app.TxResult
	Err    error
}

// Status returns current height and other (subjective) status info from this node
func (c *Client) Status(ctx context.Context) (*Status, error) {
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err.Error())
	}
	return &Status{
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// SubmitTx will submit the signed tx to the mempool and return the
// hash or the CheckTx error.
func (c *Client) SubmitTx(ctx context.Context, raw []byte) (TransactionID, error) {
	res, err := c.conn.BroadcastTxSync(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: %s", err.Error())
	}
	// a checktx error will not make it into a block
	if res.Code != 0 {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return res.Hash, nil
}

// GetTxByID returns the delivery result of a committed transaction.
func (c *Client) GetTxByID(ctx context.Context, id TransactionID) (*CommitResult, error) {
	tx, err := c.conn.Tx(id, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "get tx: %s", err.Error())
	}
	return c.commitResult(tx), nil
}

// DepositsCreatedBy searches the committed deposit transactions of a
// sender using the tags set on delivery.
func (c *Client) DepositsCreatedBy(ctx context.Context, sender otc.Address) ([]*CommitResult, error) {
	query := fmt.Sprintf("execute='deposit' AND sender='%s'", sender)
	search, err := c.conn.TxSearch(query, false, 1, txPerPage)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "search tx: %s", err.Error())
	}
	results := make([]*CommitResult, len(search.Txs))
	for i, tx := range search.Txs {
		results[i] = c.commitResult(tx)
	}
	return results, nil
}

func (c *Client) commitResult(tx *ctypes.ResultTx) *CommitResult {
	res, err := c.parseDeliver(tx.TxResult)
	return &CommitResult{
		ID:     tx.Hash,
		Height: tx.Height,
		Result: res,
		Err:    err,
	}
}

func (c *Client) parseDeliver(res abci.ResponseDeliverTx) (*app.TxResult, error) {
	if res.Code != 0 {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var out app.TxResult
	if err := c.cdc.UnmarshalBinaryBare(res.Data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return &out, nil
}

// Query runs an abci query and joins the returned result sets.
func (c *Client) Query(path string, data []byte) ([]otc.Model, error) {
	res, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "query %s: %s", path, err.Error())
	}
	resp := res.Response
	if resp.Code != 0 {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return app.JoinResults(&keys, &values)
}

// DepositByID returns the deposit with given id.
func (c *Client) DepositByID(id uint64) (*escrow.Entry, error) {
	entries, err := c.entries(escrow.QueryDeposits, orm.EncodeSequence(id))
	if err != nil {
		return nil, err
	}
	if len(entries) != 1 {
		return nil, errors.Wrapf(errors.ErrNotFound, "deposit %d", id)
	}
	return &entries[0], nil
}

// DepositsByOwner returns the open deposits of owner.
func (c *Client) DepositsByOwner(owner otc.Address) ([]escrow.Entry, error) {
	return c.entries(escrow.QueryDepositsByOwner, []byte(owner))
}

func (c *Client) entries(path string, data []byte) ([]escrow.Entry, error) {
	models, err := c.Query(path, data)
	if err != nil {
		return nil, err
	}
	out := make([]escrow.Entry, len(models))
	for i, m := range models {
		if err := json.Unmarshal(m.Value, &out[i]); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
		}
	}
	return out, nil
}

// NextSequence returns the sequence the next signature of addr must use.
func (c *Client) NextSequence(addr otc.Address) (uint64, error) {
	models, err := c.Query("/auth", []byte(addr))
	if err != nil {
		return 0, err
	}
	if len(models) != 1 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "%d sequences returned", len(models))
	}
	return orm.DecodeSequence(models[0].Value)
}
