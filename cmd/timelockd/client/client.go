/*
Package client provides access to a running timelockd node through the
tendermint rpc interface. It knows how to query the wallet, the ledger and
the signature state, and how to broadcast transactions.
*/
package client

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/abi"
	"github.com/iov-one/timelock/app"
	timelockd "github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/eventlog"
	"github.com/iov-one/timelock/x/ledger"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

// Conn is the part of the tendermint rpc client this package needs.
type Conn interface {
	client.ABCIClient
	Genesis() (*ctypes.ResultGenesis, error)
}

// NewHTTPConnection takes a URL and sends all requests to the remote node
func NewHTTPConnection(remote string) Conn {
	return client.NewHTTP(remote, "/websocket")
}

// Client is a tendermint connection wrapped to provide simple access to the
// data structures of the timelock application.
type Client struct {
	conn Conn
}

// NewClient wraps a Client around an existing tendermint connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// ChainID returns the chain id declared in the genesis of the node.
func (c *Client) ChainID() (string, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrap(err, "genesis")
	}
	return gen.Genesis.ChainID, nil
}

// AbciResponse contains a query result:
// a (possibly empty) list of key-value pairs, and the height
// at which it queried
type AbciResponse struct {
	Models []timelock.Model
	Height int64
}

// AbciQuery calls abci query on tendermint rpc and pulls out the result
// sets from keys and values. A failed query is returned as the registered
// error of its code.
func (c *Client) AbciQuery(path string, data []byte) (AbciResponse, error) {
	var out AbciResponse

	q, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return out, errors.Wrap(err, "abci query")
	}
	resp := q.Response
	if resp.IsErr() {
		return out, errors.ABCIError(resp.Code, resp.Log)
	}
	out.Height = resp.Height

	if len(resp.Key) == 0 {
		return out, nil
	}
	out.Models, err = app.DecodeResults(resp.Key, resp.Value)
	return out, err
}

// NextNonce returns the sequence the next transaction signed by addr must
// carry.
func (c *Client) NextNonce(addr timelock.Address) (int64, error) {
	resp, err := c.AbciQuery("/sigs", addr)
	if err != nil {
		return 0, err
	}
	if len(resp.Models) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(resp.Models[0].Value); err != nil {
		return 0, errors.Wrap(errors.ErrModel, err.Error())
	}
	return user.Sequence, nil
}

// Balance returns the ledger balance of given address.
func (c *Client) Balance(addr timelock.Address) (*uint256.Int, error) {
	resp, err := c.AbciQuery("/accounts", addr)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return new(uint256.Int), nil
	}
	var acc ledger.Account
	if err := acc.Unmarshal(resp.Models[0].Value); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return acc.Amount(), nil
}

// Read executes one of the read only wallet methods and returns the
// resulting word.
func (c *Client) Read(signature string) (abi.Word, error) {
	var w abi.Word
	data, err := abi.EncodeRead(signature)
	if err != nil {
		return w, err
	}
	resp, err := c.AbciQuery("/call", data)
	if err != nil {
		return w, err
	}
	if len(resp.Models) != 1 {
		return w, errors.Wrapf(errors.ErrState, "%d results for %s", len(resp.Models), signature)
	}
	copy(w[:], resp.Models[0].Value)
	return w, nil
}

// Owner returns the wallet owner, the zero address before initialization.
func (c *Client) Owner() (timelock.Address, error) {
	w, err := c.Read(abi.SigOwner)
	if err != nil {
		return nil, err
	}
	return w.Address()
}

// UnlockTime returns the unix time from which the owner can withdraw.
func (c *Client) UnlockTime() (*uint256.Int, error) {
	w, err := c.Read(abi.SigUnlockTime)
	if err != nil {
		return nil, err
	}
	return w.Uint(), nil
}

// Events returns all recorded wallet events, oldest first.
func (c *Client) Events() ([]*eventlog.Record, error) {
	resp, err := c.AbciQuery("/events?"+timelock.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	records := make([]*eventlog.Record, 0, len(resp.Models))
	for _, m := range resp.Models {
		var r eventlog.Record
		if err := r.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		records = append(records, &r)
	}
	return records, nil
}

// BroadcastTxResponse is the result of submitting a transaction.
type BroadcastTxResponse struct {
	Error    error                           // not-nil if there was an error sending
	Response *ctypes.ResultBroadcastTxCommit // not-nil if we got response from node
}

// IsError returns the error for failure if any, otherwise nil. A wallet
// failure is reported as its wallet error kind.
func (b BroadcastTxResponse) IsError() error {
	if b.Error != nil {
		return b.Error
	}
	if b.Response.CheckTx.IsErr() {
		chk := b.Response.CheckTx
		return errors.Wrap(checkErr(chk.Code, chk.Log, chk.Data), "check tx")
	}
	if b.Response.DeliverTx.IsErr() {
		dtx := b.Response.DeliverTx
		return errors.Wrap(checkErr(dtx.Code, dtx.Log, dtx.Data), "deliver tx")
	}
	return nil
}

func checkErr(code uint32, log string, data []byte) error {
	if kind := abi.DecodeError(data); kind != nil {
		return errors.Wrap(kind, log)
	}
	return errors.ABCIError(code, log)
}

// BroadcastTx serializes a signed transaction and waits until it is
// committed.
func (c *Client) BroadcastTx(tx *timelockd.Tx) BroadcastTxResponse {
	data, err := tx.Marshal()
	if err != nil {
		return BroadcastTxResponse{Error: errors.Wrap(err, "marshal")}
	}
	res, err := c.conn.BroadcastTxCommit(data)
	return BroadcastTxResponse{
		Error:    err,
		Response: res,
	}
}

// SignTx adds a signature of given key to the transaction, using the chain
// id of the node and the next sequence of the signer.
func (c *Client) SignTx(tx *timelockd.Tx, key crypto.Signer) error {
	chainID, err := c.ChainID()
	if err != nil {
		return err
	}
	seq, err := c.NextNonce(key.PublicKey().Address())
	if err != nil {
		return errors.Wrap(err, "nonce")
	}
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
