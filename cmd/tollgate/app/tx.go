package app

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/x/auth"
)

// Tx is a transaction in its JSON form. Signers are user names, the host
// executing the transaction trusts that they authorized it.
//
//	{"signers": ["alice"], "path": "treasury/distribute", "msg": {"token": "..."}}
type Tx struct {
	Signers []string        `json:"signers"`
	Path    string          `json:"path"`
	Msg     json.RawMessage `json:"msg"`

	msg tollgate.Msg
}

var _ tollgate.Tx = (*Tx)(nil)
var _ auth.SignedTx = (*Tx)(nil)

// NewTx returns a transaction carrying the given message.
func NewTx(msg tollgate.Msg, signers ...string) (*Tx, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot serialize message: %s", err)
	}
	return &Tx{Signers: signers, Path: msg.Path(), Msg: raw, msg: msg}, nil
}

// GetMsg returns the decoded message.
func (tx *Tx) GetMsg() (tollgate.Msg, error) {
	if tx.msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "message not decoded")
	}
	return tx.msg, nil
}

// GetSigners returns the conditions of the named signers.
func (tx *Tx) GetSigners() []tollgate.Condition {
	conds := make([]tollgate.Condition, 0, len(tx.Signers))
	for _, name := range tx.Signers {
		conds = append(conds, auth.UserCondition(name))
	}
	return conds
}

// decode resolves the message type from the path. A message without
// metadata gets the current schema.
func (tx *Tx) decode() error {
	newMsg, ok := messages[tx.Path]
	if !ok {
		return errors.Wrapf(errors.ErrMsg, "unknown path %q", tx.Path)
	}
	msg := newMsg()
	if len(tx.Msg) != 0 {
		if err := json.Unmarshal(tx.Msg, msg); err != nil {
			return errors.Wrapf(errors.ErrInput, "cannot decode %q message: %s", tx.Path, err)
		}
	}
	if meta := reflect.ValueOf(msg).Elem().FieldByName("Metadata"); meta.IsValid() && meta.IsNil() {
		meta.Set(reflect.ValueOf(&tollgate.Metadata{Schema: 1}))
	}
	tx.msg = msg
	return nil
}

// DecodeTx parses a single JSON transaction.
func DecodeTx(raw []byte) (*Tx, error) {
	txs, err := ReadTxs(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(txs) != 1 {
		return nil, errors.Wrapf(errors.ErrInput, "expected one transaction, got %d", len(txs))
	}
	return txs[0], nil
}

// ReadTxs parses a stream of JSON transactions.
func ReadTxs(r io.Reader) ([]*Tx, error) {
	dec := json.NewDecoder(r)
	var txs []*Tx
	for {
		var tx Tx
		switch err := dec.Decode(&tx); {
		case err == io.EOF:
			return txs, nil
		case err != nil:
			return nil, errors.Wrapf(errors.ErrInput, "transaction %d: %s", len(txs), err)
		}
		if err := tx.decode(); err != nil {
			return nil, errors.Wrapf(err, "transaction %d", len(txs))
		}
		txs = append(txs, &tx)
	}
}
