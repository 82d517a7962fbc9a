// Package testabilities builds HelloWorld tokens and transactions for tests.
package testabilities

import (
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/pushdrop"
	"github.com/bsv-blockchain/go-sdk/chainhash"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	testvectors "github.com/bsv-blockchain/universal-test-vectors/pkg/testabilities"
	"github.com/stretchr/testify/require"
)

// GivenKey returns a fresh private key.
func GivenKey(t *testing.T) *ec.PrivateKey {
	t.Helper()

	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	return priv
}

// SignedLock returns a PushDrop locking script over fields signed by priv.
func SignedLock(t *testing.T, priv *ec.PrivateKey, fields ...string) *script.Script {
	t.Helper()

	raw := make([][]byte, 0, len(fields))
	for _, f := range fields {
		raw = append(raw, []byte(f))
	}
	sig, err := pushdrop.Sign(priv, raw)
	require.NoError(t, err)

	lock, err := pushdrop.Lock(priv.PubKey(), raw, sig, pushdrop.PositionBefore)
	require.NoError(t, err)
	return lock
}

// MessageLock returns the locking script of a valid HelloWorld token carrying message.
func MessageLock(t *testing.T, message string) *script.Script {
	t.Helper()
	return SignedLock(t, GivenKey(t), message)
}

// P2PKHLike returns a non-PushDrop locking script.
func P2PKHLike(t *testing.T) *script.Script {
	t.Helper()

	s := &script.Script{}
	require.NoError(t, s.AppendOpcodes(script.OpDUP, script.OpHASH160))
	require.NoError(t, s.AppendPushData(make([]byte, 20)))
	require.NoError(t, s.AppendOpcodes(script.OpEQUALVERIFY, script.OpCHECKSIG))
	return s
}

// Tx is a serialized test transaction.
type Tx struct {
	Raw  []byte
	TxID *chainhash.Hash
}

// GivenTx serializes a raw transaction spending source:sourceIndex with one
// 1-satoshi output per locking script.
func GivenTx(t *testing.T, source chainhash.Hash, sourceIndex uint32, locks ...*script.Script) Tx {
	t.Helper()

	tx := &transaction.Transaction{
		Version: 1,
		Inputs: []*transaction.TransactionInput{{
			SourceTXID:       &source,
			SourceTxOutIndex: sourceIndex,
			UnlockingScript:  &script.Script{},
			SequenceNumber:   0xffffffff,
		}},
	}
	for _, lock := range locks {
		tx.Outputs = append(tx.Outputs, &transaction.TransactionOutput{Satoshis: 1, LockingScript: lock})
	}
	raw := tx.Bytes()
	require.NotEmpty(t, raw)
	return Tx{Raw: raw, TxID: tx.TxID()}
}

// GivenFundedTx is GivenTx spending an arbitrary funding output.
func GivenFundedTx(t *testing.T, locks ...*script.Script) Tx {
	t.Helper()
	return GivenTx(t, chainhash.DoubleHashH([]byte(t.Name())), 0, locks...)
}

// DummyTxBEEF returns a valid BEEF transaction with a single P2PKH output.
func DummyTxBEEF(t *testing.T) []byte {
	t.Helper()

	dummyTx := testvectors.GivenTX().
		WithInput(1000).
		WithP2PKHOutput(999).
		TX()

	bb, err := dummyTx.BEEF()
	require.NoError(t, err)
	require.NotEmpty(t, bb)
	return bb
}
