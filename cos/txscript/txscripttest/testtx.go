// Package txscripttest provides a small builder for constructing
// throwaway transactions in tests that want to execute a single input's
// scripts without hand-assembling a full bc.TxData.
package txscripttest

import (
	"fmt"

	"chain/cos/bc"
	"chain/cos/txscript"
)

// NewTestTx constructs a fresh TestTx.
func NewTestTx() *TestTx {
	return &TestTx{data: bc.TxData{Version: 1, LockTime: 0}}
}

// TestTx builds a bc.TxData in order to test the execution of a
// pkScript against one of its inputs.
type TestTx struct {
	data bc.TxData
}

// AddInput adds a new input spending the given previous outpoint, with
// the given signature script and witness.
func (tx *TestTx) AddInput(prev bc.Outpoint, sigScript []byte, witness [][]byte) *TestTx {
	tx.data.Inputs = append(tx.data.Inputs, &bc.TxIn{
		Previous:        prev,
		SignatureScript: sigScript,
		Sequence:        0xffffffff,
		Witness:         witness,
	})
	return tx
}

// AddOutput adds a new output to the transaction.
func (tx *TestTx) AddOutput(value int64, pkScript []byte) *TestTx {
	tx.data.Outputs = append(tx.data.Outputs, &bc.TxOut{Value: value, PkScript: pkScript})
	return tx
}

// Execute constructs a new txscript.Engine and executes the scripts for
// the input at the provided index against scriptPubKey, the previous
// output's public key script, and inputValue, its spent value.
func (tx *TestTx) Execute(inputIndex int, scriptPubKey []byte, inputValue int64, flags txscript.ScriptFlags) error {
	if inputIndex >= len(tx.data.Inputs) {
		return fmt.Errorf("input index %d; tx only has %d inputs", inputIndex, len(tx.data.Inputs))
	}

	vm, err := txscript.NewEngine(scriptPubKey, &tx.data, inputIndex, flags, inputValue, nil)
	if err != nil {
		return err
	}
	return vm.Execute()
}
