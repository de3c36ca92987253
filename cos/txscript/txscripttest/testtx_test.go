package txscripttest

import (
	"testing"

	"chain/cos/bc"
	"chain/cos/txscript"
)

func TestTestTxExecute(t *testing.T) {
	pkScript := []byte{txscript.OP_TRUE}

	tx := NewTestTx().
		AddInput(bc.Outpoint{Index: 0}, nil, nil).
		AddOutput(1000, []byte{txscript.OP_TRUE})

	if err := tx.Execute(0, pkScript, 1000, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTestTxExecuteFailure(t *testing.T) {
	pkScript := []byte{txscript.OP_FALSE}

	tx := NewTestTx().
		AddInput(bc.Outpoint{Index: 0}, nil, nil).
		AddOutput(1000, []byte{txscript.OP_TRUE})

	if err := tx.Execute(0, pkScript, 1000, 0); err == nil {
		t.Fatal("expected execution to fail against an OP_FALSE script")
	}
}

func TestTestTxExecuteBadIndex(t *testing.T) {
	tx := NewTestTx().AddInput(bc.Outpoint{Index: 0}, nil, nil)

	if err := tx.Execute(1, []byte{txscript.OP_TRUE}, 0, 0); err == nil {
		t.Fatal("expected out-of-range input index to fail")
	}
}
