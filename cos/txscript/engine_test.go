// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript_test

import (
	"crypto/sha256"
	"testing"

	"golang.org/x/crypto/ripemd160"

	"chain/cos/bc"
	"chain/cos/txscript"
)

func almostEmptyTx() *bc.TxData {
	return &bc.TxData{
		Version: 1,
		Inputs: []*bc.TxIn{{
			Previous: bc.Outpoint{
				Hash: bc.Hash([32]byte{
					0xc9, 0x97, 0xa5, 0xe5,
					0x6e, 0x10, 0x41, 0x02,
					0xfa, 0x20, 0x9c, 0x6a,
					0x85, 0x2d, 0xd9, 0x06,
					0x60, 0xa2, 0x0b, 0x2d,
					0x9c, 0x35, 0x24, 0x23,
					0xed, 0xce, 0x25, 0x85,
					0x7f, 0xcd, 0x37, 0x04,
				}),
				Index: 0,
			},
			Sequence: 0xffffffff,
		}},
		Outputs: []*bc.TxOut{{Value: 1000000000}},
	}
}

// TestCheckErrorConditionUnfinished confirms CheckErrorCondition reports
// execution-not-complete for every step before the script's last opcode,
// then succeeds once the final OP_TRUE has run.
func TestCheckErrorConditionUnfinished(t *testing.T) {
	t.Parallel()

	tx := almostEmptyTx()
	pkScript := []byte{
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_NOP,
		txscript.OP_TRUE,
	}

	vm, err := txscript.NewEngine(pkScript, tx, 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("failed to create script: %v", err)
	}

	for i := 0; i < len(pkScript)-1; i++ {
		done, err := vm.Step()
		if err != nil {
			t.Fatalf("failed to step %dth time: %v", i, err)
		}
		if done {
			t.Fatalf("finished early on %dth time", i)
		}

		err = vm.CheckErrorCondition(false)
		if !txscript.IsErrorCode(err, txscript.ErrInvalidStackOperation) {
			t.Fatalf("got unexpected error %v on %dth iteration", err, i)
		}
	}

	done, err := vm.Step()
	if err != nil {
		t.Fatalf("final step failed: %v", err)
	}
	if !done {
		t.Fatal("final step isn't done")
	}

	if err := vm.CheckErrorCondition(false); err != nil {
		t.Fatalf("unexpected error %v on final check", err)
	}
}

// TestStepInvalidOpcode confirms Step surfaces a parse/evaluation error
// rather than silently treating a reserved opcode as a no-op.
func TestStepInvalidOpcode(t *testing.T) {
	t.Parallel()

	tx := almostEmptyTx()
	pkScript := []byte{txscript.OP_VERIF}

	vm, err := txscript.NewEngine(pkScript, tx, 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("failed to create script: %v", err)
	}

	_, err = vm.Step()
	if err == nil {
		t.Fatal("expected OP_VERIF to fail execution")
	}
}

// TestExecuteCleanStack confirms Execute enforces ScriptVerifyCleanStack
// when the flag is set and the script leaves extra stack elements.
func TestExecuteCleanStack(t *testing.T) {
	t.Parallel()

	tx := almostEmptyTx()
	pkScript := []byte{txscript.OP_1, txscript.OP_1}

	vm, err := txscript.NewEngine(pkScript, tx, 0, txscript.ScriptVerifyCleanStack, 0, nil)
	if err != nil {
		t.Fatalf("failed to create script: %v", err)
	}

	err = vm.Execute()
	if !txscript.IsErrorCode(err, txscript.ErrCleanStack) {
		t.Fatalf("got %v, want ErrCleanStack", err)
	}
}

// buildP2SHP2WSH returns a trivial P2SH-wrapped P2WSH scriptPubKey (an
// OP_TRUE witness script) and the redeem script it wraps, for exercising
// the ScriptBip16|ScriptVerifyWitness code path.
func buildP2SHP2WSH(t *testing.T) (pkScript, redeemScript, witnessScript []byte) {
	t.Helper()

	witnessScript = []byte{txscript.OP_TRUE}
	program := sha256.Sum256(witnessScript)

	redeemScript, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).AddData(program[:]).Script()
	if err != nil {
		t.Fatalf("failed to build redeem script: %v", err)
	}

	redeemHash := sha256.Sum256(redeemScript)
	h := ripemd160.New()
	h.Write(redeemHash[:])
	scriptHash := h.Sum(nil)

	pkScript, err = txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).AddData(scriptHash).AddOp(txscript.OP_EQUAL).Script()
	if err != nil {
		t.Fatalf("failed to build pkScript: %v", err)
	}

	return pkScript, redeemScript, witnessScript
}

// TestP2SHWitnessValid confirms a clean P2SH-wrapped P2WSH spend succeeds
// under ScriptBip16|ScriptVerifyWitness even with ScriptVerifyCleanStack
// set, since the residual [version, program] stack left by the redeem
// script must not be measured against CLEANSTACK once a witness program
// is pending (spec §4.3 step 5; mirrors the bare-witness path).
func TestP2SHWitnessValid(t *testing.T) {
	t.Parallel()

	pkScript, redeemScript, witnessScript := buildP2SHP2WSH(t)

	sigScript, err := txscript.NewScriptBuilder().AddData(redeemScript).Script()
	if err != nil {
		t.Fatalf("failed to build sigScript: %v", err)
	}

	tx := almostEmptyTx()
	tx.Inputs[0].SignatureScript = sigScript
	tx.Inputs[0].Witness = [][]byte{witnessScript}

	flags := txscript.ScriptBip16 | txscript.ScriptVerifyWitness | txscript.ScriptVerifyCleanStack
	vm, err := txscript.NewEngine(pkScript, tx, 0, flags, 0, nil)
	if err != nil {
		t.Fatalf("failed to create script: %v", err)
	}

	if err := vm.Execute(); err != nil {
		t.Fatalf("unexpected error executing valid P2SH-wrapped witness spend: %v", err)
	}
}

// TestP2SHWitnessMalleated confirms a signature script that pushes more
// than just the redeem script onto the P2SH stack is rejected once the
// redeem script turns out to be a witness program, rather than silently
// accepted.
func TestP2SHWitnessMalleated(t *testing.T) {
	t.Parallel()

	pkScript, redeemScript, witnessScript := buildP2SHP2WSH(t)

	sigScript, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).AddData(redeemScript).Script()
	if err != nil {
		t.Fatalf("failed to build sigScript: %v", err)
	}

	tx := almostEmptyTx()
	tx.Inputs[0].SignatureScript = sigScript
	tx.Inputs[0].Witness = [][]byte{witnessScript}

	flags := txscript.ScriptBip16 | txscript.ScriptVerifyWitness
	vm, err := txscript.NewEngine(pkScript, tx, 0, flags, 0, nil)
	if err != nil {
		t.Fatalf("failed to create script: %v", err)
	}

	err = vm.Execute()
	if !txscript.IsErrorCode(err, txscript.ErrWitnessMalleatedP2SH) {
		t.Fatalf("got %v, want ErrWitnessMalleatedP2SH", err)
	}
}
