// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/ripemd160"

	"chain/crypto"
	"chain/crypto/hash160"
	"chain/crypto/hash256"
	"chain/cos/bc"
)

// opcodeDisabled is a common handler for disabled opcodes. It returns an
// appropriate error indicating the opcode is disabled. While it would
// ordinarily make more sense to detect if the script contains any
// disabled opcodes before executing in an initial parse step, the
// consensus rules dictate the script doesn't fail until the program
// counter passes over a disabled opcode (even when they appear in a
// branch that is not executed).
func opcodeDisabled(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrDisabledOpcode,
		fmt.Sprintf("attempt to execute disabled opcode %s", op.opcode.name))
}

// opcodeReserved is a common handler for all reserved opcodes.
func opcodeReserved(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrBadOpcode,
		fmt.Sprintf("attempt to execute reserved opcode %s", op.opcode.name))
}

// opcodeInvalid is a common handler for all invalid opcodes.
func opcodeInvalid(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrBadOpcode,
		fmt.Sprintf("attempt to execute invalid opcode %s", op.opcode.name))
}

// opcodeFalse pushes an empty array to the data stack to represent false.
func opcodeFalse(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushByteArray(nil)
	return nil
}

// opcodePushData pushes the data associated with the opcode up onto the
// data stack.
func opcodePushData(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushByteArray(op.data)
	return nil
}

// opcode1Negate pushes -1, encoded as a number, to the data stack.
func opcode1Negate(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(-1))
	return nil
}

// opcodeN pushes the value of the opcode (1 through 16) to the data
// stack.
func opcodeN(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(int(op.opcode.value) - int(OP_1-1)))
	return nil
}

// opcodeNop is a common handler for the NOP family. Any NOPs beyond
// DISCOURAGE_UPGRADABLE_NOPS range may be rejected when the
// corresponding verification flag is set to reserve them for future
// soft-fork use.
func opcodeNop(op *parsedOpcode, vm *Engine) error {
	switch op.opcode.value {
	case OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		if vm.hasFlag(ScriptDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNops,
				fmt.Sprintf("%s reserved for upgrades", op.opcode.name))
		}
	}
	return nil
}

// popIfBool enforces the MINIMALIF rule (when active) and returns the
// boolean value guarding an OP_IF/OP_NOTIF.
func popIfBool(vm *Engine) (bool, error) {
	if vm.hasFlag(ScriptVerifyMinimalIf) && vm.sigVersion == bc.SigVersionWitness {
		so, err := vm.dstack.PopByteArray()
		if err != nil {
			return false, err
		}
		if len(so) > 1 {
			return false, scriptError(ErrMinimalIf, "condition must be 0 or 1 in a witness script")
		}
		if len(so) == 1 && so[0] != 1 {
			return false, scriptError(ErrMinimalIf, "condition must be 0 or 1 in a witness script")
		}
		return asBool(so), nil
	}
	return vm.dstack.PopBool()
}

// opcodeIf treats the top item on the data stack as a boolean and
// removes it. An appropriate entry is added to the conditional stack
// depending on the value of the boolean.
func opcodeIf(op *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfBool(vm)
		if err != nil {
			return err
		}
		if ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeNotIf treats the top item on the data stack as a boolean and
// removes it. An appropriate entry is added to the conditional stack
// depending on the inverse of the value of the boolean.
func opcodeNotIf(op *parsedOpcode, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfBool(vm)
		if err != nil {
			return err
		}
		if !ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeElse inverts the conditional execution value for the current
// conditional at the top of the conditional execution stack.
func opcodeElse(op *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional,
			"encountered opcode else with no matching if")
	}

	idx := len(vm.condStack) - 1
	switch vm.condStack[idx] {
	case OpCondTrue:
		vm.condStack[idx] = OpCondFalse
	case OpCondFalse:
		vm.condStack[idx] = OpCondTrue
	case OpCondSkip:
		// not executing, remains skipped
	}
	return nil
}

// opcodeEndif terminates a conditional block, removing the associated
// entry from the conditional execution stack.
func opcodeEndif(op *parsedOpcode, vm *Engine) error {
	if len(vm.condStack) == 0 {
		return scriptError(ErrUnbalancedConditional,
			"encountered opcode endif with no matching if")
	}
	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

// abstractVerify examines the top item on the data stack as a boolean
// and verifies it evaluates to true, failing with the given error code
// otherwise. The top item is popped regardless.
func abstractVerify(op *parsedOpcode, vm *Engine, c ErrorCode) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !verified {
		return scriptError(c, fmt.Sprintf("%s failed", op.opcode.name))
	}
	return nil
}

// opcodeVerify examines the top item on the data stack as a boolean and
// verifies it evaluates to true.
func opcodeVerify(op *parsedOpcode, vm *Engine) error {
	return abstractVerify(op, vm, ErrVerify)
}

// opcodeReturn returns an appropriate error since it is always an error
// to return early from a script.
func opcodeReturn(op *parsedOpcode, vm *Engine) error {
	return scriptError(ErrOpReturn, "script returned early")
}

// verifyLockTime is a helper function used to validate locktimes.
func verifyLockTime(txLockTime, threshold, lockTime int64) error {
	if !((txLockTime < threshold && lockTime < threshold) ||
		(txLockTime >= threshold && lockTime >= threshold)) {
		return scriptError(ErrUnsatisfiedLockTime,
			"mismatched locktime types")
	}
	if lockTime > txLockTime {
		return scriptError(ErrUnsatisfiedLockTime,
			fmt.Sprintf("locktime requirement not satisfied -- locktime is "+
				"greater than the transaction locktime: %d > %d", lockTime, txLockTime))
	}
	return nil
}

// lockTimeThreshold distinguishes a locktime/sequence value interpreted
// as a block height from one interpreted as a Unix timestamp.
const lockTimeThreshold = 5e8

// sequenceLockTimeMask extracts the relative locktime value from the
// sequence field, per BIP68.
const (
	sequenceLockTimeDisabled = 1 << 31
	sequenceLockTimeTypeFlag = 1 << 22
	sequenceLockTimeMask     = 0x0000ffff
)

// opcodeCheckLockTimeVerify compares the top item on the data stack to
// the transaction's locktime, enforcing BIP65's soft-fork semantics
// when the feature is not active.
func opcodeCheckLockTimeVerify(op *parsedOpcode, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckLockTimeVerify) {
		if vm.hasFlag(ScriptDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNops,
				"OP_NOP2 reserved for upgrades")
		}
		return nil
	}

	lockTime, err := vm.dstack.PeekIntWithMaxLen(0, 5)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return scriptError(ErrNegativeLockTime,
			fmt.Sprintf("negative lock time: %d", lockTime))
	}

	txIn := vm.tx.Inputs[vm.txIdx]
	if txIn.Sequence == 0xffffffff {
		return scriptError(ErrUnsatisfiedLockTime,
			"transaction input is finalized")
	}

	return verifyLockTime(int64(vm.tx.LockTime), lockTimeThreshold, int64(lockTime))
}

// opcodeCheckSequenceVerify compares the top item on the data stack to
// the relative locktime encoded in the input's sequence field, per
// BIP112's soft-fork semantics.
func opcodeCheckSequenceVerify(op *parsedOpcode, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckSequenceVerify) {
		if vm.hasFlag(ScriptDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNops,
				"OP_NOP3 reserved for upgrades")
		}
		return nil
	}

	sequence, err := vm.dstack.PeekIntWithMaxLen(0, 5)
	if err != nil {
		return err
	}
	if sequence < 0 {
		return scriptError(ErrNegativeLockTime,
			fmt.Sprintf("negative sequence: %d", sequence))
	}

	if sequence&sequenceLockTimeDisabled != 0 {
		return nil
	}

	if vm.tx.Version < 2 {
		return scriptError(ErrUnsatisfiedLockTime,
			"transaction version too low to enforce relative locktime")
	}

	txSequence := int64(vm.tx.Inputs[vm.txIdx].Sequence)
	if txSequence&sequenceLockTimeDisabled != 0 {
		return scriptError(ErrUnsatisfiedLockTime,
			"input sequence disables relative locktime")
	}

	lockTimeMask := int64(sequenceLockTimeTypeFlag | sequenceLockTimeMask)
	return verifyLockTime(txSequence&lockTimeMask, sequenceLockTimeTypeFlag,
		int64(sequence)&lockTimeMask)
}

// opcodeToAltStack removes the top item from the main data stack and
// pushes it onto the alternate data stack.
func opcodeToAltStack(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.astack.PushByteArray(so)
	return nil
}

// opcodeFromAltStack removes the top item from the alternate data stack
// and pushes it onto the main data stack.
func opcodeFromAltStack(op *parsedOpcode, vm *Engine) error {
	so, err := vm.astack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(so)
	return nil
}

// opcode2Drop removes the top 2 items from the data stack.
func opcode2Drop(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DropN(2)
}

// opcode2Dup duplicates the top 2 items on the data stack.
func opcode2Dup(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(2)
}

// opcode3Dup duplicates the top 3 items on the data stack.
func opcode3Dup(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(3)
}

// opcode2Over duplicates the 2 items before the top 2 items on the data
// stack.
func opcode2Over(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.OverN(2)
}

// opcode2Rot rotates the top 6 items on the data stack to the left twice.
func opcode2Rot(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.RotN(2)
}

// opcode2Swap swaps the top 2 items on the data stack with the 2 that
// come before them.
func opcode2Swap(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.SwapN(2)
}

// opcodeIfDup duplicates the top item of the stack if it is not zero.
func opcodeIfDup(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(so) {
		vm.dstack.PushByteArray(so)
	}
	return nil
}

// opcodeDepth pushes the depth of the data stack prior to executing this
// opcode, encoded as a number, onto the data stack.
func opcodeDepth(op *parsedOpcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	return nil
}

// opcodeDrop removes the top item from the data stack.
func opcodeDrop(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DropN(1)
}

// opcodeDup duplicates the top item on the data stack.
func opcodeDup(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.DupN(1)
}

// opcodeNip removes the item before the top item on the data stack.
func opcodeNip(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.NipN(1)
}

// opcodeOver duplicates the item before the top item on the data stack.
func opcodeOver(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.OverN(1)
}

// opcodePick treats the top item on the data stack as an integer and
// duplicates the item on the stack that number of items back to the top.
func opcodePick(op *parsedOpcode, vm *Engine) error {
	val, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PickN(int(val.Int32()))
}

// opcodeRoll treats the top item on the data stack as an integer and
// moves the item on the stack that number of items back to the top.
func opcodeRoll(op *parsedOpcode, vm *Engine) error {
	val, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.RollN(int(val.Int32()))
}

// opcodeRot rotates the top 3 items on the data stack to the left.
func opcodeRot(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.RotN(1)
}

// opcodeSwap swaps the top two items on the stack.
func opcodeSwap(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.SwapN(1)
}

// opcodeTuck inserts a duplicate of the top item of the data stack
// before the second-to-top item.
func opcodeTuck(op *parsedOpcode, vm *Engine) error {
	return vm.dstack.Tuck()
}

// opcodeSize pushes the size of the top item of the data stack onto the
// data stack.
func opcodeSize(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(len(so)))
	return nil
}

// opcodeEqual removes the top 2 items of the data stack, compares them
// as raw bytes, and pushes the result, as a boolean, back to the stack.
func opcodeEqual(op *parsedOpcode, vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(bytes.Equal(a, b))
	return nil
}

// opcodeEqualVerify is a combination of opcodeEqual and opcodeVerify.
func opcodeEqualVerify(op *parsedOpcode, vm *Engine) error {
	err := opcodeEqual(op, vm)
	if err == nil {
		err = abstractVerify(op, vm, ErrEqualVerify)
	}
	return err
}

// arithmetic opcodes below operate on numbers decoded with the default
// 4-byte limit and verifyMinimalData enforcement carried on the stack.

func opcode1Add(op *parsedOpcode, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(m + 1)
	return nil
}

func opcode1Sub(op *parsedOpcode, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(m - 1)
	return nil
}

func opcodeNegate(op *parsedOpcode, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(-m)
	return nil
}

func opcodeAbs(op *parsedOpcode, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if m < 0 {
		m = -m
	}
	vm.dstack.PushInt(m)
	return nil
}

func opcodeNot(op *parsedOpcode, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(m == 0)
	return nil
}

func opcode0NotEqual(op *parsedOpcode, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(m != 0)
	return nil
}

func opcodeAdd(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a + b)
	return nil
}

func opcodeSub(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a - b)
	return nil
}

func opcodeBoolAnd(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != 0 && b != 0)
	return nil
}

func opcodeBoolOr(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != 0 || b != 0)
	return nil
}

func opcodeNumEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a == b)
	return nil
}

func opcodeNumEqualVerify(op *parsedOpcode, vm *Engine) error {
	err := opcodeNumEqual(op, vm)
	if err == nil {
		err = abstractVerify(op, vm, ErrNumEqualVerify)
	}
	return err
}

func opcodeNumNotEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != b)
	return nil
}

func opcodeLessThan(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a < b)
	return nil
}

func opcodeGreaterThan(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a > b)
	return nil
}

func opcodeLessThanOrEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a <= b)
	return nil
}

func opcodeGreaterThanOrEqual(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a >= b)
	return nil
}

func opcodeMin(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a < b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeMax(op *parsedOpcode, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a > b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeWithin(op *parsedOpcode, vm *Engine) error {
	maxVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	minVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	x, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}

func opcodeRipemd160(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := ripemd160.New()
	h.Write(so)
	vm.dstack.PushByteArray(h.Sum(nil))
	return nil
}

func opcodeSha1(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := sha1.Sum(so)
	vm.dstack.PushByteArray(h[:])
	return nil
}

func opcodeSha256(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := sha256.Sum256(so)
	vm.dstack.PushByteArray(h[:])
	return nil
}

func opcodeHash160(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := hash160.Sum(so)
	vm.dstack.PushByteArray(h[:])
	return nil
}

func opcodeHash256(op *parsedOpcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := hash256.Sum(so)
	vm.dstack.PushByteArray(h[:])
	return nil
}

// opcodeCodeSeparator stores the current script offset as the most
// recently seen OP_CODESEPARATOR, which is used later for signature
// hash calculation purposes.
func opcodeCodeSeparator(op *parsedOpcode, vm *Engine) error {
	vm.lastCodeSep = vm.scriptOff
	return nil
}

// signatureSubscript returns the portion of the currently executing
// script relevant to the signature digest: everything since the last
// OP_CODESEPARATOR, with OP_CODESEPARATOR itself removed, and (outside
// of witness scripts) with any literal occurrence of the signature
// bytes deleted per the legacy FindAndDelete rule.
func (vm *Engine) signatureSubscript(fullSigs [][]byte) ([]byte, error) {
	sub := removeOpcode(vm.subScript(), OP_CODESEPARATOR)
	if vm.sigVersion != bc.SigVersionWitness {
		for _, sig := range fullSigs {
			sub = removeOpcodeByData(sub, sig)
		}
	}
	return unparseScript(sub)
}

// verifySig checks a single (sig||hashType, pubkey) pair against the
// subscript's signature digest, honoring the sig cache.
func (vm *Engine) verifySig(fullSig, pubKey []byte) (bool, error) {
	if len(fullSig) == 0 {
		return false, nil
	}
	hashType := bc.SigHashType(fullSig[len(fullSig)-1])
	sigDER := fullSig[:len(fullSig)-1]

	subscript, err := vm.signatureSubscript([][]byte{fullSig})
	if err != nil {
		return false, err
	}

	hash := vm.tx.SignatureHash(vm.txIdx, subscript, hashType, vm.sigVersion, vm.inputValue)
	msg := hash[:]

	if vm.sigCache.exists(sigDER, pubKey, msg) {
		return true, nil
	}

	allowHistorical := !vm.hasFlag(ScriptVerifyDERSignatures) && !vm.hasFlag(ScriptVerifyStrictEncoding)
	allowHighS := !vm.hasFlag(ScriptVerifyLowS)
	ok := crypto.VerifySignature(msg, sigDER, pubKey, allowHistorical, allowHighS)
	if ok {
		vm.sigCache.add(sigDER, pubKey, msg)
	}
	return ok, nil
}

// opcodeCheckSig implements OP_CHECKSIG, verifying a single signature
// against a single public key over the appropriate transaction digest.
func opcodeCheckSig(op *parsedOpcode, vm *Engine) error {
	pubKey, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	fullSig, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if len(fullSig) > 0 {
		if err := vm.checkSignatureEncoding(fullSig); err != nil {
			return err
		}
	}
	if err := vm.checkPubKeyEncoding(pubKey); err != nil {
		return err
	}

	valid, err := vm.verifySig(fullSig, pubKey)
	if err != nil {
		return err
	}
	if !valid && vm.hasFlag(ScriptVerifyNullFail) && len(fullSig) > 0 {
		return scriptError(ErrNullFail,
			"signature not empty on failed checksig")
	}

	vm.dstack.PushBool(valid)
	return nil
}

// opcodeCheckSigVerify is a combination of opcodeCheckSig and
// opcodeVerify.
func opcodeCheckSigVerify(op *parsedOpcode, vm *Engine) error {
	err := opcodeCheckSig(op, vm)
	if err == nil {
		err = abstractVerify(op, vm, ErrCheckSigVerify)
	}
	return err
}

// opcodeCheckMultiSig implements OP_CHECKMULTISIG: an m-of-n threshold
// signature check against an ordered set of public keys.
func opcodeCheckMultiSig(op *parsedOpcode, vm *Engine) error {
	numKeys, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numPubKeys := int(numKeys.Int32())
	if numPubKeys < 0 || numPubKeys > MaxPubKeysPerMultiSig {
		return scriptError(ErrPubKeyCount,
			fmt.Sprintf("invalid number of pubkeys: %d", numPubKeys))
	}
	vm.numOps += numPubKeys
	if vm.numOps > MaxOpsPerScript {
		return scriptError(ErrOpCount,
			fmt.Sprintf("exceeded max operation limit of %d", MaxOpsPerScript))
	}

	pubKeys := make([][]byte, 0, numPubKeys)
	for i := 0; i < numPubKeys; i++ {
		pubKey, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		pubKeys = append(pubKeys, pubKey)
	}

	numSigs, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numSignatures := int(numSigs.Int32())
	if numSignatures < 0 || numSignatures > numPubKeys {
		return scriptError(ErrSigCount,
			fmt.Sprintf("invalid number of signatures: %d", numSignatures))
	}

	sigs := make([][]byte, 0, numSignatures)
	for i := 0; i < numSignatures; i++ {
		sig, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		sigs = append(sigs, sig)
	}

	dummy, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if vm.hasFlag(ScriptVerifyNullDummy) && len(dummy) != 0 {
		return scriptError(ErrSigNullDummy,
			"multisig dummy argument is not empty")
	}

	for _, sig := range sigs {
		if len(sig) > 0 {
			if err := vm.checkSignatureEncoding(sig); err != nil {
				return err
			}
		}
	}
	for _, pubKey := range pubKeys {
		if err := vm.checkPubKeyEncoding(pubKey); err != nil {
			return err
		}
	}

	success := true
	pubKeyIdx := 0
	sigIdx := 0
	for sigIdx < len(sigs) {
		if sigIdx >= len(sigs) || pubKeyIdx >= len(pubKeys) {
			success = false
			break
		}
		if len(sigs)-sigIdx > len(pubKeys)-pubKeyIdx {
			success = false
			break
		}

		ok, err := vm.verifySig(sigs[sigIdx], pubKeys[pubKeyIdx])
		if err != nil {
			return err
		}
		if ok {
			sigIdx++
		}
		pubKeyIdx++
	}

	if !success && vm.hasFlag(ScriptVerifyNullFail) {
		for _, sig := range sigs {
			if len(sig) > 0 {
				return scriptError(ErrNullFail,
					"signature not empty on failed checkmultisig")
			}
		}
	}

	vm.dstack.PushBool(success)
	return nil
}

// opcodeCheckMultiSigVerify is a combination of opcodeCheckMultiSig and
// opcodeVerify.
func opcodeCheckMultiSigVerify(op *parsedOpcode, vm *Engine) error {
	err := opcodeCheckMultiSig(op, vm)
	if err == nil {
		err = abstractVerify(op, vm, ErrCheckMultiSigVerify)
	}
	return err
}
