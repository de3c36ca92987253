// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"chain/crypto/hash256"
	"chain/cos/bc"
)

// ScriptFlags is a bitmask of the parameters which modify the manner in
// which a script is executed.
type ScriptFlags uint32

const (
	// ScriptBip16 defines whether the bip16 threshold has passed and
	// thus pay-to-script hash transactions will be fully validated.
	ScriptBip16 ScriptFlags = 1 << iota

	// ScriptVerifyStrictEncoding defines that signature scripts and
	// public keys must follow the strict encoding requirements.
	ScriptVerifyStrictEncoding

	// ScriptVerifyDERSignatures defines that signatures are required
	// to comply with the DER format.
	ScriptVerifyDERSignatures

	// ScriptVerifyLowS defines that signatures are required to comply
	// with the DER format and whose S value is <= order / 2.
	ScriptVerifyLowS

	// ScriptVerifyMinimalData defines that signatures must use the
	// smallest push operator possible.
	ScriptVerifyMinimalData

	// ScriptDiscourageUpgradableNops defines whether to verify that
	// NOP1 through NOP10 are reserved for future soft-fork upgrades.
	ScriptDiscourageUpgradableNops

	// ScriptVerifyCleanStack defines that the stack must contain only
	// one stack element after evaluation and that the element must be
	// true if interpreted as a boolean.
	ScriptVerifyCleanStack

	// ScriptVerifyCheckLockTimeVerify defines that a transaction
	// output may contain a OP_CHECKLOCKTIMEVERIFY opcode.
	ScriptVerifyCheckLockTimeVerify

	// ScriptVerifyCheckSequenceVerify defines that a transaction
	// output may contain a OP_CHECKSEQUENCEVERIFY opcode.
	ScriptVerifyCheckSequenceVerify

	// ScriptVerifySigPushOnly defines that a signature script has to
	// contain only data pushes.
	ScriptVerifySigPushOnly

	// ScriptVerifyNullDummy defines that signature scripts for
	// CHECKMULTISIG must contain an OP_0, which must be an empty byte
	// array, as the dummy element.
	ScriptVerifyNullDummy

	// ScriptVerifyWitness defines whether or not to verify a
	// transaction output using the witness program template.
	ScriptVerifyWitness

	// ScriptVerifyDiscourageUpgradableWitnessProgram defines whether
	// or not to consider a witness program version not already
	// defined as a soft-fork candidate.
	ScriptVerifyDiscourageUpgradableWitnessProgram

	// ScriptVerifyMinimalIf defines whether or not the argument to the
	// OP_IF/OP_NOTIF opcodes must consist of a single byte of value
	// 0x01 or be empty, in a witness script.
	ScriptVerifyMinimalIf

	// ScriptVerifyNullFail defines that signatures must be empty if a
	// CHECKSIG or CHECKMULTISIG operation fails.
	ScriptVerifyNullFail

	// ScriptVerifyWitnessPubKeyType defines that a public key used in a
	// witness must be compressed.
	ScriptVerifyWitnessPubKeyType

	// ScriptVerifyMast defines whether version-1 witness programs are
	// interpreted as Merkle-authenticated script trees rather than
	// rejected or passed through permissively.
	ScriptVerifyMast
)

// MaxStackSize is the maximum combined height of the data stack and alt
// stack during execution.
const MaxStackSize = 1000

// Engine is the virtual machine that executes bitcoin scripts.
type Engine struct {
	scripts         [][]parsedOpcode
	scriptIdx       int
	scriptOff       int
	lastCodeSep     int
	dstack          stack
	astack          stack
	tx              *bc.TxData
	txIdx           int
	condStack       []int
	numOps          int
	flags           ScriptFlags
	sigVersion      bc.SigVersion
	inputValue      int64
	sigCache        *SigCache
	bip16           bool
	savedFirstStack [][]byte
	witnessVersion  int
	witnessProgram  []byte
	witnessBare     bool
}

// hasFlag returns whether the script engine instance has the passed flag
// set.
func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags&flag == flag
}

// isBranchExecuting returns whether or not the current conditional branch
// is actively executing. For example, when the data stack has an OP_FALSE
// at the top of the conditional execution stack, this will return false.
func (vm *Engine) isBranchExecuting() bool {
	if len(vm.condStack) == 0 {
		return true
	}
	return vm.condStack[len(vm.condStack)-1] == OpCondTrue
}

// isOpcodeDisabled returns whether or not the opcode is disabled and thus
// is always bad to see in the instruction stream.
func isOpcodeDisabled(opcode byte) bool {
	switch opcode {
	case OP_CAT, OP_SUBSTR, OP_LEFT, OP_RIGHT, OP_INVERT, OP_AND, OP_OR,
		OP_XOR, OP_2MUL, OP_2DIV, OP_MUL, OP_DIV, OP_MOD, OP_LSHIFT,
		OP_RSHIFT:
		return true
	default:
		return false
	}
}

// isOpcodeConditional returns whether or not the opcode is a conditional
// opcode which changes the conditional execution stack when executed.
func isOpcodeConditional(opcode byte) bool {
	switch opcode {
	case OP_IF, OP_NOTIF, OP_ELSE, OP_ENDIF:
		return true
	default:
		return false
	}
}

// checkMinimalDataPush returns whether or not the provided opcode is
// associated with a push of data that does not follow the rules for
// pushing canonical data.
func checkMinimalDataPush(pop parsedOpcode) error {
	data := pop.data
	dataLen := len(data)
	opcode := pop.opcode.value

	if dataLen == 0 && opcode != OP_0 {
		return scriptError(ErrMinimalData, "zero length data push is not "+
			"minimally encoded")
	}
	if dataLen == 1 && data[0] >= 1 && data[0] <= 16 {
		if opcode != OP_1+data[0]-1 {
			return scriptError(ErrMinimalData, "data push of the value "+
				"1 through 16 must use the associated opcode")
		}
	}
	if dataLen == 1 && data[0] == 0x81 {
		if opcode != OP_1NEGATE {
			return scriptError(ErrMinimalData, "data push of the value "+
				"-1 must use OP_1NEGATE")
		}
	}
	if dataLen <= 75 {
		if int(opcode) != dataLen+(OP_DATA_1-1) {
			return scriptError(ErrMinimalData, "data push of %d bytes "+
				"must use the minimal data push opcode")
		}
	} else if dataLen <= 255 {
		if opcode != OP_PUSHDATA1 {
			return scriptError(ErrMinimalData,
				"data push of 76 to 255 bytes must use OP_PUSHDATA1")
		}
	} else if dataLen <= 65535 {
		if opcode != OP_PUSHDATA2 {
			return scriptError(ErrMinimalData,
				"data push of 256 to 65535 bytes must use OP_PUSHDATA2")
		}
	}
	return nil
}

// executeOpcode peforms execution on the passed opcode. It takes into
// account whether or not it is hidden by conditionals, but some rules
// still must be tested in this case.
func (vm *Engine) executeOpcode(pop *parsedOpcode) error {
	// Disabled opcodes are fail on program counter.
	if isOpcodeDisabled(pop.opcode.value) {
		return scriptError(ErrDisabledOpcode,
			fmt.Sprintf("attempt to execute disabled opcode %s", pop.opcode.name))
	}

	// Always-illegal opcodes are fail on program counter.
	if pop.opcode.value == OP_VERIF || pop.opcode.value == OP_VERNOTIF {
		return scriptError(ErrBadOpcode,
			fmt.Sprintf("attempt to execute reserved opcode %s", pop.opcode.name))
	}

	// Note that this includes OP_RESERVED which counts as a push
	// operation.
	if pop.opcode.value > OP_16 {
		vm.numOps++
		if vm.numOps > MaxOpsPerScript {
			return scriptError(ErrOpCount,
				fmt.Sprintf("exceeded max operation limit of %d", MaxOpsPerScript))
		}
	} else if len(pop.data) > MaxScriptElementSize {
		return scriptError(ErrPushSize,
			fmt.Sprintf("element size %d exceeds max allowed size %d",
				len(pop.data), MaxScriptElementSize))
	}

	// Nothing left to do when this is not a conditional opcode and it
	// is not in an executing branch.
	if !vm.isBranchExecuting() && !isOpcodeConditional(pop.opcode.value) {
		return nil
	}

	// Ensure all executed data push opcodes use the minimal encoding
	// when the minimal data verification flag is set.
	if vm.dstack.verifyMinimalData && vm.isBranchExecuting() &&
		pop.opcode.value >= OP_0 && pop.opcode.value <= OP_PUSHDATA4 {
		if err := checkMinimalDataPush(*pop); err != nil {
			return err
		}
	}

	return pop.opcode.opfunc(pop, vm)
}

// subScript returns the script since the last OP_CODESEPARATOR.
func (vm *Engine) subScript() []parsedOpcode {
	return vm.scripts[vm.scriptIdx][vm.lastCodeSep:]
}

// checkHashTypeEncoding returns whether or not the passed hashtype adheres
// to the strict encoding requirements.
func (vm *Engine) checkHashTypeEncoding(hashType bc.SigHashType) error {
	if !vm.hasFlag(ScriptVerifyStrictEncoding) {
		return nil
	}

	sigHashType := hashType &^ bc.SigHashAnyOneCanPay
	if sigHashType < bc.SigHashAll || sigHashType > bc.SigHashSingle {
		return scriptError(ErrSigHashType,
			fmt.Sprintf("invalid hash type 0x%x", hashType))
	}
	return nil
}

// checkPubKeyEncoding returns whether or not the passed public key adheres
// to the strict encoding requirements.
func (vm *Engine) checkPubKeyEncoding(pubKey []byte) error {
	if vm.hasFlag(ScriptVerifyWitnessPubKeyType) &&
		vm.sigVersion == bc.SigVersionWitness && !isCompressedPubKey(pubKey) {
		return scriptError(ErrWitnessPubKeyType,
			"only compressed keys are accepted post-segwit")
	}

	if !vm.hasFlag(ScriptVerifyStrictEncoding) {
		return nil
	}

	if len(pubKey) == 33 && (pubKey[0] == 0x02 || pubKey[0] == 0x03) {
		return nil
	}
	if len(pubKey) == 65 && pubKey[0] == 0x04 {
		return nil
	}
	return scriptError(ErrPubKeyType, "unsupported public key type")
}

func isCompressedPubKey(pubKey []byte) bool {
	return len(pubKey) == 33 && (pubKey[0] == 0x02 || pubKey[0] == 0x03)
}

// isStrictDERSignature reports whether a DER signature (without the
// trailing hash type byte) is canonically encoded.
func isStrictDERSignature(sig []byte) bool {
	if len(sig) < 9 || len(sig) > 73 {
		return false
	}
	if sig[0] != 0x30 {
		return false
	}
	if int(sig[1]) != len(sig)-2 {
		return false
	}
	if sig[2] != 0x02 {
		return false
	}
	rLen := int(sig[3])
	if 4+rLen+2 > len(sig) {
		return false
	}
	if sig[4+rLen] != 0x02 {
		return false
	}
	return true
}

// checkSignatureEncoding returns whether or not the passed signature
// adheres to the strict encoding requirements, if applicable.
func (vm *Engine) checkSignatureEncoding(sig []byte) error {
	if len(sig) == 0 {
		return nil
	}

	rawSig := sig[:len(sig)-1]
	strictFormat := vm.hasFlag(ScriptVerifyDERSignatures) ||
		vm.hasFlag(ScriptVerifyLowS) ||
		vm.hasFlag(ScriptVerifyStrictEncoding)
	if strictFormat && !isStrictDERSignature(rawSig) {
		return scriptError(ErrSigDER, "signature is not a canonical DER signature")
	}

	// Low-S enforcement happens in crypto.VerifySignature, which every
	// CHECKSIG/CHECKMULTISIG call site routes through.
	return vm.checkHashTypeEncoding(bc.SigHashType(sig[len(sig)-1]))
}

// getStack returns the contents of stack as a byte array bottom up.
func getStack(stack *stack) [][]byte {
	array := make([][]byte, len(stack.stk))
	for i := range stack.stk {
		array[i] = stack.stk[i]
	}
	return array
}

// setStack sets the stack to the contents of the array where the last
// item in the array is the top item in the stack.
func setStack(stack *stack, data [][]byte) {
	stack.stk = stack.stk[:0]
	for i := range data {
		stack.PushByteArray(data[i])
	}
}

// GetStack returns the contents of the primary stack as an array, bottom
// up.
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// GetAltStack returns the contents of the alternate stack as an array,
// bottom up.
func (vm *Engine) GetAltStack() [][]byte {
	return getStack(&vm.astack)
}

// Step executes the next instruction and returns whether or not the
// script is complete. Executing a script, as opposed to a single step,
// happens by calling Execute.
func (vm *Engine) Step() (done bool, err error) {
	if len(vm.scripts[vm.scriptIdx]) == 0 {
		return vm.finishScript()
	}

	opcode := &vm.scripts[vm.scriptIdx][vm.scriptOff]
	vm.scriptOff++

	if err := vm.executeOpcode(opcode); err != nil {
		if se, ok := err.(*ScriptError); ok && se.Offset < 0 {
			withPos := *se
			withPos.Op = opcode.opcode.value
			withPos.Offset = vm.scriptOff - 1
			return true, &withPos
		}
		return true, err
	}

	if vm.dstack.Depth()+vm.astack.Depth() > MaxStackSize {
		return true, scriptError(ErrStackSize, "combined stack size exceeded max allowed")
	}

	if vm.scriptOff < len(vm.scripts[vm.scriptIdx]) {
		return false, nil
	}

	if len(vm.condStack) != 0 {
		return true, scriptError(ErrUnbalancedConditional,
			"end of script reached in conditional execution")
	}

	return vm.finishScript()
}

// finishScript closes out the current script (an empty one, or one whose
// last opcode has just run), captures bip16 state, and advances to the
// next non-empty script, reporting done when none remain.
func (vm *Engine) finishScript() (done bool, err error) {
	if vm.astack.Depth() > 0 {
		vm.astack.DropN(int(vm.astack.Depth()))
	}

	vm.numOps = 0
	vm.scriptOff = 0
	if vm.scriptIdx == 0 && vm.bip16 {
		vm.savedFirstStack = vm.GetStack()
	} else if vm.scriptIdx == 1 && vm.bip16 {
		if err := vm.prepareP2SH(); err != nil {
			return true, err
		}
	}

	vm.scriptIdx++
	vm.lastCodeSep = 0
	for vm.scriptIdx < len(vm.scripts) && len(vm.scripts[vm.scriptIdx]) == 0 {
		vm.scriptIdx++
	}
	if vm.scriptIdx >= len(vm.scripts) {
		return true, nil
	}

	return false, nil
}

// prepareP2SH pushes the redeem script parsed from the top of the saved
// scriptSig stack as a new script to execute, substituting it for the
// scriptPubKey evaluation just completed. When the redeem script is
// itself a witness program, the signature script must have pushed
// nothing but that redeem script, or the spend is malleated.
func (vm *Engine) prepareP2SH() error {
	if len(vm.savedFirstStack) == 0 {
		return scriptError(ErrEvalFalse, "signature script pushed no data for pay-to-script-hash")
	}

	redeemScript := vm.savedFirstStack[len(vm.savedFirstStack)-1]
	pops, err := parseScript(redeemScript)
	if err != nil {
		return err
	}

	if version, program, ok := isWitnessProgram(pops); ok && vm.hasFlag(ScriptVerifyWitness) {
		if len(vm.savedFirstStack) != 1 {
			return scriptError(ErrWitnessMalleatedP2SH,
				"p2sh signature script must push only the redeem script for a witness program")
		}
		vm.witnessVersion = version
		vm.witnessProgram = program
	}

	setStack(&vm.dstack, vm.savedFirstStack[:len(vm.savedFirstStack)-1])
	vm.scripts = append(vm.scripts, pops)

	return nil
}

// Execute will execute all scripts in the script engine and return either
// nil for successful validation or an error if one occurred.
func (vm *Engine) Execute() (err error) {
	done := false
	for !done {
		done, err = vm.Step()
		if err != nil {
			return err
		}
	}

	// A pending witness verification (bare or P2SH-wrapped) runs against
	// its own witness-stack items, not vm.dstack, so the residual
	// version+program push left on vm.dstack by the scriptPubKey or
	// redeem script must not be measured against ScriptVerifyCleanStack
	// here; Core achieves the same by resizing that stack to 1 once a
	// witness program is found, before its cleanstack assertion runs.
	pendingWitness := vm.hasFlag(ScriptVerifyWitness) && vm.witnessProgram != nil
	if err := vm.CheckErrorCondition(!vm.witnessBare && !pendingWitness); err != nil {
		return err
	}

	if pendingWitness {
		if vm.witnessBare && len(vm.tx.Inputs[vm.txIdx].SignatureScript) != 0 {
			return scriptError(ErrWitnessMalleated,
				"signature script must be empty for native witness programs")
		}
		return vm.verifyWitnessProgram()
	}
	return nil
}

// CheckErrorCondition returns nil if the running script has ended and was
// successful, leaving a a true boolean on the stack. An error otherwise,
// including if the script has not finished. checkCleanStack is false
// whenever a witness program (bare or P2SH-wrapped) is about to be
// verified, since its outer residual stack (the version push alongside
// the program) is superseded by witness verification rather than
// measured against ScriptVerifyCleanStack.
func (vm *Engine) CheckErrorCondition(checkCleanStack bool) error {
	if vm.scriptIdx < len(vm.scripts) {
		return scriptError(ErrInvalidStackOperation, "execution not complete")
	}

	if checkCleanStack && vm.hasFlag(ScriptVerifyCleanStack) &&
		vm.dstack.Depth() != 1 {
		return scriptError(ErrCleanStack,
			fmt.Sprintf("stack contains %d unexpected items", vm.dstack.Depth()-1))
	} else if vm.dstack.Depth() < 1 {
		return scriptError(ErrEvalFalse, "stack empty at end of script execution")
	}

	v, err := vm.dstack.PeekBool(0)
	if err != nil {
		return err
	}
	if !v {
		return scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}
	return nil
}

// isWitnessProgram reports whether the passed script is in the standard
// form for a witness program: a version push (OP_0 or OP_1-OP_16)
// followed by a single data push of 2 to 40 bytes.
func isWitnessProgram(pops []parsedOpcode) (version int, program []byte, ok bool) {
	if len(pops) != 2 {
		return 0, nil, false
	}
	if !isSmallInt(pops[0].opcode) {
		return 0, nil, false
	}
	if len(pops[1].data) < 2 || len(pops[1].data) > 40 {
		return 0, nil, false
	}
	if pops[1].opcode.value > OP_16 {
		return 0, nil, false
	}
	return asSmallInt(pops[0].opcode), pops[1].data, true
}

// verifyWitnessProgram executes the witness program associated with this
// engine's input, if any, against its witness stack. It must only be
// called after the outer scriptPubKey (and, for P2SH-wrapped segwit, the
// redeem script) has already evaluated to a recognized witness program.
func (vm *Engine) verifyWitnessProgram() error {
	witness := vm.tx.Inputs[vm.txIdx].Witness
	if vm.witnessProgram == nil {
		if len(witness) != 0 {
			return scriptError(ErrWitnessUnexpected,
				"transaction has witness data but no witness script")
		}
		return nil
	}

	program := vm.witnessProgram

	switch vm.witnessVersion {
	case 0:
		switch len(program) {
		case 20:
			if len(witness) != 2 {
				return scriptError(ErrWitnessProgramMismatch,
					"a P2WPKH witness program must have exactly two items")
			}
			pkScript, err := payToPubKeyHashScript(program)
			if err != nil {
				return err
			}
			return vm.execWitnessScript(pkScript, witness)

		case 32:
			if len(witness) == 0 {
				return scriptError(ErrWitnessProgramWitnessEmpty,
					"witness program empty passed empty witness")
			}
			witnessScript := witness[len(witness)-1]
			computed := sha256.Sum256(witnessScript)
			if !bytes.Equal(computed[:], program) {
				return scriptError(ErrWitnessProgramMismatch,
					"witness program hash mismatch")
			}
			return vm.execWitnessScript(witnessScript, witness[:len(witness)-1])

		default:
			return scriptError(ErrWitnessProgramWrongLength,
				"witness program must be 20 or 32 bytes")
		}

	case 1:
		if vm.hasFlag(ScriptVerifyMast) {
			return vm.verifyMast(program, witness)
		}
		if vm.hasFlag(ScriptVerifyDiscourageUpgradableWitnessProgram) {
			return scriptError(ErrDiscourageUpgradableWitnessProgram,
				"new witness program versions are discouraged")
		}
		return nil

	default:
		if vm.hasFlag(ScriptVerifyDiscourageUpgradableWitnessProgram) {
			return scriptError(ErrDiscourageUpgradableWitnessProgram,
				"new witness program versions are discouraged")
		}
		return nil
	}
}

// execWitnessScript runs script against the given witness items as the
// initial data stack, under the witness (BIP143) signature digest
// algorithm.
func (vm *Engine) execWitnessScript(script []byte, items [][]byte) error {
	for _, item := range items {
		if len(item) > MaxScriptElementSize {
			return scriptError(ErrPushSize, "witness item exceeds max allowed size")
		}
	}

	pops, err := parseScript(script)
	if err != nil {
		return err
	}

	sub := &Engine{
		scripts:    [][]parsedOpcode{pops},
		tx:         vm.tx,
		txIdx:      vm.txIdx,
		flags:      vm.flags,
		sigVersion: bc.SigVersionWitness,
		inputValue: vm.inputValue,
		sigCache:   vm.sigCache,
	}
	sub.dstack.verifyMinimalData = vm.hasFlag(ScriptVerifyMinimalData)
	sub.astack.verifyMinimalData = vm.hasFlag(ScriptVerifyMinimalData)
	setStack(&sub.dstack, items)

	if err := sub.Execute(); err != nil {
		return err
	}
	if sub.dstack.Depth() != 1 {
		return scriptError(ErrCleanStack, "witness script must leave exactly one stack item")
	}
	return sub.CheckErrorCondition(true)
}

// verifyMast implements the Merkle-authenticated script tree witness
// template: the witness stack carries, from the bottom, the sibling
// hashes of the leaf's Merkle branch (one per tree level, bottom level
// first, and nothing else below them), a metadata blob (one byte per
// level; only the leaf's own entry, metadata[0], is consulted here), a
// posdata blob (one byte per level, 0 if the running hash is the left
// child at that level and 1 if it is the right child), and finally the
// leaf script itself on top. The leaf script runs on an empty initial
// data stack.
func (vm *Engine) verifyMast(program []byte, witness [][]byte) error {
	if len(witness) < 3 {
		return scriptError(ErrWitnessProgramMismatch,
			"mast witness must carry a script, posdata, and metadata")
	}

	script := witness[len(witness)-1]
	posdata := witness[len(witness)-2]
	metadata := witness[len(witness)-3]
	siblings := witness[:len(witness)-3]

	depth := len(posdata)
	if len(metadata) != depth || len(siblings) != depth {
		return scriptError(ErrWitnessProgramMismatch,
			"mast posdata, metadata, and sibling counts must agree")
	}

	var version byte
	if depth > 0 {
		version = metadata[0]
	}
	leaf := append([]byte{version}, script...)
	h := hash256.Sum(leaf)

	for j := 0; j < depth; j++ {
		sibling := siblings[j]
		if posdata[j] == 0 {
			h = hash256.Sum(append(append([]byte{}, h[:]...), sibling...))
		} else {
			h = hash256.Sum(append(append([]byte{}, sibling...), h[:]...))
		}
	}

	if !bytes.Equal(h[:], program) {
		return scriptError(ErrWitnessProgramMismatch, "mast branch does not commit to program")
	}

	return vm.execWitnessScript(script, nil)
}

// NewEngine returns a new script engine for the provided public key
// script, transaction, and input index.
func NewEngine(scriptPubKey []byte, tx *bc.TxData, txIdx int, flags ScriptFlags, inputValue int64, sigCache *SigCache) (*Engine, error) {
	if txIdx < 0 || txIdx >= len(tx.Inputs) {
		return nil, scriptError(ErrInvalidStackOperation, "transaction input index out of bounds")
	}
	scriptSig := tx.Inputs[txIdx].SignatureScript

	if len(scriptSig) > MaxScriptSize || len(scriptPubKey) > MaxScriptSize {
		return nil, scriptError(ErrScriptSize, "script exceeds max allowed size")
	}

	vm := &Engine{
		tx:         tx,
		txIdx:      txIdx,
		flags:      flags,
		sigVersion: bc.SigVersionBase,
		inputValue: inputValue,
		sigCache:   sigCache,
	}
	vm.dstack.verifyMinimalData = flags&ScriptVerifyMinimalData == ScriptVerifyMinimalData
	vm.astack.verifyMinimalData = flags&ScriptVerifyMinimalData == ScriptVerifyMinimalData

	sigPops, err := parseScript(scriptSig)
	if err != nil {
		return nil, err
	}

	pkPops, err := parseScript(scriptPubKey)
	if err != nil {
		return nil, err
	}

	if vm.hasFlag(ScriptVerifySigPushOnly) && !isPushOnly(sigPops) {
		return nil, scriptError(ErrDisabledOpcode,
			"signature script is not push only")
	}

	if flags&ScriptBip16 == ScriptBip16 && IsPayToScriptHash(scriptPubKey) {
		if !isPushOnly(sigPops) {
			return nil, scriptError(ErrDisabledOpcode,
				"pay-to-script-hash signature script is not push only")
		}
		vm.bip16 = true
	}

	vm.scripts = [][]parsedOpcode{sigPops, pkPops}
	if len(sigPops) == 0 {
		vm.scriptIdx++
	}

	if version, program, ok := isWitnessProgram(pkPops); ok && vm.hasFlag(ScriptVerifyWitness) {
		vm.witnessVersion = version
		vm.witnessProgram = program
		vm.witnessBare = true
	}
	// When bip16 wraps a witness program, the program is only known
	// once the redeem script has been evaluated; prepareP2SH refreshes
	// vm.witnessVersion/witnessProgram from it in that case, leaving
	// witnessBare false since the signature script legitimately carries
	// the redeem-script push.

	return vm, nil
}
