// Package validation implements non-contextual verification of blocks
// and transactions: checks that depend only on a block's own bytes, not
// on the chain it extends or the UTXO set it spends from.
package validation

import (
	"chain/cos/bc"
	"chain/cos/txscript"
	"chain/crypto/hash256"
	"chain/errors"
	"chain/math/checked"
)

// Consensus limits on block size and cost, mirroring the reference
// network's post-segwit values.
const (
	MaxBlockWeight     = 4_000_000
	MaxBlockBaseSize   = 1_000_000
	MaxBlockSigOpsCost = 80_000

	maxMoney        = 21_000_000 * 1e8
	halvingInterval = 210_000
	maxHalvings     = 33
)

// Errors returned by VerifyNonContextual and the transaction sanity
// checks it runs. Names follow the reference network's reject-reason
// strings.
var (
	ErrBadBlockLength       = errors.New("bad-blk-length")
	ErrBadCoinbaseMissing   = errors.New("bad-cb-missing")
	ErrBadCoinbaseMultiple  = errors.New("bad-cb-multiple")
	ErrBadCoinbaseLength    = errors.New("bad-cb-length")
	ErrBadBlockSigOps       = errors.New("bad-blk-sigops")
	ErrBadTxnsDuplicate     = errors.New("bad-txns-duplicate")
	ErrBadTxnMerkleRoot     = errors.New("bad-txnmrklroot")
	ErrBadWitnessCommitment = errors.New("bad-witness-nonce-size")

	ErrTxnNoInputs        = errors.New("bad-txns-vin-empty")
	ErrTxnNoOutputs       = errors.New("bad-txns-vout-empty")
	ErrTxnOversize        = errors.New("bad-txns-oversize")
	ErrTxnOutputNegative  = errors.New("bad-txns-vout-negative")
	ErrTxnOutputTooLarge  = errors.New("bad-txns-vout-toolarge")
	ErrTxnTotalTooLarge   = errors.New("bad-txns-txouttotal-toolarge")
	ErrTxnDuplicateInputs = errors.New("bad-txns-inputs-duplicate")
	ErrTxnNullPrevout     = errors.New("bad-txns-prevout-null")
)

// VerifyNonContextual runs every check on a block that can be decided
// from the block's own bytes alone: block and transaction size limits,
// coinbase shape, per-transaction sanity, accumulated legacy sigop
// weight, the Merkle root (including the CVE-2012-2459 duplicate-leaf
// check), and, for blocks carrying witness data, the coinbase witness
// commitment. It does not check proof-of-work, timestamp ordering
// against previous blocks, or anything requiring the UTXO set; those
// checks belong to a contextual verifier with access to the chain.
func VerifyNonContextual(block *bc.Block) error {
	if block.BaseSize() > MaxBlockBaseSize {
		return ErrBadBlockLength
	}

	if len(block.Transactions) == 0 || !block.Transactions[0].IsCoinBase() {
		return ErrBadCoinbaseMissing
	}
	for _, tx := range block.Transactions[1:] {
		if tx.IsCoinBase() {
			return ErrBadCoinbaseMultiple
		}
	}

	for _, tx := range block.Transactions {
		if err := checkTransactionSanity(tx); err != nil {
			return err
		}
	}

	sigOps := 0
	for _, tx := range block.Transactions {
		sigOps += legacySigOpCount(&tx.TxData)
	}
	if sigOps*bc.WitnessScaleFactor > MaxBlockSigOpsCost {
		return ErrBadBlockSigOps
	}

	hashes := make([]bc.Hash, len(block.Transactions))
	for i, tx := range block.Transactions {
		hashes[i] = tx.Hash
	}
	if bc.DuplicateTxHashes(hashes) {
		return ErrBadTxnsDuplicate
	}
	if bc.CalcMerkleRoot(hashes) != block.MerkleRoot {
		return ErrBadTxnMerkleRoot
	}

	return verifyWitnessCommitment(block)
}

// checkTransactionSanity runs the context-free structural checks every
// transaction in a block must pass, independent of whether it is itself
// the coinbase.
func checkTransactionSanity(tx *bc.Tx) error {
	if len(tx.Inputs) == 0 {
		return ErrTxnNoInputs
	}
	if len(tx.Outputs) == 0 {
		return ErrTxnNoOutputs
	}
	if tx.BaseSize() > MaxBlockBaseSize {
		return ErrTxnOversize
	}

	var total int64
	for _, out := range tx.Outputs {
		if out.Value < 0 {
			return ErrTxnOutputNegative
		}
		if out.Value > maxMoney {
			return ErrTxnOutputTooLarge
		}
		sum, ok := checked.AddInt64(total, out.Value)
		if !ok || sum > maxMoney {
			return ErrTxnTotalTooLarge
		}
		total = sum
	}

	if tx.IsCoinBase() {
		n := len(tx.Inputs[0].SignatureScript)
		if n < 2 || n > 100 {
			return ErrBadCoinbaseLength
		}
		return nil
	}

	seen := make(map[bc.Outpoint]bool, len(tx.Inputs))
	for _, in := range tx.Inputs {
		if in.Previous.Hash == (bc.Hash{}) && in.Previous.Index == 0xffffffff {
			return ErrTxnNullPrevout
		}
		if seen[in.Previous] {
			return ErrTxnDuplicateInputs
		}
		seen[in.Previous] = true
	}
	return nil
}

// legacySigOpCount returns the number of signature operations counted
// without pay-to-script-hash awareness, summing every input's
// signature script and every output's public-key script. This is the
// count the reference network accumulates for the non-contextual block
// sigop-weight check; it only undercounts P2SH redeem-script sigops,
// which are charged precisely once the spent output is known.
func legacySigOpCount(tx *bc.TxData) int {
	n := 0
	for _, in := range tx.Inputs {
		n += txscript.GetSigOpCount(in.SignatureScript)
	}
	for _, out := range tx.Outputs {
		n += txscript.GetSigOpCount(out.PkScript)
	}
	return n
}

// witnessCommitmentHeader is the fixed byte prefix that marks a
// coinbase output as carrying the witness Merkle commitment: OP_RETURN,
// a 36-byte push, and the commitment structure's own 4-byte tag.
var witnessCommitmentHeader = []byte{
	txscript.OP_RETURN, txscript.OP_DATA_36,
	0xaa, 0x21, 0xa9, 0xed,
}

// findWitnessCommitment returns the commitment hash carried by the
// last coinbase output matching witnessCommitmentHeader, scanning from
// the end as the reference network does so later (larger) commitment
// outputs take precedence over earlier ones.
func findWitnessCommitment(coinbase *bc.Tx) (bc.Hash, bool) {
	for i := len(coinbase.Outputs) - 1; i >= 0; i-- {
		script := coinbase.Outputs[i].PkScript
		if len(script) < len(witnessCommitmentHeader)+32 {
			continue
		}
		if !bytesEqual(script[:len(witnessCommitmentHeader)], witnessCommitmentHeader) {
			continue
		}
		var h bc.Hash
		copy(h[:], script[len(witnessCommitmentHeader):len(witnessCommitmentHeader)+32])
		return h, true
	}
	return bc.Hash{}, false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// verifyWitnessCommitment checks the coinbase's witness commitment
// against the block's witness Merkle root, when the block carries any
// witness data. The coinbase's own witness-transaction id is defined as
// all zeroes for the purpose of the witness Merkle tree (BIP-141), and
// its sole witness stack item is the 32-byte witness reserved value
// (nonce) hashed alongside the root.
func verifyWitnessCommitment(block *bc.Block) error {
	hasWitness := false
	for _, tx := range block.Transactions {
		if tx.HasWitness() {
			hasWitness = true
			break
		}
	}
	if !hasWitness {
		return nil
	}

	coinbase := block.Transactions[0]
	commitment, ok := findWitnessCommitment(coinbase)
	if !ok {
		return ErrBadWitnessCommitment
	}
	if len(coinbase.Inputs[0].Witness) != 1 || len(coinbase.Inputs[0].Witness[0]) != 32 {
		return ErrBadWitnessCommitment
	}

	wtxids := make([]bc.Hash, len(block.Transactions))
	for i, tx := range block.Transactions {
		if i == 0 {
			continue // coinbase wtxid is taken to be zero
		}
		wtxids[i] = tx.WitnessHash()
	}
	witnessRoot := bc.CalcMerkleRoot(wtxids)

	var buf [64]byte
	copy(buf[:32], witnessRoot[:])
	copy(buf[32:], coinbase.Inputs[0].Witness[0])
	if hash256.Sum(buf[:]) != commitment {
		return ErrBadWitnessCommitment
	}
	return nil
}

// CalcBlockSubsidy returns the block reward for a block at the given
// height: 50 BTC, halved every halvingInterval blocks, reaching zero
// after maxHalvings halvings.
func CalcBlockSubsidy(height int64) int64 {
	halvings := height / halvingInterval
	if halvings >= maxHalvings {
		return 0
	}
	return (50 * 1e8) >> uint(halvings)
}

// CalcBlockReward returns the total reward a block at the given height
// may claim in its coinbase: the subsidy plus the sum of fees, each fee
// being a non-contextual input (the caller computes per-transaction
// fees from the UTXO set, which this package does not have access to).
// It returns false if any partial sum overflows MAX_MONEY.
func CalcBlockReward(height int64, fees []int64) (reward int64, ok bool) {
	reward = CalcBlockSubsidy(height)
	for _, fee := range fees {
		reward, ok = checked.AddInt64(reward, fee)
		if !ok || reward > maxMoney {
			return 0, false
		}
	}
	return reward, true
}
