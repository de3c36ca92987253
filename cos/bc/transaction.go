package bc

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"io"
	"strconv"

	"chain/crypto/hash256"
	"chain/encoding/bitcoin"
	"chain/errors"
)

// Limits mirror the reference network's maximum script/witness-item
// sizes; they bound allocation while decoding untrusted wire data.
const (
	maxScriptLen      = 10000
	maxWitnessItemLen = 520
	maxWitnessItems   = 1000
)

// WitnessScaleFactor is the divisor applied to witness bytes when
// computing a transaction or block's weight, making a witness byte a
// quarter as "expensive" as a byte outside the witness.
const WitnessScaleFactor = 4

// SigHashType selects which parts of a transaction a signature commits to.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 1
	SigHashNone         SigHashType = 2
	SigHashSingle       SigHashType = 3
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// SigVersion distinguishes the legacy (pre-segwit) signature digest
// algorithm from the BIP-143 witness-v0 digest algorithm.
type SigVersion int

const (
	SigVersionBase    SigVersion = 0
	SigVersionWitness SigVersion = 1
)

// Outpoint identifies a previous transaction output by its
// containing transaction hash and output index.
type Outpoint struct {
	Hash  Hash   `json:"hash"`
	Index uint32 `json:"index"`
}

func (p Outpoint) String() string {
	return p.Hash.String() + ":" + strconv.FormatUint(uint64(p.Index), 10)
}

// assumes r has sticky errors
func (p *Outpoint) readFrom(r io.Reader) {
	io.ReadFull(r, p.Hash[:])
	var idx [4]byte
	io.ReadFull(r, idx[:])
	p.Index = binary.LittleEndian.Uint32(idx[:])
}

// assumes w has sticky errors
func (p Outpoint) writeTo(w io.Writer) {
	w.Write(p.Hash[:])
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], p.Index)
	w.Write(idx[:])
}

// TxIn is a single transaction input.
type TxIn struct {
	Previous        Outpoint
	SignatureScript []byte
	Sequence        uint32
	Witness         [][]byte
}

// TxOut is a single transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// TxData encodes a transaction's wire contents. Most callers want Tx,
// which also carries the transaction's hash.
type TxData struct {
	Version  uint32
	Inputs   []*TxIn
	Outputs  []*TxOut
	LockTime uint32
}

// Tx holds a transaction along with its hash.
type Tx struct {
	TxData
	Hash Hash
}

// NewTx returns a new Tx containing data and its hash.
func NewTx(data TxData) *Tx {
	return &Tx{TxData: data, Hash: data.TxHash()}
}

// HasWitness reports whether any input carries witness data.
func (tx *TxData) HasWitness() bool {
	for _, in := range tx.Inputs {
		if len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

func (tx *TxData) Scan(val interface{}) error {
	buf, ok := val.([]byte)
	if !ok {
		return errors.New("Scan must receive a byte slice")
	}
	return tx.readFrom(bytes.NewReader(buf))
}

func (tx *TxData) Value() (driver.Value, error) {
	buf := new(bytes.Buffer)
	_, err := tx.WriteTo(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readFrom decodes the standard wire format, including BIP-144
// segwit marker/flag and per-input witness stacks when present.
// assumes r has sticky errors.
func (tx *TxData) readFrom(r io.Reader) error {
	var v [4]byte
	io.ReadFull(r, v[:])
	tx.Version = binary.LittleEndian.Uint32(v[:])

	n, err := bitcoin.ReadVarint(r)
	if err != nil {
		return err
	}

	segwit := false
	if n == 0 {
		// BIP-144 marker byte; next byte is the flag.
		var flag [1]byte
		_, err = io.ReadFull(r, flag[:])
		if err != nil {
			return err
		}
		if flag[0] != 1 {
			return errors.New("unsupported segwit flag")
		}
		segwit = true
		n, err = bitcoin.ReadVarint(r)
		if err != nil {
			return err
		}
	}

	for ; n > 0; n-- {
		ti := new(TxIn)
		ti.readFrom(r)
		tx.Inputs = append(tx.Inputs, ti)
	}

	nout, err := bitcoin.ReadVarint(r)
	if err != nil {
		return err
	}
	for ; nout > 0; nout-- {
		to := new(TxOut)
		to.readFrom(r)
		tx.Outputs = append(tx.Outputs, to)
	}

	if segwit {
		for _, ti := range tx.Inputs {
			nitems, err := bitcoin.ReadVarint(r)
			if err != nil {
				return err
			}
			if nitems > maxWitnessItems {
				return errors.New("witness item count too large")
			}
			for ; nitems > 0; nitems-- {
				item, err := bitcoin.ReadBytes(r, maxWitnessItemLen*2)
				if err != nil {
					return err
				}
				ti.Witness = append(ti.Witness, item)
			}
		}
	}

	var lt [4]byte
	io.ReadFull(r, lt[:])
	tx.LockTime = binary.LittleEndian.Uint32(lt[:])
	return nil
}

// assumes r has sticky errors
func (ti *TxIn) readFrom(r io.Reader) {
	ti.Previous.readFrom(r)
	script, _ := bitcoin.ReadBytes(r, maxScriptLen)
	ti.SignatureScript = script
	var seq [4]byte
	io.ReadFull(r, seq[:])
	ti.Sequence = binary.LittleEndian.Uint32(seq[:])
}

// assumes r has sticky errors
func (to *TxOut) readFrom(r io.Reader) {
	var v [8]byte
	io.ReadFull(r, v[:])
	to.Value = int64(binary.LittleEndian.Uint64(v[:]))
	script, _ := bitcoin.ReadBytes(r, maxScriptLen)
	to.PkScript = script
}

// TxHash returns the transaction's txid: the double-SHA256 of the
// non-witness serialization. It is unaffected by witness data.
func (tx *TxData) TxHash() Hash {
	h := hash256.New()
	tx.writeTo(h, false)
	var v Hash
	h.Sum(v[:0])
	return v
}

// WitnessHash returns the double-SHA256 of the full (witness-including)
// serialization, used to build a block's witness commitment.
func (tx *TxData) WitnessHash() Hash {
	h := hash256.New()
	tx.writeTo(h, tx.HasWitness())
	var v Hash
	h.Sum(v[:0])
	return v
}

// WriteTo writes tx to w in the standard wire format, using the
// BIP-144 witness serialization whenever any input carries witness
// data.
func (tx *TxData) WriteTo(w io.Writer) (int64, error) {
	ew := errors.NewWriter(w)
	tx.writeTo(ew, tx.HasWitness())
	return ew.Written(), ew.Err()
}

// assumes w has sticky errors
func (tx *TxData) writeTo(w io.Writer, witness bool) {
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], tx.Version)
	w.Write(v[:])

	if witness {
		w.Write([]byte{0x00, 0x01})
	}

	bitcoin.WriteVarint(w, uint64(len(tx.Inputs)))
	for _, ti := range tx.Inputs {
		ti.writeTo(w)
	}

	bitcoin.WriteVarint(w, uint64(len(tx.Outputs)))
	for _, to := range tx.Outputs {
		to.writeTo(w)
	}

	if witness {
		for _, ti := range tx.Inputs {
			bitcoin.WriteVarint(w, uint64(len(ti.Witness)))
			for _, item := range ti.Witness {
				bitcoin.WriteBytes(w, item)
			}
		}
	}

	var lt [4]byte
	binary.LittleEndian.PutUint32(lt[:], tx.LockTime)
	w.Write(lt[:])
}

// assumes w has sticky errors
func (ti *TxIn) writeTo(w io.Writer) {
	ti.Previous.writeTo(w)
	bitcoin.WriteBytes(w, ti.SignatureScript)
	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], ti.Sequence)
	w.Write(seq[:])
}

// assumes w has sticky errors
func (to *TxOut) writeTo(w io.Writer) {
	var v [8]byte
	binary.LittleEndian.PutUint64(v[:], uint64(to.Value))
	w.Write(v[:])
	bitcoin.WriteBytes(w, to.PkScript)
}

// IsCoinBase reports whether tx is a coinbase transaction: exactly one
// input, spending the null outpoint (zero hash, index 0xffffffff).
func (tx *TxData) IsCoinBase() bool {
	if len(tx.Inputs) != 1 {
		return false
	}
	prev := tx.Inputs[0].Previous
	return prev.Hash == Hash{} && prev.Index == 0xffffffff
}

// Weight returns the transaction's consensus weight: base size weighted
// by (WitnessScaleFactor-1) plus total size, so that witness bytes count
// a quarter as much as non-witness bytes.
func (tx *TxData) Weight() int {
	return tx.BaseSize()*(WitnessScaleFactor-1) + tx.TotalSize()
}

// VirtualSize returns the transaction's weight divided by
// WitnessScaleFactor, rounded up.
func (tx *TxData) VirtualSize() int {
	return (tx.Weight() + WitnessScaleFactor - 1) / WitnessScaleFactor
}

// BaseSize returns the size of the non-witness serialization.
func (tx *TxData) BaseSize() int {
	var buf bytes.Buffer
	ew := errors.NewWriter(&buf)
	tx.writeTo(ew, false)
	return buf.Len()
}

// TotalSize returns the size of the full (witness-including)
// serialization.
func (tx *TxData) TotalSize() int {
	var buf bytes.Buffer
	ew := errors.NewWriter(&buf)
	tx.writeTo(ew, tx.HasWitness())
	return buf.Len()
}

// SignatureHash computes the digest that OP_CHECKSIG and
// OP_CHECKMULTISIG sign and verify against, implementing both the
// legacy (sigVersion == SigVersionBase) and BIP-143 witness v0
// (sigVersion == SigVersionWitness) algorithms.
//
// subscript is the (already code-separator-trimmed, and for legacy
// sighash, already signature-stripped) script being satisfied.
// inputValue is only consulted for the witness digest, where it is
// part of the committed data.
func (tx *TxData) SignatureHash(idx int, subscript []byte, hashType SigHashType, sigVersion SigVersion, inputValue int64) Hash {
	if sigVersion == SigVersionWitness {
		return tx.witnessSignatureHash(idx, subscript, hashType, inputValue)
	}
	return tx.legacySignatureHash(idx, subscript, hashType)
}

// legacySignatureHash implements the original (pre-BIP143) algorithm:
// serialize a modified copy of the transaction and double-SHA256 it.
func (tx *TxData) legacySignatureHash(idx int, subscript []byte, hashType SigHashType) Hash {
	if idx >= len(tx.Inputs) {
		// Consensus behavior for an invalid index: hash of 0x01
		// padded with zero bytes (mirrors the reference client's
		// "one" return value for out-of-range SIGHASH_SINGLE, used
		// defensively here for any out-of-range index).
		var h Hash
		h[0] = 1
		return h
	}

	anyoneCanPay := hashType&SigHashAnyOneCanPay != 0
	base := hashType & sigHashMask

	var buf bytes.Buffer
	w := errors.NewWriter(&buf)

	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], tx.Version)
	w.Write(v[:])

	if anyoneCanPay {
		bitcoin.WriteVarint(w, 1)
		tx.Inputs[idx].Previous.writeTo(w)
		bitcoin.WriteBytes(w, subscript)
		var seq [4]byte
		binary.LittleEndian.PutUint32(seq[:], tx.Inputs[idx].Sequence)
		w.Write(seq[:])
	} else {
		bitcoin.WriteVarint(w, uint64(len(tx.Inputs)))
		for i, in := range tx.Inputs {
			in.Previous.writeTo(w)
			if i == idx {
				bitcoin.WriteBytes(w, subscript)
			} else {
				bitcoin.WriteBytes(w, nil)
			}
			seq := in.Sequence
			if i != idx && (base == SigHashNone || base == SigHashSingle) {
				seq = 0
			}
			var seqb [4]byte
			binary.LittleEndian.PutUint32(seqb[:], seq)
			w.Write(seqb[:])
		}
	}

	switch base {
	case SigHashNone:
		bitcoin.WriteVarint(w, 0)
	case SigHashSingle:
		if idx >= len(tx.Outputs) {
			var h Hash
			h[0] = 1
			return h
		}
		bitcoin.WriteVarint(w, uint64(idx+1))
		for i := 0; i < idx; i++ {
			var v [8]byte
			binary.LittleEndian.PutUint64(v[:], ^uint64(0))
			w.Write(v[:])
			bitcoin.WriteBytes(w, nil)
		}
		tx.Outputs[idx].writeTo(w)
	default:
		bitcoin.WriteVarint(w, uint64(len(tx.Outputs)))
		for _, out := range tx.Outputs {
			out.writeTo(w)
		}
	}

	var lt [4]byte
	binary.LittleEndian.PutUint32(lt[:], tx.LockTime)
	w.Write(lt[:])

	var ht [4]byte
	binary.LittleEndian.PutUint32(ht[:], uint32(hashType))
	w.Write(ht[:])

	return hash256.Sum(buf.Bytes())
}

// witnessSignatureHash implements BIP-143: the digest is built from
// hashes of the whole-input-set and whole-output-set rather than a
// full transaction copy, which also fixes the O(n^2) legacy hashing
// cost and the quadratic-hashing DoS vector it created.
func (tx *TxData) witnessSignatureHash(idx int, subscript []byte, hashType SigHashType, inputValue int64) Hash {
	anyoneCanPay := hashType&SigHashAnyOneCanPay != 0
	base := hashType & sigHashMask

	var hashPrevouts, hashSequence, hashOutputs Hash
	if !anyoneCanPay {
		var buf bytes.Buffer
		for _, in := range tx.Inputs {
			in.Previous.writeTo(&buf)
		}
		hashPrevouts = hash256.Sum(buf.Bytes())
	}
	if !anyoneCanPay && base != SigHashSingle && base != SigHashNone {
		var buf bytes.Buffer
		for _, in := range tx.Inputs {
			var seq [4]byte
			binary.LittleEndian.PutUint32(seq[:], in.Sequence)
			buf.Write(seq[:])
		}
		hashSequence = hash256.Sum(buf.Bytes())
	}
	if base != SigHashSingle && base != SigHashNone {
		var buf bytes.Buffer
		ew := errors.NewWriter(&buf)
		for _, out := range tx.Outputs {
			out.writeTo(ew)
		}
		hashOutputs = hash256.Sum(buf.Bytes())
	} else if base == SigHashSingle && idx < len(tx.Outputs) {
		var buf bytes.Buffer
		ew := errors.NewWriter(&buf)
		tx.Outputs[idx].writeTo(ew)
		hashOutputs = hash256.Sum(buf.Bytes())
	}

	var buf bytes.Buffer
	w := errors.NewWriter(&buf)

	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], tx.Version)
	w.Write(v[:])

	w.Write(hashPrevouts[:])
	w.Write(hashSequence[:])

	tx.Inputs[idx].Previous.writeTo(w)
	bitcoin.WriteBytes(w, subscript)

	var val [8]byte
	binary.LittleEndian.PutUint64(val[:], uint64(inputValue))
	w.Write(val[:])

	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], tx.Inputs[idx].Sequence)
	w.Write(seq[:])

	w.Write(hashOutputs[:])

	var lt [4]byte
	binary.LittleEndian.PutUint32(lt[:], tx.LockTime)
	w.Write(lt[:])

	var ht [4]byte
	binary.LittleEndian.PutUint32(ht[:], uint32(hashType))
	w.Write(ht[:])

	return hash256.Sum(buf.Bytes())
}
