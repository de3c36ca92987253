package bc

import (
	"bytes"
	"encoding/binary"
	"io"

	"chain/crypto/hash256"
	"chain/encoding/bitcoin"
	"chain/errors"
)

// BlockHeader is the fixed-size, 80-byte portion of a block that
// miners hash to satisfy the proof-of-work target.
type BlockHeader struct {
	Version    int32
	PrevBlock  Hash
	MerkleRoot Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Block is a header together with the transactions it commits to.
type Block struct {
	BlockHeader
	Transactions []*Tx
}

// Hash returns the block's double-SHA256 identifier, computed over
// the 80-byte header only.
func (h *BlockHeader) Hash() Hash {
	var buf bytes.Buffer
	h.writeTo(&buf)
	return hash256.Sum(buf.Bytes())
}

func (h *BlockHeader) writeTo(w io.Writer) {
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], uint32(h.Version))
	w.Write(v[:])
	w.Write(h.PrevBlock[:])
	w.Write(h.MerkleRoot[:])

	var ts [4]byte
	binary.LittleEndian.PutUint32(ts[:], h.Timestamp)
	w.Write(ts[:])

	var bits [4]byte
	binary.LittleEndian.PutUint32(bits[:], h.Bits)
	w.Write(bits[:])

	var nonce [4]byte
	binary.LittleEndian.PutUint32(nonce[:], h.Nonce)
	w.Write(nonce[:])
}

func (h *BlockHeader) readFrom(r io.Reader) error {
	var v [4]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return errors.Wrap(err, "reading block version")
	}
	h.Version = int32(binary.LittleEndian.Uint32(v[:]))

	if _, err := io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return errors.Wrap(err, "reading prev block hash")
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return errors.Wrap(err, "reading merkle root")
	}

	var ts, bits, nonce [4]byte
	if _, err := io.ReadFull(r, ts[:]); err != nil {
		return errors.Wrap(err, "reading timestamp")
	}
	h.Timestamp = binary.LittleEndian.Uint32(ts[:])

	if _, err := io.ReadFull(r, bits[:]); err != nil {
		return errors.Wrap(err, "reading bits")
	}
	h.Bits = binary.LittleEndian.Uint32(bits[:])

	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return errors.Wrap(err, "reading nonce")
	}
	h.Nonce = binary.LittleEndian.Uint32(nonce[:])
	return nil
}

// WriteTo writes the block's header followed by its transactions, in
// the standard wire format (each transaction using BIP-144 witness
// serialization when it carries witness data).
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	ew := errors.NewWriter(w)
	b.writeTo(ew)
	return ew.Written(), ew.Err()
}

func (b *Block) writeTo(w io.Writer) {
	b.BlockHeader.writeTo(w)
	bitcoin.WriteVarint(w, uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		tx.writeTo(w, tx.HasWitness())
	}
}

// ReadFrom decodes a block from its standard wire format.
func (b *Block) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	if err := b.BlockHeader.readFrom(cr); err != nil {
		return cr.n, err
	}
	n, err := bitcoin.ReadVarint(cr)
	if err != nil {
		return cr.n, errors.Wrap(err, "reading tx count")
	}
	for ; n > 0; n-- {
		var data TxData
		if err := data.readFrom(cr); err != nil {
			return cr.n, errors.Wrap(err, "reading transaction")
		}
		b.Transactions = append(b.Transactions, NewTx(data))
	}
	return cr.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// BaseSize returns the size of the block's non-witness serialization:
// the 80-byte header, the transaction count, and each transaction's
// base (non-witness) size.
func (b *Block) BaseSize() int {
	n := 80
	n += bitcoin.VarintLen(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		n += tx.BaseSize()
	}
	return n
}

// TotalSize returns the size of the block's full (witness-including)
// serialization.
func (b *Block) TotalSize() int {
	n := 80
	n += bitcoin.VarintLen(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		n += tx.TotalSize()
	}
	return n
}

// Weight returns the block's consensus weight: base size weighted by
// (WitnessScaleFactor-1) plus the full (witness-including) size.
func (b *Block) Weight() int {
	return b.BaseSize()*(WitnessScaleFactor-1) + b.TotalSize()
}

// VirtualSize returns the block's weight divided by
// WitnessScaleFactor, rounded up.
func (b *Block) VirtualSize() int {
	return (b.Weight() + WitnessScaleFactor - 1) / WitnessScaleFactor
}

// CalcMerkleRoot computes the root of the binary Merkle tree over
// hashes, pairwise double-SHA256 hashing up the tree. A lone hash at
// any level is duplicated against itself to make a pair, matching the
// historical behavior that CVE-2012-2459 exploited: a block whose
// transaction list has an odd element duplicated onto itself produces
// the same root as the unduplicated list, so callers MUST separately
// reject blocks containing adjacent identical transaction hashes
// (see DuplicateTxHashes).
func CalcMerkleRoot(hashes []Hash) Hash {
	if len(hashes) == 0 {
		return Hash{}
	}
	level := make([]Hash, len(hashes))
	copy(level, hashes)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]Hash, len(level)/2)
		for i := range next {
			var buf [64]byte
			copy(buf[:32], level[2*i][:])
			copy(buf[32:], level[2*i+1][:])
			next[i] = hash256.Sum(buf[:])
		}
		level = next
	}
	return level[0]
}

// DuplicateTxHashes reports whether hashes contains two adjacent
// identical entries at any level of the Merkle tree, the condition
// CVE-2012-2459 exploited to build a block whose invalid duplicated
// transaction list hashes to the same Merkle root as a valid one.
func DuplicateTxHashes(hashes []Hash) bool {
	level := make([]Hash, len(hashes))
	copy(level, hashes)
	for len(level) > 1 {
		for i := 0; i+1 < len(level); i++ {
			if level[i] == level[i+1] {
				return true
			}
		}
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]Hash, len(level)/2)
		for i := range next {
			var buf [64]byte
			copy(buf[:32], level[2*i][:])
			copy(buf[32:], level[2*i+1][:])
			next[i] = hash256.Sum(buf[:])
		}
		level = next
	}
	return false
}
