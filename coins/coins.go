// Package coins implements the compact, lazily-decoded representation
// of a transaction's unspent outputs used by the chain's persistent
// UTXO store: one Coins entry per transaction, covering only the
// outputs that are still unspent.
package coins

import (
	"bytes"
	"encoding/binary"
	"io"

	"chain/cos/bc"
	"chain/cos/txscript"
	"chain/encoding/bitcoin"
	"chain/errors"
)

// scriptType selects one of the compressed output-script encodings, or
// the raw fallback, for a single output's on-disk representation.
type scriptType byte

const (
	scriptTypeRaw        scriptType = 0x00
	scriptTypePubKeyHash scriptType = 0x01
	scriptTypeScriptHash scriptType = 0x02
	scriptTypePubKey     scriptType = 0x03
)

// Output is a single unspent output recorded in a Coins entry. Its
// script is reconstructed from its compressed on-disk form only on the
// first call to Script; until then it holds only the bytes the wire
// format actually stored (a 20-byte hash or 33-byte pubkey for the
// common cases, or the raw script verbatim otherwise).
type Output struct {
	Value int64

	sType   scriptType
	payload []byte
	script  []byte // memoized result of decompressing payload
}

// Script returns the output's public-key script, decompressing it from
// its on-disk form on first access.
func (o *Output) Script() []byte {
	if o.sType == scriptTypeRaw {
		return o.payload
	}
	if o.script == nil {
		o.script = decompressScript(o.sType, o.payload)
	}
	return o.script
}

// NewOutput returns an Output wrapping a fully-materialized output
// script, ready for serialization. The script is compressed to one of
// the known-shape encodings when it matches, falling back to raw
// storage otherwise.
func NewOutput(value int64, script []byte) *Output {
	o := &Output{Value: value}
	o.sType, o.payload = compressScript(script)
	return o
}

// UnconfirmedHeight is the sentinel Height value recording that a
// Coins entry belongs to a transaction not yet included in a block.
const UnconfirmedHeight = 0x7fffffff

// Coins is the unspent-output set of a single transaction: its
// version, confirmation height (or UnconfirmedHeight), coinbase flag,
// and an ordered output slice in which a nil entry marks a spent or
// never-existent slot.
type Coins struct {
	Version    uint64
	Height     uint32
	IsCoinBase bool
	Outputs    []*Output
}

// spentFieldLen returns the number of spent-field bytes needed to
// cover outputs up through the last non-nil entry; a Coins value with
// no unspent outputs needs zero bytes (the caller deletes such an
// entry rather than storing it).
func spentFieldLen(outputs []*Output) int {
	last := -1
	for i, o := range outputs {
		if o != nil {
			last = i
		}
	}
	if last < 0 {
		return 0
	}
	return (last + 1 + 7) / 8
}

// spentBit reports whether bit i of field is set (1 = spent/absent),
// treating any index beyond the field's bit capacity as spent.
func spentBit(field []byte, i int) bool {
	byteIdx := i / 8
	if byteIdx >= len(field) {
		return true
	}
	bitIdx := uint(7 - i%8)
	return field[byteIdx]&(1<<bitIdx) != 0
}

func setSpentBit(field []byte, i int) {
	field[i/8] |= 1 << uint(7-i%8)
}

func encodeSpentField(outputs []*Output, flen int) []byte {
	field := make([]byte, flen)
	for i := 0; i < flen*8; i++ {
		var o *Output
		if i < len(outputs) {
			o = outputs[i]
		}
		if o == nil {
			setSpentBit(field, i)
		}
	}
	return field
}

// WriteTo serializes c in the compact Coins wire format: varint
// version; a bits word folding in height and the coinbase flag; the
// bit-packed spent field; then, for each unspent index in order, the
// output's compressed script prefix, payload, and varint value.
func (c *Coins) WriteTo(w io.Writer) (int64, error) {
	ew := errors.NewWriter(w)
	c.writeTo(ew)
	return ew.Written(), ew.Err()
}

func (c *Coins) writeTo(w *errors.Writer) {
	bitcoin.WriteVarint(w, c.Version)

	bits := c.Height << 1
	if c.IsCoinBase {
		bits |= 1
	}
	var bitsBuf [4]byte
	binary.LittleEndian.PutUint32(bitsBuf[:], bits)
	w.Write(bitsBuf[:])

	flen := spentFieldLen(c.Outputs)
	bitcoin.WriteVarint(w, uint64(flen))
	w.Write(encodeSpentField(c.Outputs, flen))

	for _, o := range c.Outputs {
		if o == nil {
			continue
		}
		w.Write([]byte{byte(o.sType)})
		if o.sType == scriptTypeRaw {
			bitcoin.WriteVarint(w, uint64(len(o.payload)))
		}
		w.Write(o.payload)
		bitcoin.WriteVarint(w, uint64(o.Value))
	}
}

// Bytes serializes c and returns the resulting buffer.
func (c *Coins) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// payloadLen returns the number of on-disk bytes the script payload
// occupies for the given type; for the raw type the length is itself
// varint-encoded immediately ahead of the payload, so this returns -1
// to signal "read a varint first."
func payloadLen(t scriptType) int {
	switch t {
	case scriptTypePubKeyHash, scriptTypeScriptHash:
		return 20
	case scriptTypePubKey:
		return 33
	default:
		return -1
	}
}

// readOutputEntry decodes one unspent output's wire entry (prefix,
// payload, value) from r, which must be positioned at the entry's
// first byte.
func readOutputEntry(r *bytes.Reader) (*Output, error) {
	prefix, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "reading coins output prefix")
	}
	t := scriptType(prefix)

	n := payloadLen(t)
	if n < 0 {
		l, err := bitcoin.ReadVarint(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading coins raw script length")
		}
		n = int(l)
	}

	payload := make([]byte, n)
	if _, err := readFull(r, payload); err != nil {
		return nil, errors.Wrap(err, "reading coins output script")
	}

	value, err := bitcoin.ReadVarint(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading coins output value")
	}

	return &Output{Value: int64(value), sType: t, payload: payload}, nil
}

func readFull(r *bytes.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if err == nil && n < len(buf) {
		err = errors.New("short read decoding coins entry")
	}
	return n, err
}

// Parse decodes a full Coins entry from buf.
func Parse(buf []byte) (*Coins, error) {
	r := bytes.NewReader(buf)

	version, err := bitcoin.ReadVarint(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading coins version")
	}

	var bitsBuf [4]byte
	if _, err := readFull(r, bitsBuf[:]); err != nil {
		return nil, errors.Wrap(err, "reading coins height/coinbase bits")
	}
	bits := binary.LittleEndian.Uint32(bitsBuf[:])

	flen, err := bitcoin.ReadVarint(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading coins spent-field length")
	}
	field := make([]byte, flen)
	if flen > 0 {
		if _, err := readFull(r, field); err != nil {
			return nil, errors.Wrap(err, "reading coins spent field")
		}
	}

	c := &Coins{
		Version:    version,
		Height:     bits >> 1,
		IsCoinBase: bits&1 == 1,
		Outputs:    make([]*Output, flen*8),
	}
	for i := range c.Outputs {
		if spentBit(field, i) {
			continue
		}
		out, err := readOutputEntry(r)
		if err != nil {
			return nil, err
		}
		c.Outputs[i] = out
	}
	for len(c.Outputs) > 0 && c.Outputs[len(c.Outputs)-1] == nil {
		c.Outputs = c.Outputs[:len(c.Outputs)-1]
	}
	return c, nil
}

// ParseCoin decodes only the output at index from buf, without
// allocating or decoding any of the entry's other outputs. It returns
// ok == false if index is spent or beyond the entry's recorded range.
func ParseCoin(buf []byte, index int) (out *Output, ok bool, err error) {
	r := bytes.NewReader(buf)

	if _, err := bitcoin.ReadVarint(r); err != nil {
		return nil, false, errors.Wrap(err, "reading coins version")
	}
	var bitsBuf [4]byte
	if _, err := readFull(r, bitsBuf[:]); err != nil {
		return nil, false, errors.Wrap(err, "reading coins height/coinbase bits")
	}

	flen, err := bitcoin.ReadVarint(r)
	if err != nil {
		return nil, false, errors.Wrap(err, "reading coins spent-field length")
	}
	field := make([]byte, flen)
	if flen > 0 {
		if _, err := readFull(r, field); err != nil {
			return nil, false, errors.Wrap(err, "reading coins spent field")
		}
	}

	if index < 0 || index >= int(flen)*8 || spentBit(field, index) {
		return nil, false, nil
	}

	for i := 0; i < index; i++ {
		if spentBit(field, i) {
			continue
		}
		if err := skipOutputEntry(r); err != nil {
			return nil, false, err
		}
	}

	out, err = readOutputEntry(r)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func skipOutputEntry(r *bytes.Reader) error {
	prefix, err := r.ReadByte()
	if err != nil {
		return errors.Wrap(err, "reading coins output prefix")
	}
	t := scriptType(prefix)

	n := payloadLen(t)
	if n < 0 {
		l, err := bitcoin.ReadVarint(r)
		if err != nil {
			return errors.Wrap(err, "reading coins raw script length")
		}
		n = int(l)
	}
	if _, err := r.Seek(int64(n), io.SeekCurrent); err != nil {
		return errors.Wrap(err, "skipping coins output script")
	}
	if _, err := bitcoin.ReadVarint(r); err != nil {
		return errors.Wrap(err, "reading coins output value")
	}
	return nil
}

// FromOutputs builds a Coins entry for a freshly-confirmed transaction,
// one Output per TxOut with no outputs yet spent.
func FromOutputs(version uint64, height uint32, isCoinBase bool, outs []*bc.TxOut) *Coins {
	c := &Coins{
		Version:    version,
		Height:     height,
		IsCoinBase: isCoinBase,
		Outputs:    make([]*Output, len(outs)),
	}
	for i, out := range outs {
		if txscript.IsUnspendable(out.PkScript) {
			continue
		}
		c.Outputs[i] = NewOutput(out.Value, out.PkScript)
	}
	return c
}

// Spend marks output index as spent. It reports whether the index was
// previously unspent.
func (c *Coins) Spend(index int) bool {
	if index < 0 || index >= len(c.Outputs) || c.Outputs[index] == nil {
		return false
	}
	c.Outputs[index] = nil
	return true
}

// IsFullySpent reports whether every output has been spent, the
// condition under which a caller should delete the entry rather than
// serialize it (an all-spent entry's wire form is zero bytes).
func (c *Coins) IsFullySpent() bool {
	for _, o := range c.Outputs {
		if o != nil {
			return false
		}
	}
	return true
}

// compressScript recognizes the standard pay-to-pubkey-hash,
// pay-to-script-hash, and compressed pay-to-pubkey shapes and returns
// their compact encoding; any other script is stored raw.
func compressScript(script []byte) (scriptType, []byte) {
	switch {
	case len(script) == 25 &&
		script[0] == txscript.OP_DUP && script[1] == txscript.OP_HASH160 &&
		script[2] == txscript.OP_DATA_20 &&
		script[23] == txscript.OP_EQUALVERIFY && script[24] == txscript.OP_CHECKSIG:
		return scriptTypePubKeyHash, script[3:23]

	case len(script) == 23 &&
		script[0] == txscript.OP_HASH160 && script[1] == txscript.OP_DATA_20 &&
		script[22] == txscript.OP_EQUAL:
		return scriptTypeScriptHash, script[2:22]

	case len(script) == 35 &&
		script[0] == txscript.OP_DATA_33 &&
		(script[1] == 0x02 || script[1] == 0x03) &&
		script[34] == txscript.OP_CHECKSIG:
		return scriptTypePubKey, script[1:34]

	default:
		return scriptTypeRaw, script
	}
}

// decompressScript rebuilds a full output script from its compact
// on-disk form.
func decompressScript(t scriptType, payload []byte) []byte {
	b := txscript.NewScriptBuilder()
	switch t {
	case scriptTypePubKeyHash:
		b.AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).AddData(payload).
			AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG)
	case scriptTypeScriptHash:
		b.AddOp(txscript.OP_HASH160).AddData(payload).AddOp(txscript.OP_EQUAL)
	case scriptTypePubKey:
		b.AddData(payload).AddOp(txscript.OP_CHECKSIG)
	default:
		return payload
	}
	script, _ := b.Script()
	return script
}
