package coins

import (
	"bytes"
	"testing"

	"chain/cos/bc"
	"chain/cos/txscript"
)

func p2pkh(hash []byte) []byte {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).AddData(hash).
		AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG).Script()
	if err != nil {
		panic(err)
	}
	return script
}

func p2sh(hash []byte) []byte {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).AddData(hash).AddOp(txscript.OP_EQUAL).Script()
	if err != nil {
		panic(err)
	}
	return script
}

func p2pk(pubKey []byte) []byte {
	script, err := txscript.NewScriptBuilder().AddData(pubKey).AddOp(txscript.OP_CHECKSIG).Script()
	if err != nil {
		panic(err)
	}
	return script
}

func TestCoinsRoundTrip(t *testing.T) {
	hash := bytes.Repeat([]byte{0x11}, 20)
	pubKey := append([]byte{0x02}, bytes.Repeat([]byte{0x22}, 32)...)
	rawScript := []byte{txscript.OP_RETURN, 0x01, 0xff}

	outs := []*bc.TxOut{
		{Value: 1000, PkScript: p2pkh(hash)},
		{Value: 2000, PkScript: p2sh(hash)},
		{Value: 0, PkScript: rawScript}, // unspendable, dropped
		{Value: 3000, PkScript: p2pk(pubKey)},
	}

	c := FromOutputs(1, 1000, true, outs)
	if len(c.Outputs) != 4 {
		t.Fatalf("got %d outputs, want 4", len(c.Outputs))
	}
	if c.Outputs[2] != nil {
		t.Fatalf("OP_RETURN output should have been dropped as unspendable")
	}

	buf, err := c.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	got, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != c.Version || got.Height != c.Height || got.IsCoinBase != c.IsCoinBase {
		t.Fatalf("header mismatch: got %+v", got)
	}
	if len(got.Outputs) != len(c.Outputs) {
		t.Fatalf("got %d outputs, want %d", len(got.Outputs), len(c.Outputs))
	}

	for i, want := range c.Outputs {
		gotOut := got.Outputs[i]
		if want == nil {
			if gotOut != nil {
				t.Errorf("output %d: want spent, got present", i)
			}
			continue
		}
		if gotOut == nil {
			t.Fatalf("output %d: want present, got spent", i)
		}
		if gotOut.Value != want.Value {
			t.Errorf("output %d: value = %d want %d", i, gotOut.Value, want.Value)
		}
		if !bytes.Equal(gotOut.Script(), want.Script()) {
			t.Errorf("output %d: script = %x want %x", i, gotOut.Script(), want.Script())
		}
	}
}

func TestParseCoinFastPath(t *testing.T) {
	hash := bytes.Repeat([]byte{0x33}, 20)
	outs := []*bc.TxOut{
		{Value: 10, PkScript: p2pkh(hash)},
		{Value: 0, PkScript: []byte{txscript.OP_RETURN}}, // spent slot
		{Value: 30, PkScript: p2sh(hash)},
	}
	c := FromOutputs(1, 1, false, outs)
	buf, err := c.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	out, ok, err := ParseCoin(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || out.Value != 10 || !bytes.Equal(out.Script(), p2pkh(hash)) {
		t.Fatalf("index 0: got %+v ok=%v", out, ok)
	}

	_, ok, err = ParseCoin(buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("index 1 should be spent")
	}

	out, ok, err = ParseCoin(buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || out.Value != 30 || !bytes.Equal(out.Script(), p2sh(hash)) {
		t.Fatalf("index 2: got %+v ok=%v", out, ok)
	}

	_, ok, err = ParseCoin(buf, 5)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("out-of-range index should report spent/absent")
	}
}

func TestSpendAndFullySpent(t *testing.T) {
	outs := []*bc.TxOut{
		{Value: 1, PkScript: p2pkh(bytes.Repeat([]byte{1}, 20))},
		{Value: 2, PkScript: p2pkh(bytes.Repeat([]byte{2}, 20))},
	}
	c := FromOutputs(1, 1, false, outs)

	if c.IsFullySpent() {
		t.Fatal("fresh coins entry should not be fully spent")
	}
	if !c.Spend(0) {
		t.Fatal("spending an unspent index should succeed")
	}
	if c.Spend(0) {
		t.Fatal("spending an already-spent index should report false")
	}
	if c.IsFullySpent() {
		t.Fatal("one remaining output should not be fully spent")
	}
	c.Spend(1)
	if !c.IsFullySpent() {
		t.Fatal("spending all outputs should report fully spent")
	}
}
