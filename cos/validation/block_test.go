package validation

import (
	"testing"

	"chain/cos/bc"
	"chain/cos/txscript"
)

func TestVerifyNonContextualValid(t *testing.T) {
	coinbase := coinbaseTx(t, 1000)
	spend := simpleSpendTx(t, coinbase.Hash, 0)
	hashes := []bc.Hash{coinbase.Hash, spend.Hash}

	block := &bc.Block{
		BlockHeader:  bc.BlockHeader{MerkleRoot: bc.CalcMerkleRoot(hashes)},
		Transactions: []*bc.Tx{coinbase, spend},
	}

	if err := VerifyNonContextual(block); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyNonContextualMissingCoinbase(t *testing.T) {
	spend := simpleSpendTx(t, bc.Hash{1}, 0)
	block := &bc.Block{
		BlockHeader:  bc.BlockHeader{MerkleRoot: bc.CalcMerkleRoot([]bc.Hash{spend.Hash})},
		Transactions: []*bc.Tx{spend},
	}

	err := VerifyNonContextual(block)
	if err != ErrBadCoinbaseMissing {
		t.Errorf("got %v want %v", err, ErrBadCoinbaseMissing)
	}
}

func TestVerifyNonContextualMultipleCoinbase(t *testing.T) {
	c1 := coinbaseTx(t, 1000)
	c2 := coinbaseTx(t, 1000)
	hashes := []bc.Hash{c1.Hash, c2.Hash}

	block := &bc.Block{
		BlockHeader:  bc.BlockHeader{MerkleRoot: bc.CalcMerkleRoot(hashes)},
		Transactions: []*bc.Tx{c1, c2},
	}

	err := VerifyNonContextual(block)
	if err != ErrBadCoinbaseMultiple {
		t.Errorf("got %v want %v", err, ErrBadCoinbaseMultiple)
	}
}

func TestCalcBlockSubsidy(t *testing.T) {
	cases := []struct {
		height int64
		want   int64
	}{
		{0, 50 * 1e8},
		{209999, 50 * 1e8},
		{210000, 25 * 1e8},
		{420000, 1250000000},
		{halvingInterval * maxHalvings, 0},
	}
	for _, c := range cases {
		got := CalcBlockSubsidy(c.height)
		if got != c.want {
			t.Errorf("CalcBlockSubsidy(%d) = %d want %d", c.height, got, c.want)
		}
	}
}

func TestCalcBlockRewardOverflow(t *testing.T) {
	_, ok := CalcBlockReward(0, []int64{maxMoney, maxMoney})
	if ok {
		t.Error("expected overflow to be reported")
	}
}

func coinbaseTx(t *testing.T, height int64) *bc.Tx {
	t.Helper()
	sigScript, err := txscript.NewScriptBuilder().AddInt64(height).Script()
	if err != nil {
		t.Fatal(err)
	}
	data := bc.TxData{
		Version: 1,
		Inputs: []*bc.TxIn{{
			Previous:        bc.Outpoint{Index: 0xffffffff},
			SignatureScript: sigScript,
			Sequence:        0xffffffff,
		}},
		Outputs: []*bc.TxOut{{
			Value:    CalcBlockSubsidy(height),
			PkScript: []byte{txscript.OP_TRUE},
		}},
	}
	return bc.NewTx(data)
}

func simpleSpendTx(t *testing.T, prevHash bc.Hash, index uint32) *bc.Tx {
	t.Helper()
	data := bc.TxData{
		Version: 1,
		Inputs: []*bc.TxIn{{
			Previous:        bc.Outpoint{Hash: prevHash, Index: index},
			SignatureScript: []byte{txscript.OP_TRUE},
			Sequence:        0xffffffff,
		}},
		Outputs: []*bc.TxOut{{
			Value:    1,
			PkScript: []byte{txscript.OP_TRUE},
		}},
	}
	return bc.NewTx(data)
}
