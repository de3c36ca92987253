package validation

import (
	"testing"

	"chain/cos/bc"
)

func TestVerifyNonContextualDuplicateTx(t *testing.T) {
	coinbase := coinbaseTx(t, 1000)
	spend := simpleSpendTx(t, coinbase.Hash, 0)

	// Three transactions with the last one repeated gives an odd-length
	// leaf list whose duplicated final pair reproduces CVE-2012-2459.
	hashes := []bc.Hash{coinbase.Hash, spend.Hash, spend.Hash}
	block := &bc.Block{
		BlockHeader: bc.BlockHeader{
			MerkleRoot: bc.CalcMerkleRoot(hashes),
		},
		Transactions: []*bc.Tx{coinbase, spend, spend},
	}

	err := VerifyNonContextual(block)
	if err != ErrBadTxnsDuplicate {
		t.Errorf("got %v want %v", err, ErrBadTxnsDuplicate)
	}
}

func TestVerifyNonContextualBadMerkleRoot(t *testing.T) {
	coinbase := coinbaseTx(t, 1000)
	block := &bc.Block{
		BlockHeader:  bc.BlockHeader{MerkleRoot: bc.Hash{0xff}},
		Transactions: []*bc.Tx{coinbase},
	}

	err := VerifyNonContextual(block)
	if err != ErrBadTxnMerkleRoot {
		t.Errorf("got %v want %v", err, ErrBadTxnMerkleRoot)
	}
}
