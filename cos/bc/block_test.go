package bc

import (
	"bytes"
	"testing"
)

func TestCalcMerkleRootSingleLeaf(t *testing.T) {
	h := mustParseHash("5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9450")
	got := CalcMerkleRoot([]Hash{h})
	if !bytes.Equal(got[:], h[:]) {
		t.Errorf("single-leaf root = %s want %s", got, h)
	}
}

func TestCalcMerkleRootPair(t *testing.T) {
	a := mustParseHash("9c2e4d8fe97d881430de4e754b4205b9c27ce96715231cffc4337340cb110280")
	b := mustParseHash("0c08173828583fc6ecd6ecdbcca7b6939c49c242ad5107e39deb7b0a5996b900")

	// Pairing should be order-sensitive: swapping leaves changes the root.
	root1 := CalcMerkleRoot([]Hash{a, b})
	root2 := CalcMerkleRoot([]Hash{b, a})
	if bytes.Equal(root1[:], root2[:]) {
		t.Error("merkle root did not depend on leaf order")
	}

	// An odd leaf count duplicates the last leaf to pair it with itself,
	// which is the exact construction CVE-2012-2459 exploited.
	root3 := CalcMerkleRoot([]Hash{a, b, b})
	root4 := CalcMerkleRoot([]Hash{a, b, b, b})
	if !bytes.Equal(root3[:], root4[:]) {
		t.Error("odd-length root should match the root of the list with its last leaf duplicated")
	}
}

func TestDuplicateTxHashes(t *testing.T) {
	a := mustParseHash("1111111111111111111111111111111111111111111111111111111111111" + "111")
	b := mustParseHash("2222222222222222222222222222222222222222222222222222222222222" + "222")

	if DuplicateTxHashes([]Hash{a, b}) {
		t.Error("distinct pair flagged as duplicate")
	}
	if !DuplicateTxHashes([]Hash{a, b, b}) {
		t.Error("odd-length list with a repeated last leaf not flagged")
	}
	if DuplicateTxHashes([]Hash{a, b, a}) {
		t.Error("non-adjacent repeat incorrectly flagged")
	}
}

func mustParseHash(s string) Hash {
	h, err := ParseHash(s)
	if err != nil {
		panic(err)
	}
	return h
}
