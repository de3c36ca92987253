package crypto

import (
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/btcec"
)

func TestVerifySignature(t *testing.T) {
	priv, pub := btcec.PrivKeyFromBytes(btcec.S256(), []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
	})

	msg := sha256.Sum256([]byte("hello"))
	sig, err := priv.Sign(msg[:])
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	sigDER := sig.Serialize()
	pubKeyBytes := pub.SerializeCompressed()

	if !VerifySignature(msg[:], sigDER, pubKeyBytes, false, false) {
		t.Fatal("expected signature to verify")
	}

	wrongMsg := sha256.Sum256([]byte("goodbye"))
	if VerifySignature(wrongMsg[:], sigDER, pubKeyBytes, false, false) {
		t.Fatal("expected signature to fail against a different message")
	}
}

func TestSignatureJSONRoundTrip(t *testing.T) {
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), []byte{
		0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28,
		0x29, 0x2a, 0x2b, 0x2c, 0x2d, 0x2e, 0x2f, 0x30,
		0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38,
		0x39, 0x3a, 0x3b, 0x3c, 0x3d, 0x3e, 0x3f, 0x40,
	})
	msg := sha256.Sum256([]byte("round trip"))
	btcecSig, err := priv.Sign(msg[:])
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	sig := Signature(*btcecSig)

	encoded, err := json.Marshal(&sig)
	if err != nil {
		t.Fatalf("failed to marshal signature: %v", err)
	}

	var decoded Signature
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("failed to unmarshal signature: %v", err)
	}

	if !decoded.Verify(msg[:], priv.PubKey()) {
		t.Fatal("decoded signature failed to verify")
	}
}
