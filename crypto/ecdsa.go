package crypto

import (
	"github.com/btcsuite/btcd/btcec"
)

// VerifySignature checks an ECDSA signature over msg32 against pubKey.
//
// sigDER is a DER-encoded ECDSA signature. pubKey is a SEC1-encoded
// public key, either compressed (33 bytes) or uncompressed (65 bytes).
// allowHistoricalLengths relaxes the strict DER-length checks that
// btcec.ParseSignature applies by default, matching the behavior
// required when the STRICTENC/DERSIG flags are not set. allowHighS
// skips the low-S malleability check performed when LOW_S is set.
func VerifySignature(msg32, sigDER, pubKey []byte, allowHistoricalLengths, allowHighS bool) bool {
	sig, err := decodeSignature(sigDER, allowHistoricalLengths)
	if err != nil {
		return false
	}
	if !allowHighS && sig.highS() {
		return false
	}
	key, err := btcec.ParsePubKey(pubKey, btcec.S256())
	if err != nil {
		return false
	}
	return sig.Verify(msg32, key)
}
