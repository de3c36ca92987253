package crypto

import (
	"encoding/json"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// Signature is an ECDSA signature in the form btcec parses and verifies
// against secp256k1 public keys.
type Signature btcec.Signature

// halfOrder is half the order of the secp256k1 group, used for the
// BIP-62 low-S malleability check.
var halfOrder = new(big.Int).Rsh(btcec.S256().N, 1)

// decodeSignature parses sigDER as a DER-encoded ECDSA signature.
// allowHistoricalLengths relaxes the strict DER-length checks
// btcec.ParseSignature applies by default, matching the behavior
// required when the STRICTENC/DERSIG flags are not set.
func decodeSignature(sigDER []byte, allowHistoricalLengths bool) (*Signature, error) {
	var (
		sig *btcec.Signature
		err error
	)
	if allowHistoricalLengths {
		sig, err = btcec.ParseSignature(sigDER, btcec.S256())
	} else {
		sig, err = btcec.ParseDERSignature(sigDER, btcec.S256())
	}
	if err != nil {
		return nil, err
	}
	return (*Signature)(sig), nil
}

// highS reports whether s exceeds half the secp256k1 group order, the
// BIP-62 low-S malleability threshold.
func (s *Signature) highS() bool {
	return (*btcec.Signature)(s).S.Cmp(halfOrder) > 0
}

// Verify checks the signature against msg32 under pubKey.
func (s *Signature) Verify(msg32 []byte, pubKey *btcec.PublicKey) bool {
	return (*btcec.Signature)(s).Verify(msg32, pubKey)
}

func (s *Signature) MarshalJSON() ([]byte, error) {
	serialized := (*btcec.Signature)(s).Serialize()
	return json.Marshal(serialized)
}

func (s *Signature) UnmarshalJSON(encoded []byte) error {
	var b []byte
	err := json.Unmarshal(encoded, &b)
	if err != nil {
		return err
	}
	parsed, err := btcec.ParseDERSignature(b, btcec.S256())
	if err == nil {
		*s = (Signature)(*parsed)
	}
	return err
}
