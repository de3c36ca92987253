package bc

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"chain/errors"
)

// Hash is a 32-byte, double-SHA256 hash as used throughout the
// protocol for transaction and block identifiers.
type Hash [32]byte

// ParseHash decodes a hex-encoded hash in the byte order it is
// conventionally displayed (big-endian, i.e. reversed from wire order).
func ParseHash(s string) (h Hash, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, errors.Wrap(err, "decoding hash")
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("invalid hash length %d", len(b))
	}
	for i := range b {
		h[len(b)-1-i] = b[i]
	}
	return h, nil
}

// String returns the hash in big-endian hex, matching the
// conventional display order for transaction and block hashes.
func (h Hash) String() string {
	var reversed Hash
	for i, b := range h {
		reversed[len(h)-1-i] = b
	}
	return hex.EncodeToString(reversed[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(b []byte) error {
	parsed, err := ParseHash(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h Hash) Value() (driver.Value, error) {
	return h[:], nil
}

func (h *Hash) Scan(val interface{}) error {
	b, ok := val.([]byte)
	if !ok {
		return errors.New("Scan must receive a byte slice")
	}
	if len(b) != len(h) {
		return fmt.Errorf("invalid hash length %d", len(b))
	}
	copy(h[:], b)
	return nil
}
