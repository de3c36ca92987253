// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"chain/crypto/hash256"
)

// sigCacheEntry is the key under which a verified (signature, pubkey,
// message) triple is remembered, so that a script spent across many
// mempool and block validation passes pays the ecdsa verification cost
// only once.
type sigCacheEntry [32]byte

func newSigCacheEntry(sig, pubKey, msg []byte) sigCacheEntry {
	buf := make([]byte, 0, len(sig)+len(pubKey)+len(msg))
	buf = append(buf, sig...)
	buf = append(buf, pubKey...)
	buf = append(buf, msg...)
	return hash256.Sum(buf)
}

// SigCache memoizes the result of ECDSA signature verification so that
// re-validating the same script (across mempool acceptance and block
// validation, for instance) does not re-run the expensive curve
// arithmetic for signatures already known good.
type SigCache struct {
	mtx sync.Mutex
	lru *lru.Cache
}

// NewSigCache returns a SigCache that holds up to maxEntries verified
// signatures, evicting the least recently used entry once full.
func NewSigCache(maxEntries int) *SigCache {
	return &SigCache{lru: lru.New(maxEntries)}
}

// exists reports whether (sig, pubKey, msg) has already been verified.
func (c *SigCache) exists(sig, pubKey, msg []byte) bool {
	if c == nil {
		return false
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	_, ok := c.lru.Get(newSigCacheEntry(sig, pubKey, msg))
	return ok
}

// add records that (sig, pubKey, msg) has been verified.
func (c *SigCache) add(sig, pubKey, msg []byte) {
	if c == nil {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.lru.Add(newSigCacheEntry(sig, pubKey, msg), struct{}{})
}
