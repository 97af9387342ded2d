// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package id implements content-addressed identifiers: fixed 32-byte
// values computed as the hash of an entity's canonical serialization.
package id

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Size is the fixed width of an Id in bytes.
const Size = 32

// Id is a 32-byte content-addressed identifier. Every first-class entity
// in the system (resource, effect, expression, type, domain, intent,
// handler, node, edge, circuit, transaction, nullifier, ...) has its own
// Id name but the same representation.
type Id [Size]byte

// Empty is the null Id (all zeros). It denotes "absent" and is never a
// valid entity Id.
var Empty Id

// IsEmpty reports whether id is the null Id.
func (i Id) IsEmpty() bool {
	return i == Empty
}

// String returns the lowercase hex encoding of the Id.
func (i Id) String() string {
	return hex.EncodeToString(i[:])
}

// Bytes returns a copy of the Id's 32 bytes.
func (i Id) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, i[:])
	return out
}

// MarshalJSON renders the Id as a hex string, matching the TEG JSON wire
// format's convention of encoding binary fields as strings.
func (i Id) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON parses the hex string form produced by MarshalJSON.
func (i *Id) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := FromHex(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// FromHex parses a hex-encoded Id.
func FromHex(s string) (Id, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Empty, fmt.Errorf("id: invalid hex: %w", err)
	}
	return FromBytes(b)
}

// FromBytes constructs an Id from exactly Size bytes.
func FromBytes(b []byte) (Id, error) {
	if len(b) != Size {
		return Empty, fmt.Errorf("id: expected %d bytes, got %d", Size, len(b))
	}
	var out Id
	copy(out[:], b)
	return out, nil
}

// Compare implements a total order over Ids, used to keep maps and
// canonical serialization deterministic.
func (i Id) Compare(other Id) int {
	return bytes.Compare(i[:], other[:])
}

// Less reports whether i sorts before other.
func (i Id) Less(other Id) bool {
	return i.Compare(other) < 0
}

// Hash computes the canonical content-address of raw bytes: a
// SHA-256-class 32-byte digest. Collision-resistant, deterministic and
// stable across processes and versions.
func Hash(data []byte) Id {
	return sha256.Sum256(data)
}

// Entity is anything that can render its own canonical serialization.
// Equal entities must produce equal bytes, and therefore equal Ids.
type Entity interface {
	CanonicalBytes() []byte
}

// Of computes the content-address of an Entity: canonical serialize then
// hash. Equal entities yield equal Ids.
func Of(e Entity) Id {
	return Hash(e.CanonicalBytes())
}

// ErrShortInput is returned by DecodeLenPrefixed when the length prefix
// exceeds the remaining buffer.
var ErrShortInput = errors.New("id: truncated length-prefixed field")

// EncodeLenPrefixed appends a 64-bit little-endian length prefix followed
// by the bytes themselves, matching the canonical serialization rule for
// variable-length sequences (spec.md §6.2).
func EncodeLenPrefixed(buf []byte, data []byte) []byte {
	var lenBytes [8]byte
	putUint64LE(lenBytes[:], uint64(len(data)))
	buf = append(buf, lenBytes[:]...)
	buf = append(buf, data...)
	return buf
}

// DecodeLenPrefixed reads a length-prefixed field and returns the
// remaining buffer after it.
func DecodeLenPrefixed(buf []byte) (data []byte, rest []byte, err error) {
	if len(buf) < 8 {
		return nil, nil, ErrShortInput
	}
	n := getUint64LE(buf[:8])
	buf = buf[8:]
	if uint64(len(buf)) < n {
		return nil, nil, ErrShortInput
	}
	return buf[:n], buf[n:], nil
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getUint64LE(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// SortedMapBytes renders a string-keyed byte-value map using the
// canonical serialization rule for maps: keys sorted lexicographically,
// then (len, key, value)* — spec.md §6.2.
func SortedMapBytes(m map[string][]byte) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []byte
	for _, k := range keys {
		out = EncodeLenPrefixed(out, []byte(k))
		out = EncodeLenPrefixed(out, m[k])
	}
	return out
}
