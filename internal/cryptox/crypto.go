// Package cryptox computes content digests used for change detection.
package cryptox

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Canonical returns the JSON encoding of v with object keys sorted at every
// level and numbers kept in their original textual form. Two values that
// differ only in key order encode identically.
func Canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical encode: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("canonical decode: %w", err)
	}

	// encoding/json writes map keys in sorted order.
	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("canonical encode: %w", err)
	}
	return out, nil
}

// Digest is the SHA-256 of Canonical(v).
func Digest(v any) ([sha256.Size]byte, error) {
	b, err := Canonical(v)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(b), nil
}

// Equal reports whether a and b have the same canonical form. Values that
// cannot be encoded are never equal.
func Equal(a, b any) bool {
	da, err := Digest(a)
	if err != nil {
		return false
	}
	db, err := Digest(b)
	if err != nil {
		return false
	}
	return da == db
}
