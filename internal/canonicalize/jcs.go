// Package canonicalize computes the canonical JSON serialization used as the
// SHA-256 preimage for LawCard content hashing.
package canonicalize

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// JSON returns the RFC 8785 canonical JSON encoding of v: map keys sorted
// lexicographically, minimal separators, no insignificant whitespace.
func JSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: marshal: %w", err)
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: transform: %w", err)
	}
	return canon, nil
}

// Hash returns the lowercase hex SHA-256 digest of v's canonical JSON
// encoding.
func Hash(v interface{}) (string, error) {
	canon, err := JSON(v)
	if err != nil {
		return "", err
	}
	return HashBytes(canon), nil
}

// HashBytes returns the lowercase hex SHA-256 digest of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CardHash computes the canonical hash of a LawCard's raw JSON document with
// the "sha256" field removed, per the resolver's hashing contract: the
// preimage is the object as declared on disk minus the field that carries
// the hash itself.
func CardHash(rawCard map[string]interface{}) (string, error) {
	stripped := make(map[string]interface{}, len(rawCard))
	for k, v := range rawCard {
		if k == "sha256" {
			continue
		}
		stripped[k] = v
	}
	return Hash(stripped)
}
