package sexp

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource hands out element identifiers.
type IDSource func() UUID

// NewUUID returns a random (version 4) identifier.
func NewUUID() UUID {
	return UUID(uuid.NewString())
}

// SequentialIDs returns a source that yields deterministic identifiers
// derived from seed. Two sources with the same seed produce the same
// sequence, which keeps golden comparisons stable.
func SequentialIDs(seed string) IDSource {
	ns := uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
	var n atomic.Uint64
	return func() UUID {
		i := n.Add(1)
		return UUID(uuid.NewSHA1(ns, []byte(fmt.Sprint(i))).String())
	}
}

// ValidUUID reports whether s parses as a UUID.
func ValidUUID(s UUID) bool {
	_, err := uuid.Parse(string(s))
	return err == nil
}
