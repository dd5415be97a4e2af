package utils

import (
	"strings"

	"github.com/google/uuid"
)

// StableID derives a deterministic name-based (v5) UUID from a namespace and
// the parts of a composite natural key. The same inputs always produce the
// same identity, so importers overwrite rows instead of duplicating them.
func StableID(namespace uuid.UUID, parts ...string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(strings.Join(parts, "-")))
}
