// Package oid validates and generates customer identifiers. A customer OID
// is either a canonical hyphenated UUID (any case) or a legacy 8-36 character
// code of uppercase letters, digits and hyphens.
package oid

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
)

var (
	EmptyError         = errors.New("customer oid cannot be empty")
	InvalidFormatError = errors.New("invalid customer oid format")
)

// Lowercase letters are deliberately excluded: legacy codes were always
// issued uppercase and downstream systems rely on that.
var _legacyPattern = regexp.MustCompile(`^[A-Z0-9-]{8,36}$`)

const _canonicalUUIDLen = 36

// Validate returns the identifier unchanged when it is acceptable as a
// lookup or storage key. It never normalizes the input.
func Validate(customerOID string) (string, error) {
	if customerOID == "" {
		return "", EmptyError
	}
	// uuid.Parse also takes braced, URN and bare-hex forms; the length
	// guard keeps acceptance at the canonical 8-4-4-4-12 grouping.
	if len(customerOID) == _canonicalUUIDLen {
		if _, err := uuid.Parse(customerOID); err == nil {
			return customerOID, nil
		}
	}
	if _legacyPattern.MatchString(customerOID) {
		return customerOID, nil
	}
	return "", InvalidFormatError
}

// New generates a fresh random customer OID in canonical UUID form.
func New() string {
	return uuid.NewString()
}
