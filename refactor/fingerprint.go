package refactor

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// fingerprintPrefixLen is the number of fingerprint characters used in
// artifact filenames.
const fingerprintPrefixLen = 8

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// fingerprintPrefix returns the short fingerprint prefix used to build
// stable artifact names.
func fingerprintPrefix(content string) string {
	return computeHash(content)[:fingerprintPrefixLen]
}
