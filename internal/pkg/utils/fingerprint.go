package utils

import (
	"encoding/hex"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// MemberSnapshotFingerprint digests the identifiers and versions that feed a
// group compaction. Identical input sets always hash to the same value, so a
// stored fingerprint detects whether a recompute would change anything.
func MemberSnapshotFingerprint(parts []string) string {
	sorted := make([]string, len(parts))
	copy(sorted, parts)
	sort.Strings(sorted)

	sum := blake2b.Sum256([]byte(strings.Join(sorted, "\x00")))
	return hex.EncodeToString(sum[:])
}
