package utils

import (
	"meetcue-service/internal/pkg/constvars"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		code, err := GenerateReferralCode()
		assert.NoError(t, err)
		assert.Len(t, code, constvars.ReferralCodeLength)

		for _, c := range code {
			assert.True(t, strings.ContainsRune(constvars.ReferralCodeAlphabet, c), "character %q outside referral alphabet", c)
		}
		seen[code] = true
	}

	// 100 independent draws from a 31^5 space colliding down to a handful
	// would mean the generator is broken.
	assert.Greater(t, len(seen), 90)
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	assert.True(t, strings.HasPrefix(id, constvars.REQUEST_ID_PREFIX))
	assert.NotEqual(t, id, GenerateRequestID())
}

func TestMemberSnapshotFingerprint(t *testing.T) {
	a := MemberSnapshotFingerprint([]string{"sel-1|GMT|v1", "sel-2|GMT|v1"})
	b := MemberSnapshotFingerprint([]string{"sel-2|GMT|v1", "sel-1|GMT|v1"})
	c := MemberSnapshotFingerprint([]string{"sel-1|GMT|v2", "sel-2|GMT|v1"})

	assert.Equal(t, a, b, "fingerprint must not depend on part order")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
