package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"meetcue-service/internal/pkg/constvars"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateReferralCode draws uniformly from the referral alphabet. Uniqueness
// against existing groups is the caller's responsibility.
func GenerateReferralCode() (string, error) {
	max := big.NewInt(int64(len(constvars.ReferralCodeAlphabet)))

	code := make([]byte, constvars.ReferralCodeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = constvars.ReferralCodeAlphabet[num.Int64()]
	}

	return string(code), nil
}

func GenerateSessionJWT(sessionID, secret string, jwtExpiryTime int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(time.Duration(jwtExpiryTime) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GenerateExportObjectName(groupCode string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("exports/%s_%s.json", groupCode, timestamp)
}
