package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const signaturePrefix = "sig="

// SignBody returns the lowercase hex HMAC-SHA256 of body keyed by secret.
func SignBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether providedSignature is the HMAC of rawBody under secret.
// An empty signature or secret never verifies.
func VerifySignature(rawBody []byte, providedSignature string, secret string) bool {
	if providedSignature == "" || secret == "" {
		return false
	}
	provided := strings.TrimPrefix(strings.TrimSpace(providedSignature), signaturePrefix)
	provided = strings.TrimSpace(provided)
	expected := SignBody(rawBody, secret)
	return hmac.Equal([]byte(provided), []byte(expected))
}
