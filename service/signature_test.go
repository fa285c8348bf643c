package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"transactionId":"T1","decision":"accept"}`)
	sig := SignBody(body, "s3cret")

	cases := []struct {
		name   string
		sig    string
		secret string
		want   bool
	}{
		{"plain", sig, "s3cret", true},
		{"prefixed", "sig=" + sig, "s3cret", true},
		{"padded", "  sig=" + sig + "\n", "s3cret", true},
		{"wrong secret", sig, "other", false},
		{"empty signature", "", "s3cret", false},
		{"empty secret", sig, "", false},
		{"truncated", sig[:len(sig)-2], "s3cret", false},
		{"uppercase", "SIG=" + sig, "s3cret", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, VerifySignature(body, c.sig, c.secret))
		})
	}
}

func TestVerifySignature_BodyBound(t *testing.T) {
	body := []byte(`{"decision":"accept"}`)
	sig := SignBody(body, "s3cret")
	// re-serialized JSON no longer matches
	assert.False(t, VerifySignature([]byte(`{"decision": "accept"}`), sig, "s3cret"))
	assert.Len(t, sig, 64)
}
