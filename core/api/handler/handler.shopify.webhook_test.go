package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyShopifySignatureValid(t *testing.T) {
	body := []byte(`{"id":5551042,"line_items":[]}`)
	secret := "shpss_test_secret"

	assert.True(t, VerifyShopifySignature(body, signBody(body, secret), secret))
}

func TestVerifyShopifySignatureWrongSecret(t *testing.T) {
	body := []byte(`{"id":5551042}`)

	sig := signBody(body, "secret-a")
	assert.False(t, VerifyShopifySignature(body, sig, "secret-b"))
}

func TestVerifyShopifySignatureTamperedBody(t *testing.T) {
	body := []byte(`{"id":5551042}`)
	secret := "shpss_test_secret"
	sig := signBody(body, secret)

	tampered := []byte(`{"id":5551043}`)
	assert.False(t, VerifyShopifySignature(tampered, sig, secret))
}

func TestVerifyShopifySignatureMissingInputs(t *testing.T) {
	body := []byte(`{}`)

	assert.False(t, VerifyShopifySignature(body, "", "secret"))
	assert.False(t, VerifyShopifySignature(body, signBody(body, "secret"), ""))
	assert.False(t, VerifyShopifySignature(body, "không phải base64!!!", "secret"))
}
