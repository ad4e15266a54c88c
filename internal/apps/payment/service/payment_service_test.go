package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	secret := "test_key_secret"
	message := "order_Abc123|pay_Xyz789"

	if !verifyRazorpaySignature(message, sign(message, secret), secret) {
		t.Error("valid signature rejected")
	}
	if verifyRazorpaySignature(message, sign(message, "other_secret"), secret) {
		t.Error("signature from wrong secret accepted")
	}
	if verifyRazorpaySignature("order_Abc123|pay_Other", sign(message, secret), secret) {
		t.Error("signature for different message accepted")
	}
	if verifyRazorpaySignature(message, "", secret) {
		t.Error("empty signature accepted")
	}
}
