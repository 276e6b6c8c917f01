package utils

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// ComputeNotificationSignature builds the gateway notification
// signature: SHA-512 over the concatenation of order id, status code,
// gross amount and the merchant server key, hex encoded.
func ComputeNotificationSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifyNotificationSignature checks a signature supplied by the
// gateway. Comparison is constant-time.
func VerifyNotificationSignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	expected := ComputeNotificationSignature(orderID, statusCode, grossAmount, serverKey)
	provided := strings.ToLower(strings.TrimSpace(signature))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
