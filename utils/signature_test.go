package utils

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func TestVerifyNotificationSignature_Valid(t *testing.T) {
	orderID := "RENT-3f2a"
	statusCode := "200"
	grossAmount := "3600000.00"
	serverKey := "SB-server-key"

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	sig := hex.EncodeToString(sum[:])

	if !VerifyNotificationSignature(orderID, statusCode, grossAmount, serverKey, sig) {
		t.Fatal("expected valid signature to be accepted")
	}
}

func TestVerifyNotificationSignature_UppercaseHexAccepted(t *testing.T) {
	sig := ComputeNotificationSignature("o", "200", "1000.00", "k")
	upper := ""
	for _, r := range sig {
		if r >= 'a' && r <= 'f' {
			upper += string(r - 32)
		} else {
			upper += string(r)
		}
	}
	if !VerifyNotificationSignature("o", "200", "1000.00", "k", upper) {
		t.Fatal("expected case-insensitive hex comparison")
	}
}

func TestVerifyNotificationSignature_Mutations(t *testing.T) {
	orderID := "RENT-3f2a"
	statusCode := "200"
	grossAmount := "3600000.00"
	serverKey := "SB-server-key"
	sig := ComputeNotificationSignature(orderID, statusCode, grossAmount, serverKey)

	flipped := []byte(sig)
	if flipped[0] == '0' {
		flipped[0] = '1'
	} else {
		flipped[0] = '0'
	}

	cases := []struct {
		name                                  string
		order, status, amount, key, signature string
	}{
		{"order id changed", "RENT-3f2b", statusCode, grossAmount, serverKey, sig},
		{"status code changed", orderID, "201", grossAmount, serverKey, sig},
		{"amount changed", orderID, statusCode, "3600000.01", serverKey, sig},
		{"server key changed", orderID, statusCode, grossAmount, "SB-server-kex", sig},
		{"signature truncated", orderID, statusCode, grossAmount, serverKey, sig[:len(sig)-1]},
		{"signature flipped", orderID, statusCode, grossAmount, serverKey, string(flipped)},
	}
	for _, tc := range cases {
		if VerifyNotificationSignature(tc.order, tc.status, tc.amount, tc.key, tc.signature) {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}
}
