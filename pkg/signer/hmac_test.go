package signer

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestRankingCursorRoundTrip(t *testing.T) {
	c := NewHMAC([]byte("test-secret"))

	tests := []struct {
		score float64
		id    string
	}{
		{8.6, "d1k2j3l4m5n6o7p8q9r0"},
		{0, ""},
		{10, "x"},
		{7.123456789, strings.Repeat("a", 300)},
	}
	for _, tt := range tests {
		token := c.EncodeRankingCursor(tt.score, tt.id)
		score, id, err := c.DecodeRankingCursor(token)
		if err != nil {
			t.Fatalf("decode(%q): %v", token, err)
		}
		if score != tt.score || id != tt.id {
			t.Errorf("got (%v, %q), want (%v, %q)", score, id, tt.score, tt.id)
		}
	}
}

func TestRankingCursorRejectsTampering(t *testing.T) {
	c := NewHMAC([]byte("test-secret"))
	token := c.EncodeRankingCursor(8.6, "d1k2j3l4m5n6o7p8q9r0")

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatal(err)
	}
	raw[0] ^= 0xFF
	tampered := base64.RawURLEncoding.EncodeToString(raw)
	if _, _, err := c.DecodeRankingCursor(tampered); err == nil {
		t.Error("flipped payload byte must fail verification")
	}
}

func TestRankingCursorRejectsWrongKey(t *testing.T) {
	token := NewHMAC([]byte("key-a")).EncodeRankingCursor(8.6, "abc")
	if _, _, err := NewHMAC([]byte("key-b")).DecodeRankingCursor(token); err == nil {
		t.Error("cursor signed with another key must fail verification")
	}
}

func TestRankingCursorRejectsGarbage(t *testing.T) {
	c := NewHMAC([]byte("test-secret"))
	for _, token := range []string{"", "!!!", "short", base64.RawURLEncoding.EncodeToString([]byte("tiny"))} {
		if _, _, err := c.DecodeRankingCursor(token); err == nil {
			t.Errorf("token %q must be rejected", token)
		}
	}
}
