package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash"
	"math"
)

// Codec lists the cursor methods the handlers rely on.
// Implementations must be safe for concurrent use.
type Codec interface {
	EncodeRankingCursor(finalScore float64, mediaItemID string) string
	DecodeRankingCursor(token string) (float64, string, error)
}

// HMAC implements Codec using HMAC-SHA256 for integrity.
// It encodes payloads as base64 URL without padding.
type HMAC struct {
	key []byte
	h   func() hash.Hash
}

// NewHMAC creates an HMAC signer with the provided secret key.
func NewHMAC(key []byte) *HMAC {
	return &HMAC{key: append([]byte(nil), key...), h: sha256.New}
}

// seal signs the payload and returns a base64url token payload||sig.
func (c *HMAC) seal(payload []byte) string {
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	sig := mac.Sum(nil)
	buf := append(payload, sig...)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// open verifies the token and returns the payload bytes.
func (c *HMAC) open(token string, minPayloadLen int) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	if len(raw) < minPayloadLen+32 {
		return nil, errors.New("invalid_cursor_length")
	}
	payload := raw[:len(raw)-32]
	sig := raw[len(raw)-32:]
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	expected := mac.Sum(nil)
	if !hmac.Equal(sig, expected) {
		return nil, errors.New("invalid_cursor_signature")
	}
	return payload, nil
}

// Ranking cursor: final_score(float64) + idLen(uint16) + id bytes.
func (c *HMAC) EncodeRankingCursor(finalScore float64, mediaItemID string) string {
	idBytes := []byte(mediaItemID)
	payload := make([]byte, 8+2+len(idBytes))
	binary.BigEndian.PutUint64(payload[0:8], math.Float64bits(finalScore))
	binary.BigEndian.PutUint16(payload[8:10], uint16(len(idBytes)))
	copy(payload[10:], idBytes)
	return c.seal(payload)
}

func (c *HMAC) DecodeRankingCursor(token string) (float64, string, error) {
	payload, err := c.open(token, 10)
	if err != nil {
		return 0, "", err
	}
	score := math.Float64frombits(binary.BigEndian.Uint64(payload[0:8]))
	idLen := int(binary.BigEndian.Uint16(payload[8:10]))
	if 10+idLen != len(payload) {
		return 0, "", errors.New("invalid_cursor_payload")
	}
	return score, string(payload[10:]), nil
}
