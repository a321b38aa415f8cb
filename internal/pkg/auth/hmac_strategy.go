package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HMACStrategy signs "userID:expiry" payloads with HMAC-SHA256.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	opts = opts.normalize()
	return &HMACStrategy{secret: []byte(secret), ttl: opts.TTL, now: opts.Now}
}

func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%d:%d", userID, expires)
	token := payload + ":" + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return 0, ErrInvalidToken
	}

	payload := parts[0] + ":" + parts[1]
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[2])) {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if !s.now().Before(time.Unix(expires, 0)) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
