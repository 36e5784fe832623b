package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DownloadClaim is the metadata embedded in a signed download token.
type DownloadClaim struct {
	JobID     string
	File      string
	ExpiresAt time.Time
}

// DownloadSigner issues and checks HMAC-signed download tokens, so finished
// exports can be fetched without a bearer token.
type DownloadSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewDownloadSigner builds a signer. A non-positive TTL falls back to 24h.
func NewDownloadSigner(secret string, ttl time.Duration) *DownloadSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DownloadSigner{secret: []byte(secret), ttl: ttl}
}

// Sign produces a token for the given job and file, valid for the
// configured TTL.
func (s *DownloadSigner) Sign(jobID, file string) (string, time.Time, error) {
	if jobID == "" || file == "" {
		return "", time.Time{}, fmt.Errorf("jobID and file required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := time.Now().Add(s.ttl)
	payload := strings.Join([]string{jobID, strconv.FormatInt(expiresAt.Unix(), 10), file}, "|")
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + s.signature(encoded), expiresAt, nil
}

// Verify checks a token's signature and expiry, returning its claim.
func (s *DownloadSigner) Verify(token string) (DownloadClaim, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return DownloadClaim{}, fmt.Errorf("malformed token")
	}
	if !hmac.Equal([]byte(s.signature(encoded)), []byte(sig)) {
		return DownloadClaim{}, fmt.Errorf("invalid token signature")
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return DownloadClaim{}, fmt.Errorf("decode token: %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 {
		return DownloadClaim{}, fmt.Errorf("malformed token payload")
	}
	expUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return DownloadClaim{}, fmt.Errorf("invalid token timestamp")
	}
	claim := DownloadClaim{JobID: parts[0], File: parts[2], ExpiresAt: time.Unix(expUnix, 0)}
	if time.Now().After(claim.ExpiresAt) {
		return DownloadClaim{}, fmt.Errorf("token expired")
	}
	return claim, nil
}

func (s *DownloadSigner) signature(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}
