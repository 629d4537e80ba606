// Package secure issues and verifies the signed tokens that gate photo
// access. A token is the hex HMAC-SHA256 of the file name under a
// server-held secret; whoever holds a valid token can fetch the file.
// Tokens carry no expiry: they stay valid for the lifetime of the
// secret.
package secure

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signer produces and verifies photo access tokens.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer with the given secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Token returns the access token for a file name.
func (s *Signer) Token(fileName string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(fileName))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether token grants access to fileName. The
// comparison is constant-time.
func (s *Signer) Verify(fileName, token string) bool {
	expected := s.Token(fileName)
	return hmac.Equal([]byte(expected), []byte(token))
}

// URL returns the signed access path for a file name.
func (s *Signer) URL(fileName string) string {
	return fmt.Sprintf("/photos/%s?token=%s", fileName, s.Token(fileName))
}
