package secure

import (
	"strings"
	"testing"
)

func TestSigner_VerifyRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret")

	token := signer.Token("upload_1700000000000_a1b2c3d4.jpg")
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !signer.Verify("upload_1700000000000_a1b2c3d4.jpg", token) {
		t.Error("expected token to verify for the same file name")
	}
}

func TestSigner_Verify_Rejections(t *testing.T) {
	signer := NewSigner("test-secret")
	fileName := "upload_1700000000000_a1b2c3d4.jpg"
	token := signer.Token(fileName)

	tests := []struct {
		name     string
		fileName string
		token    string
	}{
		{"empty token", fileName, ""},
		{"garbage token", fileName, "not-a-token"},
		{"token for another file", "upload_1700000000000_ffffffff.jpg", token},
		{"truncated token", fileName, token[:len(token)-2]},
		{"tampered token", fileName, flipLastHexChar(token)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if signer.Verify(tt.fileName, tt.token) {
				t.Error("expected verification to fail")
			}
		})
	}
}

func TestSigner_Verify_DifferentSecret(t *testing.T) {
	token := NewSigner("secret-a").Token("file.jpg")
	if NewSigner("secret-b").Verify("file.jpg", token) {
		t.Error("token signed with a different secret should not verify")
	}
}

func TestSigner_URL(t *testing.T) {
	signer := NewSigner("test-secret")
	url := signer.URL("file.jpg")

	if !strings.HasPrefix(url, "/photos/file.jpg?token=") {
		t.Errorf("unexpected URL shape: %s", url)
	}
	token := strings.TrimPrefix(url, "/photos/file.jpg?token=")
	if !signer.Verify("file.jpg", token) {
		t.Error("token embedded in the URL should verify")
	}
}

func flipLastHexChar(token string) string {
	last := token[len(token)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return token[:len(token)-1] + string(replacement)
}
