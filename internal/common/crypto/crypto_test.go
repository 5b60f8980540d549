// Package crypto 加密模块单元测试
package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAES_KeySize(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"16 bytes", "0123456789abcdef", false},
		{"24 bytes", "0123456789abcdef01234567", false},
		{"32 bytes", "0123456789abcdef0123456789abcdef", false},
		{"too short", "short", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAES(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKeySize)
				assert.Nil(t, a)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, a)
			}
		})
	}
}

func TestAES_EncryptDecrypt(t *testing.T) {
	a, err := NewAES("0123456789abcdef")
	require.NoError(t, err)

	// 护照号等敏感信息
	plaintext := "AB1234567"

	ciphertext, err := a.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := a.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestAES_EncryptRandomIV(t *testing.T) {
	a, err := NewAES("0123456789abcdef")
	require.NoError(t, err)

	// 相同明文每次加密结果不同
	c1, _ := a.Encrypt("AB1234567")
	c2, _ := a.Encrypt("AB1234567")
	assert.NotEqual(t, c1, c2)
}

func TestAES_DecryptInvalid(t *testing.T) {
	a, err := NewAES("0123456789abcdef")
	require.NoError(t, err)

	_, err = a.Decrypt("not-base64!!!")
	assert.Error(t, err)

	_, err = a.Decrypt("c2hvcnQ=") // 解码后不足一个块
	assert.ErrorIs(t, err, ErrCiphertextShort)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("frontdesk-pass-123")
	require.NoError(t, err)
	assert.NotEqual(t, "frontdesk-pass-123", hash)

	assert.True(t, VerifyPassword("frontdesk-pass-123", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
}

func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s1, 16)

	s2, err := GenerateRandomString(16)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}

func TestMaskIDNumber(t *testing.T) {
	assert.Equal(t, "AB****567", MaskIDNumber("AB1234567"))
	// 过短不脱敏
	assert.Equal(t, "AB123", MaskIDNumber("AB123"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+66****5678", MaskPhone("+6681235678"))
	assert.Equal(t, "12345", MaskPhone("12345"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "gu***@example.com", MaskEmail("guest@example.com"))
	assert.Equal(t, "ab@x.co", MaskEmail("ab@x.co"))
	assert.Equal(t, "no-at-sign", MaskEmail("no-at-sign"))
}
