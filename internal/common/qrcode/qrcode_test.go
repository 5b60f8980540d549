// Package qrcode 二维码模块单元测试
package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePNG(t *testing.T) {
	g := NewGenerator()

	data, err := g.GeneratePNG("SAN-ABCDEF")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// 验证是合法的 PNG
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestGeneratePNG_CustomSize(t *testing.T) {
	g := NewGenerator(WithSize(128), WithRecoveryLevel(High))

	data, err := g.GeneratePNG("SAN-XYZW23")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestGeneratePNG_EmptyContent(t *testing.T) {
	g := NewGenerator()

	_, err := g.GeneratePNG("")
	assert.Error(t, err)
}
