package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-manager/internal/domain"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_ResizesToWidth(t *testing.T) {
	p := NewProcessor(0, 0)
	out, err := p.Process("me.PNG", bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestProcess_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 50, 50)), nil))

	out, err := NewProcessor(0, 0).Process("me.jpeg", &buf)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestProcess_Rejects(t *testing.T) {
	tests := []struct {
		name, file string
		body       []byte
		max        int64
		msg        string
	}{
		{"extension", "doc.pdf", []byte("x"), 0, "please upload an image"},
		{"too large", "big.png", bytes.Repeat([]byte{1}, 11), 10, "file too large"},
		{"corrupt", "bad.png", []byte("not an image"), 0, "unsupported or corrupt image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProcessor(tt.max, 0).Process(tt.file, bytes.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.True(t, strings.Contains(err.Error(), tt.msg), err.Error())
		})
	}
}

func TestProcess_RejectsLargeDimensions(t *testing.T) {
	p := NewProcessor(0, 0)
	p.MaxPixels = 200 * 200

	_, err := p.Process("wide.png", bytes.NewReader(pngBytes(t, 400, 101)))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "image dimensions too large")

	_, err = p.Process("ok.png", bytes.NewReader(pngBytes(t, 200, 200)))
	assert.NoError(t, err)
}

func TestProcess_DefaultPixelCap(t *testing.T) {
	// 全黑灰度图压缩后很小，但头部声明 4097x4097
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4097, 4097))))
	require.Less(t, buf.Len(), DefaultMaxBytes)

	_, err := NewProcessor(0, 0).Process("huge.png", &buf)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "image dimensions too large")
}
