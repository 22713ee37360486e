package avatar

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"go-task-manager/internal/domain"
)

const (
	DefaultMaxBytes  = 512 << 10
	DefaultWidth     = 100
	DefaultMaxPixels = 4096 * 4096 // 解码前按头部声明的尺寸拦截
)

var allowedExt = map[string]struct{}{".jpg": {}, ".jpeg": {}, ".png": {}}

// Processor 校验上传文件并缩放成固定宽度的 PNG
type Processor struct {
	MaxBytes  int64
	Width     int
	MaxPixels int64
}

func NewProcessor(maxBytes int64, width int) *Processor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return &Processor{MaxBytes: maxBytes, Width: width, MaxPixels: DefaultMaxPixels}
}

// Process 扩展名 → 大小 → 尺寸 → 解码 → 缩放 → PNG；所有输入错误都是 ValidationError
func (p *Processor) Process(filename string, r io.Reader) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		return nil, domain.Invalid("avatar", "please upload an image (.jpg, .jpeg or .png)")
	}
	raw, err := io.ReadAll(io.LimitReader(r, p.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	if int64(len(raw)) > p.MaxBytes {
		return nil, domain.Invalid("avatar", fmt.Sprintf("file too large, max %d bytes", p.MaxBytes))
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, &domain.ValidationError{Field: "avatar", Msg: "unsupported or corrupt image", Err: err}
	}
	maxPixels := p.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, domain.Invalid("avatar", fmt.Sprintf("image dimensions too large, max %d pixels", maxPixels))
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &domain.ValidationError{Field: "avatar", Msg: "unsupported or corrupt image", Err: err}
	}
	return p.encode(p.resize(src))
}

func (p *Processor) resize(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return src
	}
	h := b.Dy() * p.Width / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, p.Width, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func (p *Processor) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}
