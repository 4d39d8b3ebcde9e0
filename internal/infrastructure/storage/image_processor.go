package storage

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
)

const (
	ThumbnailQuality = 85
)

type ImageProcessorImpl struct {
	quality int
}

func NewImageProcessor() *ImageProcessorImpl {
	return &ImageProcessorImpl{quality: ThumbnailQuality}
}

// Dimensions reads the image header only; the decoders are registered by
// the imaging package.
func (p *ImageProcessorImpl) Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", domain.ErrUnsupportedImage, err)
	}
	return cfg.Width, cfg.Height, nil
}

func (p *ImageProcessorImpl) Thumbnail(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
