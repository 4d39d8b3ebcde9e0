package storage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/storage"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageProcessor_Dimensions(t *testing.T) {
	p := storage.NewImageProcessor()

	t.Run("reads width and height", func(t *testing.T) {
		w, h, err := p.Dimensions(encodePNG(t, 64, 32))

		require.NoError(t, err)
		assert.Equal(t, 64, w)
		assert.Equal(t, 32, h)
	})

	t.Run("rejects non images", func(t *testing.T) {
		_, _, err := p.Dimensions([]byte("not an image"))

		assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
	})
}

func TestImageProcessor_Thumbnail(t *testing.T) {
	p := storage.NewImageProcessor()

	t.Run("fits large images into the box", func(t *testing.T) {
		thumb, err := p.Thumbnail(encodePNG(t, 400, 200), 100, 100)

		require.NoError(t, err)
		img, format, err := image.Decode(bytes.NewReader(thumb))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 100, img.Bounds().Dx())
		assert.Equal(t, 50, img.Bounds().Dy())
	})

	t.Run("keeps small images at their size", func(t *testing.T) {
		thumb, err := p.Thumbnail(encodePNG(t, 20, 10), 100, 100)

		require.NoError(t, err)
		img, _, err := image.Decode(bytes.NewReader(thumb))
		require.NoError(t, err)
		assert.Equal(t, 20, img.Bounds().Dx())
	})
}
