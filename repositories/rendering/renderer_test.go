package rendering

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docneat/docneat-backend/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 40, 20))
	img.Set(5, 5, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderer_Open_image(t *testing.T) {
	doc, err := NewRenderer(0).Open(context.Background(), pngBytes(t), "image/png")
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 1, doc.NumPage())
	text, err := doc.Text(0)
	require.NoError(t, err)
	assert.Empty(t, text)

	img, err := doc.Image(0, 200)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	_, err = doc.Image(1, 200)
	assert.Error(t, err)
}

func TestRenderer_Open_errors(t *testing.T) {
	renderer := NewRenderer(0)

	_, err := renderer.Open(context.Background(), []byte("not a pdf"), models.PdfContentType)
	assert.True(t, errors.Is(err, models.ErrUnreadableDocument))

	_, err = renderer.Open(context.Background(), []byte("not an image"), "image/png")
	assert.True(t, errors.Is(err, models.ErrUnreadableDocument))

	_, err = renderer.Open(context.Background(), []byte("text"), "text/plain")
	assert.True(t, errors.Is(err, models.UnsupportedMediaTypeError))
}
