// Package rendering opens uploaded documents to read their text layer and rasterize their pages.
// PDF support relies on MuPDF through cgo.
package rendering

import (
	"bytes"
	"context"
	"image"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	_ "golang.org/x/image/webp"

	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/repositories"
)

type Renderer struct {
	maxPages int
}

// NewRenderer limits the number of pages of a document to maxPages, when positive.
func NewRenderer(maxPages int) Renderer {
	return Renderer{maxPages: maxPages}
}

func (r Renderer) Open(ctx context.Context, content []byte, contentType string) (repositories.RenderedDocument, error) {
	switch {
	case contentType == models.PdfContentType:
		doc, err := fitz.NewFromMemory(content)
		if err != nil {
			return nil, errors.Wrapf(models.ErrUnreadableDocument, "failed to open pdf: %v", err)
		}
		if doc.NumPage() == 0 {
			doc.Close()
			return nil, errors.Wrap(models.ErrUnreadableDocument, "pdf document contains zero pages")
		}
		return &pdfDocument{doc: doc, maxPages: r.maxPages}, nil

	// png, jpeg and gif from the standard library, tiff and bmp through imaging, webp registered above
	case strings.HasPrefix(contentType, "image/"):
		img, err := imaging.Decode(bytes.NewReader(content), imaging.AutoOrientation(true))
		if err != nil {
			return nil, errors.Wrapf(models.ErrUnreadableDocument, "failed to decode image: %v", err)
		}
		return imageDocument{img: img}, nil

	default:
		return nil, errors.Wrapf(models.ErrUnsupportedDocument, "content type %s", contentType)
	}
}

type pdfDocument struct {
	doc      *fitz.Document
	maxPages int
}

func (d *pdfDocument) NumPage() int {
	n := d.doc.NumPage()
	if d.maxPages > 0 && n > d.maxPages {
		return d.maxPages
	}
	return n
}

func (d *pdfDocument) Text(page int) (string, error) {
	text, err := d.doc.Text(page)
	if err != nil {
		return "", errors.Wrapf(err, "failed to extract text of page %d", page)
	}
	return text, nil
}

func (d *pdfDocument) Image(page int, dpi float64) (image.Image, error) {
	img, err := d.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render page %d", page)
	}
	return img, nil
}

func (d *pdfDocument) Close() error {
	return d.doc.Close()
}

// imageDocument is a single page document without text layer
type imageDocument struct {
	img image.Image
}

func (d imageDocument) NumPage() int { return 1 }

func (d imageDocument) Text(page int) (string, error) { return "", nil }

func (d imageDocument) Image(page int, dpi float64) (image.Image, error) {
	if page != 0 {
		return nil, errors.Newf("page %d out of range", page)
	}
	return d.img, nil
}

func (d imageDocument) Close() error { return nil }
