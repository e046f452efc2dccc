package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"github.com/docneat/docneat-backend/repositories"
)

type DocumentRenderer struct {
	mock.Mock
}

func (m *DocumentRenderer) Open(ctx context.Context, content []byte, contentType string) (repositories.RenderedDocument, error) {
	args := m.Called(ctx, content, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repositories.RenderedDocument), args.Error(1)
}

type RenderedDocument struct {
	mock.Mock
}

func (m *RenderedDocument) NumPage() int {
	args := m.Called()
	return args.Int(0)
}

func (m *RenderedDocument) Text(page int) (string, error) {
	args := m.Called(page)
	return args.String(0), args.Error(1)
}

func (m *RenderedDocument) Image(page int, dpi float64) (image.Image, error) {
	args := m.Called(page, dpi)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(image.Image), args.Error(1)
}

func (m *RenderedDocument) Close() error {
	args := m.Called()
	return args.Error(0)
}

type TextRecognizer struct {
	mock.Mock
}

func (m *TextRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}

func (m *TextRecognizer) Available() error {
	args := m.Called()
	return args.Error(0)
}
