package models

import (
	"path/filepath"
	"strings"
)

const (
	PdfContentType = "application/pdf"
)

// Document is an uploaded file, held in memory for the duration of a conversion.
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}

func (d Document) IsPdf() bool {
	return d.ContentType == PdfContentType
}

func (d Document) IsImage() bool {
	return strings.HasPrefix(d.ContentType, "image/")
}

// SanitizedFileName keeps the base name of the client provided file name, so that it can safely be
// used as part of a storage key.
func (d Document) SanitizedFileName() string {
	name := filepath.Base(strings.ReplaceAll(d.FileName, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == 0:
			return -1
		case r < 0x20:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
