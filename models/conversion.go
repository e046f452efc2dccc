package models

import (
	"fmt"
	"io"
	"time"
)

type ExtractionMethod string

const (
	ExtractionMethodTextract  ExtractionMethod = "textract"
	ExtractionMethodTextLayer ExtractionMethod = "text_layer"
	ExtractionMethodOcr       ExtractionMethod = "ocr"
	ExtractionMethodNone      ExtractionMethod = "none"
)

const (
	CsvExtension   = ".csv"
	ExcelExtension = ".xlsx"

	CsvContentType   = "text/csv"
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	CsvDownloadName   = "docneat-converted.csv"
	ExcelDownloadName = "docneat-converted.xlsx"
)

type Conversion struct {
	Id          string
	FileName    string
	ContentType string
	Method      ExtractionMethod
	Pages       int
	Sheet       Sheet
	CreatedAt   time.Time
}

func (c Conversion) CsvFileName() string {
	return fmt.Sprintf("%s%s", c.Id, CsvExtension)
}

func (c Conversion) ExcelFileName() string {
	return fmt.Sprintf("%s%s", c.Id, ExcelExtension)
}

func (c Conversion) UploadKey(sanitizedFileName string) string {
	return fmt.Sprintf("%s/%s", c.Id, sanitizedFileName)
}

// Download is an exported file ready to be streamed to the client. The caller must close the reader.
type Download struct {
	FileName    string
	ContentType string
	Size        int64
	ReadCloser  io.ReadCloser
}

type Blob struct {
	FileName   string
	Size       int64
	ReadCloser io.ReadCloser
}

// BlobObject describes a stored file without opening it
type BlobObject struct {
	Key     string
	Size    int64
	ModTime time.Time
}
