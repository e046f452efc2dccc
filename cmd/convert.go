package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/docneat/docneat-backend/dto"
	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/usecases"
	"github.com/docneat/docneat-backend/utils"
)

// localBucketUrl is a fileblob bucket writing plain files, without attribute sidecars.
func localBucketUrl(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "invalid output directory %s", dir)
	}
	return fmt.Sprintf("file://%s?create_dir=true&no_tmp_dir=true&metadata=skip", filepath.ToSlash(abs)), nil
}

const (
	FormatJson  = "json"
	FormatTable = "table"
)

// RunConvert converts a local document and writes the csv and xlsx exports into outDir. The preview
// and the exported file paths are printed on out, as json or as a table.
func RunConvert(config CompiledConfig, path, outDir, format string, out io.Writer) error {
	if format != FormatJson && format != FormatTable {
		return errors.Newf("unknown output format %q, expected %s or %s", format, FormatJson, FormatTable)
	}

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"), slog.LevelWarn)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	outputBucketUrl, err := localBucketUrl(outDir)
	if err != nil {
		return err
	}

	ocrConfig := loadOcrConfig()
	repositories, err := initRepositories(ctx, loadTextractConfig(), ocrConfig)
	if err != nil {
		return err
	}
	defer repositories.BlobRepository.Close()

	uc := usecases.NewUsecases(repositories,
		usecases.WithUploadBucketUrl("mem://uploads"),
		usecases.WithOutputBucketUrl(outputBucketUrl),
		usecases.WithOcrDpi(ocrConfig.Dpi),
		usecases.WithOcrConcurrency(ocrConfig.Concurrency),
		usecases.WithConversionTimeout(0),
	)
	usecase := uc.NewConversionUsecase()
	conversion, err := usecase.Convert(ctx, models.Document{
		FileName: filepath.Base(path),
		Content:  content,
	})
	if err != nil {
		return err
	}

	if format == FormatTable {
		return renderConversion(out, conversion, outDir)
	}
	return printConversion(out, conversion, outDir, config.Version)
}

func printConversion(out io.Writer, conversion models.Conversion, outDir, version string) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(struct {
		Version   string              `json:"version,omitempty"`
		Method    string              `json:"method"`
		Pages     int                 `json:"pages"`
		Rows      int                 `json:"rows"`
		Preview   []dto.PreviewRecord `json:"preview"`
		CsvFile   string              `json:"csv_file"`
		ExcelFile string              `json:"excel_file"`
	}{
		Version:   version,
		Method:    string(conversion.Method),
		Pages:     conversion.Pages,
		Rows:      len(conversion.Sheet.Rows),
		Preview:   dto.AdaptPreview(conversion.Sheet),
		CsvFile:   filepath.Join(outDir, conversion.CsvFileName()),
		ExcelFile: filepath.Join(outDir, conversion.ExcelFileName()),
	})
	return errors.Wrap(err, "failed to print the conversion")
}

// renderConversion prints the conversion summary followed by the preview rows
func renderConversion(out io.Writer, conversion models.Conversion, outDir string) error {
	_, err := fmt.Fprintf(out, "method: %s, pages: %d, rows: %d\ncsv: %s\nxlsx: %s\n",
		conversion.Method,
		conversion.Pages,
		len(conversion.Sheet.Rows),
		filepath.Join(outDir, conversion.CsvFileName()),
		filepath.Join(outDir, conversion.ExcelFileName()))
	if err != nil {
		return errors.Wrap(err, "failed to print the conversion")
	}
	if conversion.Sheet.IsEmpty() {
		_, _ = fmt.Fprintln(out, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(conversion.Sheet.Columns))
	for i, column := range conversion.Sheet.Columns {
		header[i] = column
	}
	t.AppendHeader(header)

	for _, previewRow := range dto.AdaptPreview(conversion.Sheet) {
		row := make(table.Row, len(conversion.Sheet.Columns))
		for i, column := range conversion.Sheet.Columns {
			if value, _ := previewRow.Get(column); value != nil {
				row[i] = value
			} else {
				row[i] = ""
			}
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(out, "(%d of %d rows)\n", min(dto.PreviewSize, len(conversion.Sheet.Rows)), len(conversion.Sheet.Rows))
	return nil
}
