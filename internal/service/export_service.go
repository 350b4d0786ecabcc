package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"concursos/internal/domain"
	"concursos/internal/export"
	"concursos/internal/port"
)

// ExportService renders the full position dataset in a requested format.
type ExportService interface {
	// Export returns the rendered dataset plus a dated filename and the
	// response content type.
	Export(ctx context.Context, format domain.ExportFormat) (filename, contentType string, data []byte, err error)

	// WriteFiles renders the dataset into dir, one file per format. Used
	// by the one-shot CLI.
	WriteFiles(ctx context.Context, dir string, formats []domain.ExportFormat) ([]string, error)
}

type exportService struct {
	positionRepo port.PositionRepository
	baseName     string
}

// NewExportService creates a new ExportService implementation.
func NewExportService(positionRepo port.PositionRepository, baseName string) ExportService {
	return &exportService{positionRepo: positionRepo, baseName: baseName}
}

func (s *exportService) Export(ctx context.Context, format domain.ExportFormat) (string, string, []byte, error) {
	records, err := s.positionRepo.ListAll(ctx)
	if err != nil {
		return "", "", nil, fmt.Errorf("exportService.Export: %w", err)
	}

	var buf bytes.Buffer
	var contentType string

	switch format {
	case domain.ExportFormatCSV:
		contentType = "text/csv; charset=utf-8"
		buf.Write(export.BOM)
		w := export.NewCSVWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return "", "", nil, fmt.Errorf("exportService.Export csv: %w", err)
		}
		if err := w.WriteRecords(records); err != nil {
			return "", "", nil, fmt.Errorf("exportService.Export csv: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return "", "", nil, fmt.Errorf("exportService.Export csv: %w", err)
		}
	case domain.ExportFormatExcel:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := export.WriteExcel(&buf, records); err != nil {
			return "", "", nil, fmt.Errorf("exportService.Export xlsx: %w", err)
		}
	case domain.ExportFormatJSON:
		contentType = "application/json"
		if err := export.WriteJSON(&buf, records); err != nil {
			return "", "", nil, fmt.Errorf("exportService.Export json: %w", err)
		}
	default:
		return "", "", nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	return export.BuildFilename(s.baseName, format), contentType, buf.Bytes(), nil
}

func (s *exportService) WriteFiles(ctx context.Context, dir string, formats []domain.ExportFormat) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("exportService.WriteFiles: %w", err)
	}

	var written []string
	for _, format := range formats {
		filename, _, data, err := s.Export(ctx, format)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("exportService.WriteFiles: %w", err)
		}
		log.Printf("exportService: wrote %s (%d bytes)", path, len(data))
		written = append(written, path)
	}
	return written, nil
}

// ParseFormats converts configured format names, rejecting unknown ones.
func ParseFormats(names []string) ([]domain.ExportFormat, error) {
	out := make([]domain.ExportFormat, 0, len(names))
	for _, name := range names {
		switch domain.ExportFormat(name) {
		case domain.ExportFormatCSV, domain.ExportFormatExcel, domain.ExportFormatJSON:
			out = append(out, domain.ExportFormat(name))
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
		}
	}
	return out, nil
}
