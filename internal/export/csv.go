// Package export renders extracted position records as CSV, Excel and JSON.
// Column order follows the canonical six-field schema, with provenance
// columns appended.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"concursos/internal/domain"
)

// BOM is the UTF-8 byte order mark, written ahead of CSV output so Excel on
// Windows decodes the accented text correctly.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Cidade",
	"Cargo",
	"Requisito",
	"Salário",
	"Carga Horária",
	"Vagas",
	"Cadastro Reserva",
	"Concurso ID",
	"Página",
}

// CSVWriter wraps csv.Writer for exporting position records.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w. The caller is expected
// to write BOM first when the output is a file destined for Excel.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of position records to CSV rows and writes them.
func (w *CSVWriter) WriteRecords(records []domain.PositionRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// recordToRow converts one record to a string slice. Parsed values win over
// raw text; when parsing failed the raw cell text is exported as-is so no
// information is lost.
func recordToRow(rec *domain.PositionRecord) []string {
	row := make([]string, len(columns))
	row[0] = rec.City
	row[1] = rec.Role
	row[2] = rec.Requirement
	row[3] = formatSalary(rec)
	row[4] = formatHours(rec)
	row[5] = formatVacancies(rec)
	row[6] = formatBool(rec.ReserveRegister)
	row[7] = rec.ExamID
	row[8] = strconv.Itoa(rec.Page)
	return row
}

func formatSalary(rec *domain.PositionRecord) string {
	if rec.Salary != nil {
		return rec.Salary.StringFixed(2)
	}
	return rec.RawSalary
}

func formatHours(rec *domain.PositionRecord) string {
	if rec.WeeklyHours == nil {
		return ""
	}
	return strconv.Itoa(*rec.WeeklyHours) + "h"
}

func formatVacancies(rec *domain.PositionRecord) string {
	switch {
	case rec.Vacancies != nil:
		return strconv.Itoa(*rec.Vacancies)
	case rec.ToBeDetermined:
		return "a definir"
	default:
		return rec.RawVacancies
	}
}

func formatBool(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
