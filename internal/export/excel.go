package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"concursos/internal/domain"
)

const (
	positionsSheet   = "Todos os Cargos"
	citySummarySheet = "Resumo por Cidade"

	maxColumnWidth = 50
)

// WriteExcel renders records as a workbook with two sheets: every position,
// and a per-city position count summary.
func WriteExcel(w io.Writer, records []domain.PositionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writePositionsSheet(f, records); err != nil {
		return err
	}
	if err := writeCitySummarySheet(f, records); err != nil {
		return err
	}

	// The workbook is created with a default sheet that would otherwise
	// linger as an empty first tab.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}
	return nil
}

func writePositionsSheet(f *excelize.File, records []domain.PositionRecord) error {
	if _, err := f.NewSheet(positionsSheet); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, columns)
	for i := range records {
		rows = append(rows, recordToRow(&records[i]))
	}
	return writeSheet(f, positionsSheet, rows)
}

func writeCitySummarySheet(f *excelize.File, records []domain.PositionRecord) error {
	if _, err := f.NewSheet(citySummarySheet); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}

	counts := make(map[string]int)
	for _, rec := range records {
		if rec.City != "" {
			counts[rec.City]++
		}
	}
	cities := make([]string, 0, len(counts))
	for city := range counts {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	rows := [][]string{{"Cidade", "Total de Cargos"}}
	for _, city := range cities {
		rows = append(rows, []string{city, fmt.Sprintf("%d", counts[city])})
	}
	return writeSheet(f, citySummarySheet, rows)
}

// writeSheet fills a sheet from string rows and widens each column to fit
// its longest cell, capped at maxColumnWidth.
func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	widths := make(map[int]int)

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("excel export: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("excel export: %w", err)
			}
			if len(val) > widths[colIdx] {
				widths[colIdx] = len(val)
			}
		}
	}

	for colIdx, width := range widths {
		col, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return fmt.Errorf("excel export: %w", err)
		}
		w := width + 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(w)); err != nil {
			return fmt.Errorf("excel export: %w", err)
		}
	}
	return nil
}
