package extract

import (
	"strings"

	"concursos/internal/domain"
)

// minHeaderCells is the minimum number of non-empty cells for a row to open
// a table candidate.
const minHeaderCells = 3

// nonEmptyCells counts the cells of a row holding any non-blank text.
func nonEmptyCells(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// isSeparatorRow reports whether a row terminates a candidate: at most one
// non-empty cell.
func isSeparatorRow(row []string) bool {
	return nonEmptyCells(row) <= 1
}

// isHeaderStart reports whether row can open a candidate given the row that
// follows it: at least minHeaderCells non-empty cells and a column count
// within one of the next row's.
func isHeaderStart(row, next []string) bool {
	if nonEmptyCells(row) < minHeaderCells {
		return false
	}
	diff := len(row) - len(next)
	return diff >= -1 && diff <= 1
}

// fitsWidth reports whether a row continues a candidate of the given column
// count: more than one non-empty cell and a count within one of established.
func fitsWidth(row []string, width int) bool {
	if isSeparatorRow(row) {
		return false
	}
	diff := len(row) - width
	return diff >= -1 && diff <= 1
}

// padRow right-pads row with empty cells up to width. Rows are never
// truncated; a row wider than the header keeps its extra cells out of every
// mapping (indexes beyond width are simply unmapped).
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// DetectCandidates scans one page's grid and proposes zero or more table
// candidates. A candidate needs a header row plus at least one data row;
// pages with no qualifying row sequence produce an empty slice, which is not
// an error.
func DetectCandidates(grid domain.RawCellGrid) []domain.TableCandidate {
	var candidates []domain.TableCandidate
	caption := ""

	i := 0
	for i < len(grid.Rows) {
		row := grid.Rows[i]

		if i+1 >= len(grid.Rows) || !isHeaderStart(row, grid.Rows[i+1]) {
			// Single-cell rows between tables double as captions
			// ("MUNICÍPIO DE SOSSÊGO/PB"), remembered for the next candidate.
			if nonEmptyCells(row) == 1 {
				caption = firstNonEmpty(row)
			}
			i++
			continue
		}

		width := len(row)
		cand := domain.TableCandidate{
			StartPage: grid.Page,
			EndPage:   grid.Page,
			StartRow:  i,
			HeaderRow: 0,
			Caption:   caption,
			Rows:      [][]string{padRow(row, width)},
		}
		caption = ""

		j := i + 1
		for j < len(grid.Rows) && fitsWidth(grid.Rows[j], width) {
			cand.Rows = append(cand.Rows, padRow(grid.Rows[j], width))
			j++
		}

		// Header plus at least one data row, or it is not a table.
		if len(cand.Rows) >= 2 {
			cand.OpenEnded = j == len(grid.Rows)
			candidates = append(candidates, cand)
		}
		i = j
		if i < len(grid.Rows) && isSeparatorRow(grid.Rows[i]) {
			if nonEmptyCells(grid.Rows[i]) == 1 {
				caption = firstNonEmpty(grid.Rows[i])
			}
			i++
		}
	}
	return candidates
}

func firstNonEmpty(row []string) string {
	for _, c := range row {
		if t := strings.TrimSpace(c); t != "" {
			return t
		}
	}
	return ""
}

// MergeContinuation decides whether next continues prev across a page
// boundary and returns the merged candidate. Tables frequently split at page
// breaks: prev must have ended at the bottom of its page without a separator
// row, next must start at the top of the following page with a matching
// column count and no fresh header row. A repeated header (the portal
// reprints column titles on continuation pages) is recognized by cell-wise
// equality with prev's header and dropped.
func MergeContinuation(prev, next domain.TableCandidate) (domain.TableCandidate, bool) {
	if !prev.OpenEnded || next.StartRow != 0 || next.Caption != "" {
		return prev, false
	}
	if next.StartPage != prev.EndPage+1 {
		return prev, false
	}

	prevWidth := len(prev.Rows[prev.HeaderRow])
	nextWidth := len(next.Rows[next.HeaderRow])
	if diff := nextWidth - prevWidth; diff < -1 || diff > 1 {
		return prev, false
	}

	rows := next.Rows
	if sameCells(prev.Rows[prev.HeaderRow], rows[0]) {
		rows = rows[1:]
	}

	merged := prev
	merged.Rows = make([][]string, 0, len(prev.Rows)+len(rows))
	merged.Rows = append(merged.Rows, prev.Rows...)
	for _, r := range rows {
		merged.Rows = append(merged.Rows, padRow(r, prevWidth))
	}
	merged.EndPage = next.EndPage
	merged.OpenEnded = next.OpenEnded
	return merged, true
}

func sameCells(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(strings.TrimSpace(a[i]), strings.TrimSpace(b[i])) {
			return false
		}
	}
	return true
}
