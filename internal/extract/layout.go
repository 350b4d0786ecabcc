// Package extract implements the bulletin extraction pipeline:
// PDF bytes -> page grids -> table candidates -> column mapping ->
// normalized position records -> extraction outcome.
//
// Every stage consumes its input and produces a new structure; nothing in
// this package performs I/O beyond reading the supplied byte slice, and
// nothing holds mutable state across documents.
package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"concursos/internal/domain"
)

// PageSet is the result of layout extraction: one grid per page that
// produced any text, in source page order, plus the document's page count.
type PageSet struct {
	PageCount int
	Grids     []domain.RawCellGrid
}

// Empty reports whether no page produced a single text cell.
func (p *PageSet) Empty() bool {
	for _, g := range p.Grids {
		for _, row := range g.Rows {
			for _, cell := range row {
				if cell != "" {
					return false
				}
			}
		}
	}
	return true
}

// LayoutSource produces per-page cell grids from raw PDF bytes. The
// concrete implementation is Layout; tests feed synthetic grids through a
// stub so the downstream heuristics are exercised without a PDF backend.
type LayoutSource interface {
	Extract(pdfBytes []byte) (*PageSet, error)
}

// Layout extracts positioned text from PDF pages and clusters it into cell
// grids. Bulletins encode structure only as positioned text, never as
// explicit table objects, so rows are recovered by Y proximity and cells by
// X gaps.
type Layout struct {
	// RowTolerance is the maximum Y distance between spans on the same row.
	RowTolerance float64
	// CellGap is the minimum horizontal whitespace separating two cells.
	// Smaller gaps are treated as word spacing inside one cell.
	CellGap float64
}

// NewLayout returns a Layout with tolerances tuned for the portal's bulletins.
func NewLayout() *Layout {
	return &Layout{
		RowTolerance: 2.5,
		CellGap:      9.0,
	}
}

type span struct {
	x, y, w float64
	text    string
}

// Extract implements LayoutSource. Pages are processed independently and in
// source order. A structurally corrupt container yields
// domain.ErrDocumentUnreadable; a well-formed document with no text layer at
// all yields an empty grid set, which the caller reports as likely scanned.
func (l *Layout) Extract(pdfBytes []byte) (set *PageSet, err error) {
	// The pdf library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			set = nil
			err = fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}

	set = &PageSet{PageCount: reader.NumPage()}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		spans := collectSpans(page)
		if len(spans) == 0 {
			continue
		}

		grid := domain.RawCellGrid{
			Page: pageNum,
			Rows: gridRows(spans, l.RowTolerance, l.CellGap),
		}
		if len(grid.Rows) > 0 {
			set.Grids = append(set.Grids, grid)
		}
	}
	return set, nil
}

func collectSpans(page pdf.Page) []span {
	content := page.Content()
	spans := make([]span, 0, len(content.Text))
	for _, t := range content.Text {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}
		spans = append(spans, span{x: t.X, y: t.Y, w: t.W, text: t.S})
	}
	return spans
}

// gridRows clusters spans into rows by Y proximity, then each row into cells
// by X gaps. Pure function over span slices so it is testable without a PDF.
func gridRows(spans []span, rowTolerance, cellGap float64) [][]string {
	rows := clusterRows(spans, rowTolerance)
	out := make([][]string, 0, len(rows))
	for _, rowSpans := range rows {
		cells := clusterCells(rowSpans, cellGap)
		if len(cells) > 0 {
			out = append(out, cells)
		}
	}
	return out
}

// clusterRows groups spans whose Y coordinates are within tolerance of each
// other. PDF Y grows upward, so rows are emitted top of page first.
func clusterRows(spans []span, tolerance float64) [][]span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].y > sorted[j].y })

	var rows [][]span
	current := []span{sorted[0]}
	rowY := sorted[0].y
	for _, sp := range sorted[1:] {
		if rowY-sp.y <= tolerance {
			current = append(current, sp)
			continue
		}
		rows = append(rows, current)
		current = []span{sp}
		rowY = sp.y
	}
	rows = append(rows, current)
	return rows
}

// clusterCells sorts a row's spans left to right and merges spans separated
// by less than gap into a single cell, joining their text with one space.
func clusterCells(rowSpans []span, gap float64) []string {
	if len(rowSpans) == 0 {
		return nil
	}

	sorted := make([]span, len(rowSpans))
	copy(sorted, rowSpans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].x < sorted[j].x })

	var cells []string
	var b strings.Builder
	b.WriteString(strings.TrimSpace(sorted[0].text))
	prevEnd := sorted[0].x + sorted[0].w

	for _, sp := range sorted[1:] {
		if sp.x-prevEnd >= gap {
			cells = append(cells, strings.TrimSpace(b.String()))
			b.Reset()
		} else if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(sp.text))
		if end := sp.x + sp.w; end > prevEnd {
			prevEnd = end
		}
	}
	cells = append(cells, strings.TrimSpace(b.String()))
	return cells
}
