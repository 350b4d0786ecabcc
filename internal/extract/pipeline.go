package extract

import (
	"concursos/internal/domain"
)

// Extractor is the document extraction pipeline. It is safe for concurrent
// use: processing is a pure function of the input bytes plus the exam
// identifier, and documents share no state.
type Extractor struct {
	layout   LayoutSource
	synonyms SynonymTable
}

// NewExtractor wires a layout source and a synonym table into a pipeline.
func NewExtractor(layout LayoutSource, synonyms SynonymTable) *Extractor {
	return &Extractor{layout: layout, synonyms: synonyms}
}

// NewDefaultExtractor returns an Extractor backed by the PDF layout
// extractor and the default portal vocabulary.
func NewDefaultExtractor() *Extractor {
	return NewExtractor(NewLayout(), DefaultSynonyms())
}

// ProcessDocument runs the full pipeline over one bulletin and always
// returns an outcome — every internal failure is converted into either a
// row warning or a document status, and nothing escapes the document
// boundary. Calling it twice with identical input yields identical output.
func (e *Extractor) ProcessDocument(examID string, pdfBytes []byte) domain.ExtractionOutcome {
	pages, err := e.layout.Extract(pdfBytes)
	if err != nil {
		return Finalize(examID, tally{LayoutErr: err}, nil, nil)
	}
	if pages.PageCount > 0 && pages.Empty() {
		return Finalize(examID, tally{LikelyScanned: true}, nil, nil)
	}

	candidates := e.reconcile(pages)

	var (
		t        tally
		records  []domain.PositionRecord
		warnings []domain.RowWarning
		lastCity string
	)

	for _, cand := range candidates {
		// Captions travel with candidates so the city context survives the
		// page-parallel detection pass.
		if city, _ := CaptionCity(cand.Caption); city != "" {
			lastCity = city
		}

		mapping, mapWarnings := MapColumns(cand, e.synonyms)
		if mapping == nil {
			t.Rejected++
			continue
		}
		t.Accepted++
		warnings = append(warnings, mapWarnings...)

		for i, row := range cand.Rows {
			if i == cand.HeaderRow {
				continue
			}
			rowIdx := cand.StartRow + i
			rec, recWarnings := NormalizeRow(row, *mapping, examID, lastCity, cand.StartPage, rowIdx)
			warnings = append(warnings, recWarnings...)

			if rec.Role == "" {
				warnings = append(warnings, domain.RowWarning{
					Code: domain.WarningEmptyRole, Page: cand.StartPage, Row: rowIdx,
					Field:   domain.FieldRole,
					Message: "row dropped: empty role",
				})
				continue
			}
			records = append(records, rec)
		}
	}

	return Finalize(examID, t, records, warnings)
}

// reconcile flattens per-page candidate lists into document-order candidates,
// merging tables split across page boundaries. Detection itself is per-page;
// the merge decision is this single sequential pass, which is what makes
// page-level parallelism possible upstream.
func (e *Extractor) reconcile(pages *PageSet) []domain.TableCandidate {
	var out []domain.TableCandidate
	for _, grid := range pages.Grids {
		for _, cand := range DetectCandidates(grid) {
			if n := len(out); n > 0 {
				if merged, ok := MergeContinuation(out[n-1], cand); ok {
					out[n-1] = merged
					continue
				}
			}
			out = append(out, cand)
		}
	}
	return out
}
