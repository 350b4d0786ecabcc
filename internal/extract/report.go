package extract

import (
	"concursos/internal/domain"
)

// tally carries the counts Finalize needs to decide a document status.
type tally struct {
	LayoutErr     error
	LikelyScanned bool
	Accepted      int // candidates that passed schema mapping
	Rejected      int // candidates discarded by schema mapping
}

// Finalize assembles the per-document outcome. The status decision order is
// fixed: parse_error > likely_scanned > no_table_found > partial > ok, and
// the result is deterministic for the same counts — the outcome carries no
// timestamps and no generated identifiers.
func Finalize(examID string, t tally, records []domain.PositionRecord, warnings []domain.RowWarning) domain.ExtractionOutcome {
	out := domain.ExtractionOutcome{
		ExamID:   examID,
		Records:  records,
		Warnings: warnings,
	}
	if out.Records == nil {
		out.Records = []domain.PositionRecord{}
	}
	if out.Warnings == nil {
		out.Warnings = []domain.RowWarning{}
	}

	switch {
	case t.LayoutErr != nil:
		out.Status = domain.DocumentStatusParseError
	case t.LikelyScanned:
		out.Status = domain.DocumentStatusLikelyScanned
	case t.Accepted == 0:
		out.Status = domain.DocumentStatusNoTableFound
	case (len(records) >= 1 && len(warnings) >= 1) || t.Rejected > 0:
		out.Status = domain.DocumentStatusPartial
	default:
		out.Status = domain.DocumentStatusOK
	}
	return out
}
