package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"concursos/internal/domain"
)

func TestFinalize_StatusPrecedence(t *testing.T) {
	records := []domain.PositionRecord{{Role: "Motorista"}}
	warnings := []domain.RowWarning{{Code: domain.WarningUnparseableSalary}}

	tests := []struct {
		name     string
		tally    tally
		records  []domain.PositionRecord
		warnings []domain.RowWarning
		want     domain.DocumentStatus
	}{
		{
			name:  "layout error beats everything",
			tally: tally{LayoutErr: domain.ErrDocumentUnreadable, LikelyScanned: true, Accepted: 1},
			want:  domain.DocumentStatusParseError,
		},
		{
			name:  "wrapped layout error",
			tally: tally{LayoutErr: errors.New("page 3: bad xref")},
			want:  domain.DocumentStatusParseError,
		},
		{
			name:  "likely scanned beats no table",
			tally: tally{LikelyScanned: true},
			want:  domain.DocumentStatusLikelyScanned,
		},
		{
			name:  "no candidate accepted",
			tally: tally{Accepted: 0, Rejected: 2},
			want:  domain.DocumentStatusNoTableFound,
		},
		{
			name:     "records with warnings is partial",
			tally:    tally{Accepted: 1},
			records:  records,
			warnings: warnings,
			want:     domain.DocumentStatusPartial,
		},
		{
			name:    "rejected candidate alongside accepted one is partial",
			tally:   tally{Accepted: 1, Rejected: 1},
			records: records,
			want:    domain.DocumentStatusPartial,
		},
		{
			name:    "clean extraction is ok",
			tally:   tally{Accepted: 1},
			records: records,
			want:    domain.DocumentStatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Finalize("2577", tt.tally, tt.records, tt.warnings)
			assert.Equal(t, tt.want, out.Status)
			assert.Equal(t, "2577", out.ExamID)
		})
	}
}

func TestFinalize_NilSlicesBecomeEmpty(t *testing.T) {
	out := Finalize("2577", tally{}, nil, nil)
	assert.NotNil(t, out.Records)
	assert.NotNil(t, out.Warnings)
	assert.Empty(t, out.Records)
	assert.Empty(t, out.Warnings)
}
