package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concursos/internal/domain"
)

func grid(page int, rows ...[]string) domain.RawCellGrid {
	return domain.RawCellGrid{Page: page, Rows: rows}
}

func TestDetectCandidates_SimpleTable(t *testing.T) {
	g := grid(1,
		[]string{"EDITAL DE ABERTURA 001/2025"},
		[]string{"Cargo", "Escolaridade", "CHS", "Vagas", "Salário"},
		[]string{"Agente de Saúde", "Ensino Médio", "40h", "04+CR", "3.036,00"},
		[]string{"Enfermeiro", "Ensino Superior", "40h", "02", "4.500,00"},
		[]string{""},
	)

	cands := DetectCandidates(g)
	require.Len(t, cands, 1)
	assert.Equal(t, 1, cands[0].StartRow)
	assert.Len(t, cands[0].Rows, 3)
	assert.False(t, cands[0].OpenEnded)
	assert.Equal(t, "EDITAL DE ABERTURA 001/2025", cands[0].Caption)
}

func TestDetectCandidates_ShortRowsArePaddedNotTruncated(t *testing.T) {
	g := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Motorista", "CNH categoria D", "02"},
	)

	cands := DetectCandidates(g)
	require.Len(t, cands, 1)
	for _, row := range cands[0].Rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, "", cands[0].Rows[1][3])
}

func TestDetectCandidates_EndsOnSeparatorRow(t *testing.T) {
	g := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Motorista", "CNH D", "02", "1.800,00"},
		[]string{"Nota explicativa"},
		[]string{"Professor", "Licenciatura", "01", "3.200,00"},
	)

	cands := DetectCandidates(g)
	require.Len(t, cands, 1)
	assert.Len(t, cands[0].Rows, 2)
	assert.False(t, cands[0].OpenEnded)
}

func TestDetectCandidates_EndsOnColumnCountJump(t *testing.T) {
	g := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Motorista", "CNH D", "02", "1.800,00"},
		[]string{"a", "b"},
	)

	cands := DetectCandidates(g)
	require.Len(t, cands, 1)
	assert.Len(t, cands[0].Rows, 2)
}

func TestDetectCandidates_HeaderNeedsThreeCells(t *testing.T) {
	g := grid(1,
		[]string{"Nome", "Telefone"},
		[]string{"Fulano", "9999-0000"},
	)

	assert.Empty(t, DetectCandidates(g))
}

func TestDetectCandidates_SingleRowIsNotATable(t *testing.T) {
	g := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{""},
	)

	assert.Empty(t, DetectCandidates(g))
}

func TestDetectCandidates_NoQualifyingRows(t *testing.T) {
	g := grid(1,
		[]string{"Prefeitura Municipal"},
		[]string{"Aviso de retificação"},
	)

	assert.Empty(t, DetectCandidates(g))
}

func TestDetectCandidates_OpenEndedAtPageEnd(t *testing.T) {
	g := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Motorista", "CNH D", "02", "1.800,00"},
	)

	cands := DetectCandidates(g)
	require.Len(t, cands, 1)
	assert.True(t, cands[0].OpenEnded)
}

func TestMergeContinuation_SplitAtPageBoundary(t *testing.T) {
	page1 := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Motorista", "CNH D", "02", "1.800,00"},
	)
	page2 := grid(2,
		[]string{"Professor", "Licenciatura", "01", "3.200,00"},
		[]string{"Enfermeiro", "Ensino Superior", "02", "4.500,00"},
		[]string{""},
	)

	prev := DetectCandidates(page1)
	next := DetectCandidates(page2)
	require.Len(t, prev, 1)
	require.Len(t, next, 1)

	merged, ok := MergeContinuation(prev[0], next[0])
	require.True(t, ok)
	assert.Len(t, merged.Rows, 4)
	assert.Equal(t, 1, merged.StartPage)
	assert.Equal(t, 2, merged.EndPage)
	assert.False(t, merged.OpenEnded)
}

func TestMergeContinuation_RepeatedHeaderIsDropped(t *testing.T) {
	page1 := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Motorista", "CNH D", "02", "1.800,00"},
	)
	page2 := grid(2,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Professor", "Licenciatura", "01", "3.200,00"},
		[]string{""},
	)

	merged, ok := MergeContinuation(DetectCandidates(page1)[0], DetectCandidates(page2)[0])
	require.True(t, ok)
	assert.Len(t, merged.Rows, 3)
	assert.Equal(t, "Professor", merged.Rows[2][0])
}

func TestMergeContinuation_SeparatorOnPreviousPageBlocksMerge(t *testing.T) {
	page1 := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário"},
		[]string{"Motorista", "CNH D", "02", "1.800,00"},
		[]string{""},
	)
	page2 := grid(2,
		[]string{"Professor", "Licenciatura", "01", "3.200,00"},
		[]string{"Enfermeiro", "Superior", "02", "4.500,00"},
	)

	prev := DetectCandidates(page1)
	next := DetectCandidates(page2)
	require.Len(t, prev, 1)
	require.Len(t, next, 1)

	_, ok := MergeContinuation(prev[0], next[0])
	assert.False(t, ok)
}

func TestMergeContinuation_ColumnCountMismatchBlocksMerge(t *testing.T) {
	page1 := grid(1,
		[]string{"Cargo", "Requisito", "Vagas", "Salário", "CHS", "Taxa"},
		[]string{"Motorista", "CNH D", "02", "1.800,00", "40h", "80,00"},
	)
	page2 := grid(2,
		[]string{"Professor", "Licenciatura", "01", "3.200,00"},
		[]string{"Enfermeiro", "Superior", "02", "4.500,00"},
	)

	_, ok := MergeContinuation(DetectCandidates(page1)[0], DetectCandidates(page2)[0])
	assert.False(t, ok)
}

func TestMergeContinuation_CaptionOnNextPageBlocksMerge(t *testing.T) {
	prev := domain.TableCandidate{
		StartPage: 1, EndPage: 1, OpenEnded: true,
		Rows: [][]string{
			{"Cargo", "Requisito", "Vagas", "Salário"},
			{"Motorista", "CNH D", "02", "1.800,00"},
		},
	}
	next := domain.TableCandidate{
		StartPage: 2, EndPage: 2, StartRow: 0, Caption: "ANEXO II",
		Rows: [][]string{
			{"Professor", "Licenciatura", "01", "3.200,00"},
			{"Enfermeiro", "Superior", "02", "4.500,00"},
		},
	}

	_, ok := MergeContinuation(prev, next)
	assert.False(t, ok)
}
