package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concursos/internal/domain"
)

// stubLayout feeds synthetic grids through the pipeline so the heuristics
// run without a PDF backend.
type stubLayout struct {
	pages *PageSet
	err   error
}

func (s *stubLayout) Extract(_ []byte) (*PageSet, error) { return s.pages, s.err }

func stubExtractor(pages *PageSet, err error) *Extractor {
	return NewExtractor(&stubLayout{pages: pages, err: err}, DefaultSynonyms())
}

func positionsHeader() []string {
	return []string{"Cargo", "Escolaridade", "Carga Horária", "Vagas", "Salário"}
}

func TestProcessDocument_LayoutErrorIsParseError(t *testing.T) {
	e := stubExtractor(nil, errors.New("wrap: damaged xref"))

	out := e.ProcessDocument("2577", []byte("%PDF-1.4 garbage"))
	assert.Equal(t, domain.DocumentStatusParseError, out.Status)
	assert.Empty(t, out.Records)
}

func TestProcessDocument_TextlessDocumentIsLikelyScanned(t *testing.T) {
	e := stubExtractor(&PageSet{PageCount: 3}, nil)

	out := e.ProcessDocument("2577", []byte("%PDF-1.4"))
	assert.Equal(t, domain.DocumentStatusLikelyScanned, out.Status)
	assert.Empty(t, out.Records)
}

func TestProcessDocument_CleanTableIsOK(t *testing.T) {
	pages := &PageSet{PageCount: 1, Grids: []domain.RawCellGrid{grid(1,
		[]string{"MUNICÍPIO DE SOSSÊGO/PB"},
		positionsHeader(),
		[]string{"Professor", "Ensino Superior", "20h", "02", "R$ 2.500,00"},
		[]string{"Motorista", "CNH categoria D", "40h", "01+CR", "1.800,00"},
	)}}

	out := stubExtractor(pages, nil).ProcessDocument("2577", nil)
	assert.Equal(t, domain.DocumentStatusOK, out.Status)
	assert.Empty(t, out.Warnings)
	require.Len(t, out.Records, 2)

	for _, rec := range out.Records {
		assert.Equal(t, "SOSSÊGO", rec.City)
		assert.NotEmpty(t, rec.Role)
		assert.NotNil(t, rec.Salary)
	}
	assert.True(t, out.Records[1].ReserveRegister)
}

func TestProcessDocument_TableSplitAcrossPages(t *testing.T) {
	pages := &PageSet{PageCount: 2, Grids: []domain.RawCellGrid{
		grid(1,
			[]string{"MUNICÍPIO DE CUITÉ/PB"},
			positionsHeader(),
			[]string{"Agente Administrativo", "Ensino Médio", "40h", "03", "1.518,00"},
		),
		grid(2,
			[]string{"Enfermeiro", "Ensino Superior", "40h", "02", "4.500,00"},
			[]string{"Fiscal de Tributos", "Ensino Médio", "40h", "01", "2.100,00"},
		),
	}}

	out := stubExtractor(pages, nil).ProcessDocument("2600", nil)
	assert.Equal(t, domain.DocumentStatusOK, out.Status)
	require.Len(t, out.Records, 3)
	for _, rec := range out.Records {
		assert.Equal(t, "CUITÉ", rec.City)
	}
}

func TestProcessDocument_RejectedCandidateMakesPartial(t *testing.T) {
	pages := &PageSet{PageCount: 1, Grids: []domain.RawCellGrid{grid(1,
		positionsHeader(),
		[]string{"Professor", "Ensino Superior", "20h", "02", "2.500,00"},
		[]string{"Motorista", "CNH categoria D", "40h", "01", "1.800,00"},
		[]string{""},
		[]string{"Nome", "Telefone", "Endereço"},
		[]string{"Fulano", "83 9999-0000", "Rua A, 10"},
	)}}

	out := stubExtractor(pages, nil).ProcessDocument("2577", nil)
	assert.Equal(t, domain.DocumentStatusPartial, out.Status)
	assert.Len(t, out.Records, 2)
}

func TestProcessDocument_EmptyRoleRowIsDroppedWithWarning(t *testing.T) {
	pages := &PageSet{PageCount: 1, Grids: []domain.RawCellGrid{grid(1,
		positionsHeader(),
		[]string{"Professor", "Ensino Superior", "20h", "02", "2.500,00"},
		[]string{"", "Ensino Médio", "40h", "01", "1.518,00"},
	)}}

	out := stubExtractor(pages, nil).ProcessDocument("2577", nil)
	assert.Equal(t, domain.DocumentStatusPartial, out.Status)
	require.Len(t, out.Records, 1)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, domain.WarningEmptyRole, out.Warnings[0].Code)
}

func TestProcessDocument_NoQualifyingTable(t *testing.T) {
	pages := &PageSet{PageCount: 1, Grids: []domain.RawCellGrid{grid(1,
		[]string{"EDITAL DE ABERTURA"},
		[]string{"O prefeito municipal, no uso de suas atribuições, torna público..."},
	)}}

	out := stubExtractor(pages, nil).ProcessDocument("2577", nil)
	assert.Equal(t, domain.DocumentStatusNoTableFound, out.Status)
	assert.Empty(t, out.Records)
}

func TestProcessDocument_Idempotent(t *testing.T) {
	pages := &PageSet{PageCount: 1, Grids: []domain.RawCellGrid{grid(1,
		[]string{"MUNICÍPIO DE SOSSÊGO/PB"},
		positionsHeader(),
		[]string{"Professor", "Ensino Superior", "20h", "a definir", "a combinar"},
		[]string{"Motorista", "CNH categoria D", "40h", "01", "1.800,00"},
	)}}
	e := stubExtractor(pages, nil)

	first := e.ProcessDocument("2577", nil)
	second := e.ProcessDocument("2577", nil)
	assert.Equal(t, first, second)
}
