package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"concursos/internal/domain"
)

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleRecords() []domain.PositionRecord {
	return []domain.PositionRecord{
		{
			ExamID:      "2577",
			City:        "Sossêgo",
			Role:        "Agente Comunitário de Saúde",
			Requirement: "Ensino Médio completo",
			Salary:      decPtr("3036"),
			RawSalary:   "3.036,00",
			WeeklyHours: intPtr(40),
			Vacancies:   intPtr(4),
			ReserveRegister: true,
			Page:        3,
		},
		{
			ExamID:       "2577",
			City:         "Sossêgo",
			Role:         "Motorista",
			Requirement:  "CNH categoria D",
			RawSalary:    "a combinar",
			RawVacancies: "ver edital",
			Page:         4,
		},
		{
			ExamID:         "2600",
			City:           "Cuité",
			Role:           "Enfermeiro",
			Salary:         decPtr("4500"),
			ToBeDetermined: true,
			Page:           2,
		},
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords(sampleRecords()))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Cidade", rows[0][0])
	assert.Equal(t, "Salário", rows[0][3])

	// Parsed salary exports fixed with two decimals.
	assert.Equal(t, "3036.00", rows[1][3])
	assert.Equal(t, "40h", rows[1][4])
	assert.Equal(t, "4", rows[1][5])
	assert.Equal(t, "Sim", rows[1][6])

	// Unparsed values fall back to the raw cell text.
	assert.Equal(t, "a combinar", rows[2][3])
	assert.Equal(t, "ver edital", rows[2][5])
	assert.Equal(t, "Não", rows[2][6])

	assert.Equal(t, "a definir", rows[3][5])
	assert.Equal(t, "2600", rows[3][7])
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(positionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Cargo", rows[0][1])
	assert.Equal(t, "Agente Comunitário de Saúde", rows[1][1])

	summary, err := f.GetRows(citySummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	// Cities sort alphabetically in the summary.
	assert.Equal(t, []string{"Cuité", "1"}, summary[1][:2])
	assert.Equal(t, []string{"Sossêgo", "2"}, summary[2][:2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()))

	var env struct {
		TotalPositions int                     `json:"total_cargos"`
		TotalCities    int                     `json:"total_cidades"`
		GeneratedAt    time.Time               `json:"data_extracao"`
		Positions      []domain.PositionRecord `json:"cargos"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, 3, env.TotalPositions)
	assert.Equal(t, 2, env.TotalCities)
	assert.False(t, env.GeneratedAt.IsZero())
	require.Len(t, env.Positions, 3)
	assert.Equal(t, "Motorista", env.Positions[1].Role)
}

func TestWriteJSON_EmptyIsValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Contains(t, buf.String(), `"cargos": []`)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"concursos abertos", "concursos_abertos"},
		{"Prefeitura de Sossêgo/PB", "Prefeitura_de_Soss_go_PB"},
		{"a  b//c", "a_b_c"},
		{"___x___", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeFilename(tt.input), "input=%q", tt.input)
	}
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "concursos_"+today+".csv", BuildFilename("concursos", domain.ExportFormatCSV))
	assert.Equal(t, "concursos_"+today+".xlsx", BuildFilename("concursos", domain.ExportFormatExcel))
}
