package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concursos/internal/domain"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"R$ 980", "980"},
		{"R$ 3.036,00", "3036"},
		{"1.518", "1518"},
		{"2.547.312,89", "2547312.89"},
		{"1518,00", "1518"},
	}
	for _, tt := range tests {
		got := ParseSalary(tt.raw)
		require.NotNil(t, got, "raw=%q", tt.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"raw=%q got=%s want=%s", tt.raw, got, tt.want)
	}
}

func TestParseSalary_Unparseable(t *testing.T) {
	for _, raw := range []string{"a combinar", "", "-", "conforme tabela"} {
		assert.Nil(t, ParseSalary(raw), "raw=%q", raw)
	}
}

func TestParseVacancies(t *testing.T) {
	five, _, _ := ParseVacancies("5")
	require.NotNil(t, five)
	assert.Equal(t, 5, *five)

	zero, tbd, _ := ParseVacancies("vagas: 0")
	require.NotNil(t, zero)
	assert.Equal(t, 0, *zero)
	assert.False(t, tbd)

	n, tbd, reserve := ParseVacancies("03+CR")
	require.NotNil(t, n)
	assert.Equal(t, 3, *n)
	assert.False(t, tbd)
	assert.True(t, reserve)
}

func TestParseVacancies_ToBeDetermined(t *testing.T) {
	n, tbd, _ := ParseVacancies("a definir")
	assert.Nil(t, n)
	assert.True(t, tbd)

	n, tbd, reserve := ParseVacancies("CR")
	assert.Nil(t, n)
	assert.True(t, tbd)
	assert.True(t, reserve)
}

func TestParseVacancies_Junk(t *testing.T) {
	n, tbd, reserve := ParseVacancies("ver anexo")
	assert.Nil(t, n)
	assert.False(t, tbd)
	assert.False(t, reserve)
}

func TestParseWeeklyHours(t *testing.T) {
	for raw, want := range map[string]int{"40h": 40, "30 h": 30, "44 horas": 44, "20": 20} {
		got := ParseWeeklyHours(raw)
		require.NotNil(t, got, "raw=%q", raw)
		assert.Equal(t, want, *got)
	}
	assert.Nil(t, ParseWeeklyHours("integral"))
	assert.Nil(t, ParseWeeklyHours(""))
	assert.Nil(t, ParseWeeklyHours("999"))
}

func TestCleanRequirement(t *testing.T) {
	assert.Equal(t,
		"Ensino Superior completo e habilitação legal",
		CleanRequirement("Ensino Superior completo\ne habilita-\nção legal"))
	assert.Equal(t, "Ensino Médio", CleanRequirement("  Ensino \n\n Médio "))
}

func TestCleanRequirement_HyphenBeforeUppercaseIsKept(t *testing.T) {
	// A hyphen followed by an uppercase continuation is a real compound,
	// not a line wrap.
	assert.Equal(t, "Pós- Graduação", CleanRequirement("Pós-\nGraduação"))
}

func TestCaptionCity(t *testing.T) {
	city, state := CaptionCity("MUNICÍPIO DE SOSSÊGO/PB")
	assert.Equal(t, "SOSSÊGO", city)
	assert.Equal(t, "PB", state)

	city, state = CaptionCity("São Paulo/SP")
	assert.Equal(t, "São Paulo", city)
	assert.Equal(t, "SP", state)

	city, state = CaptionCity("ANEXO I - QUADRO DE CARGOS")
	assert.Equal(t, "", city)
	assert.Equal(t, "", state)
}

func posMapping() domain.ColumnMapping {
	return domain.ColumnMapping{Columns: map[domain.CanonicalField]int{
		domain.FieldRole:        0,
		domain.FieldRequirement: 1,
		domain.FieldWeeklyHours: 2,
		domain.FieldVacancies:   3,
		domain.FieldSalary:      4,
	}}
}

func TestNormalizeRow_FullRow(t *testing.T) {
	row := []string{"Enfermeiro PSF", "Ensino Superior e habilita-\nção legal", "40h", "02+CR", "R$ 4.500,00"}

	rec, warnings := NormalizeRow(row, posMapping(), "2577", "Sossêgo", 3, 7)
	assert.Empty(t, warnings)
	assert.Equal(t, "2577", rec.ExamID)
	assert.Equal(t, "Enfermeiro PSF", rec.Role)
	assert.Equal(t, "Ensino Superior e habilitação legal", rec.Requirement)
	assert.Equal(t, "Sossêgo", rec.City)
	require.NotNil(t, rec.Salary)
	assert.True(t, rec.Salary.Equal(decimal.RequireFromString("4500")))
	assert.Equal(t, "R$ 4.500,00", rec.RawSalary)
	require.NotNil(t, rec.WeeklyHours)
	assert.Equal(t, 40, *rec.WeeklyHours)
	require.NotNil(t, rec.Vacancies)
	assert.Equal(t, 2, *rec.Vacancies)
	assert.True(t, rec.ReserveRegister)
	assert.Equal(t, 3, rec.Page)
	assert.Equal(t, 7, rec.Row)
}

func TestNormalizeRow_UnparseableFieldsDegradeToNil(t *testing.T) {
	row := []string{"Motorista", "CNH D", "integral", "ver anexo", "a combinar"}

	rec, warnings := NormalizeRow(row, posMapping(), "2577", "", 1, 2)
	assert.Nil(t, rec.Salary)
	assert.Equal(t, "a combinar", rec.RawSalary)
	assert.Nil(t, rec.Vacancies)
	assert.Equal(t, "ver anexo", rec.RawVacancies)
	assert.Nil(t, rec.WeeklyHours)

	codes := make(map[domain.WarningCode]bool)
	for _, w := range warnings {
		codes[w.Code] = true
	}
	assert.True(t, codes[domain.WarningUnparseableSalary])
	assert.True(t, codes[domain.WarningUnparseableVacancies])
	assert.True(t, codes[domain.WarningUnparseableHours])
}

func TestNormalizeRow_ToBeDeterminedIsNotAWarning(t *testing.T) {
	row := []string{"Assistente", "Ensino Médio", "40h", "a definir", "1.518,00"}

	rec, warnings := NormalizeRow(row, posMapping(), "2577", "", 1, 2)
	assert.Empty(t, warnings)
	assert.Nil(t, rec.Vacancies)
	assert.True(t, rec.ToBeDetermined)
}

func TestNormalizeRow_CityColumnBeatsInheritance(t *testing.T) {
	m := posMapping()
	m.Columns[domain.FieldCity] = 5
	row := []string{"Motorista", "CNH D", "40h", "01", "1.800,00", "Cuité/PB"}

	rec, _ := NormalizeRow(row, m, "2577", "Sossêgo", 1, 1)
	assert.Equal(t, "Cuité/PB", rec.City)
}

func TestNormalizeRow_ShortRowIsSafe(t *testing.T) {
	rec, _ := NormalizeRow([]string{"Motorista"}, posMapping(), "2577", "", 1, 1)
	assert.Equal(t, "Motorista", rec.Role)
	assert.Nil(t, rec.Salary)
	assert.Equal(t, "", rec.RawSalary)
}
