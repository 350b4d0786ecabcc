package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"concursos/internal/domain"
)

// toBeDetermined is the portal vocabulary meaning a vacancy count exists but
// has not been published. It maps to a null count with a distinct flag,
// never to zero.
var toBeDetermined = []string{
	"a definir", "a ser definido", "a ser definida", "aguardando", "conforme edital",
}

// reserveOnly marks rows offering only a reserve register (cadastro de
// reserva) with no immediate vacancies.
var reserveOnly = []string{"cr", "cadastro de reserva", "cadastro reserva"}

var (
	salaryRe        = regexp.MustCompile(`\d[\d.,]*`)
	vacancyPlusCRRe = regexp.MustCompile(`(?i)(\d+)\s*\+\s*cr`)
	intRe           = regexp.MustCompile(`\d+`)
	hoursRe         = regexp.MustCompile(`(\d+)\s*(?:h|horas?)?`)
	hyphenWrapRe    = regexp.MustCompile(`(\p{L})-\s*\n\s*(\p{Ll})`)
	cityStateRe     = regexp.MustCompile(`(?:(?i:munic[ií]pio\s+de)\s+)?([\p{L}][\p{L}\s]*?)\s*/\s*([A-Z]{2})\b`)
)

// ParseSalary parses a monetary amount in either Brazilian ("1.234,56") or
// anglo ("1,234.56") notation. The final separator followed by exactly two
// digits is the decimal mark; all other separators are thousands grouping.
// Unparseable input returns nil; the caller retains the raw string.
func ParseSalary(raw string) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	token := salaryRe.FindString(s)
	if token == "" {
		return nil
	}

	lastSep := strings.LastIndexAny(token, ".,")
	var normalized string
	if lastSep >= 0 && len(token)-lastSep-1 == 2 {
		intPart := strings.Map(dropSeparators, token[:lastSep])
		normalized = intPart + "." + token[lastSep+1:]
	} else {
		normalized = strings.Map(dropSeparators, token)
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil
	}
	return &d
}

func dropSeparators(r rune) rune {
	if r == '.' || r == ',' {
		return -1
	}
	return r
}

// ParseVacancies parses a vacancy cell. Returns the count (nil when
// unknown), whether the count is "to be determined", and whether the row
// offers a reserve register. "03+CR" yields 3 with the reserve flag;
// "vagas: 0" yields an explicit zero, which is distinct from nil.
func ParseVacancies(raw string) (count *int, tbd bool, reserve bool) {
	folded := foldHeader(raw)
	if folded == "" {
		return nil, false, false
	}

	for _, v := range reserveOnly {
		if folded == v {
			return nil, true, true
		}
	}
	for _, v := range toBeDetermined {
		if strings.Contains(folded, v) {
			return nil, true, strings.Contains(folded, "cr") || strings.Contains(folded, "reserva")
		}
	}

	if m := vacancyPlusCRRe.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return &n, false, true
		}
	}
	if m := intRe.FindString(raw); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil && n >= 0 {
			return &n, false, strings.Contains(folded, "cr") || strings.Contains(folded, "reserva")
		}
	}
	return nil, false, false
}

// ParseWeeklyHours parses a weekly workload cell ("40h", "30 horas", "44").
// Nil when absent or nonsensical.
func ParseWeeklyHours(raw string) *int {
	m := hoursRe.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 || n > 168 {
		return nil
	}
	return &n
}

// CleanRequirement flattens multi-line requirement text: hyphenated
// line-wrap breaks (letter, hyphen, newline, lowercase continuation) are
// rejoined without the hyphen, remaining line breaks become single spaces,
// and interior whitespace is collapsed.
func CleanRequirement(raw string) string {
	s := hyphenWrapRe.ReplaceAllString(raw, "$1$2")
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// CaptionCity extracts "Cidade/UF" from a table caption or announcement
// name ("MUNICÍPIO DE SOSSÊGO/PB"). Empty strings when no city is present.
func CaptionCity(caption string) (city, state string) {
	m := cityStateRe.FindStringSubmatch(caption)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), m[2]
}

// cellAt returns the trimmed cell for a mapped field, or "" when the field
// did not resolve or the row is short.
func cellAt(row []string, m domain.ColumnMapping, field domain.CanonicalField) string {
	idx := m.Index(field)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// NormalizeRow cleans and type-converts one mapped data row into a
// PositionRecord. It never fails: unparseable numeric fields degrade to nil
// with the raw text preserved and a warning attached. inheritedCity is the
// most recently seen caption-derived city, applied when the table has no
// city column. A record whose role is empty must not be emitted as valid;
// the caller redirects it to the warnings list.
func NormalizeRow(row []string, m domain.ColumnMapping, examID, inheritedCity string, page, rowIdx int) (domain.PositionRecord, []domain.RowWarning) {
	var warnings []domain.RowWarning

	rec := domain.PositionRecord{
		ExamID:      examID,
		Role:        CleanRequirement(cellAt(row, m, domain.FieldRole)),
		Requirement: CleanRequirement(cellAt(row, m, domain.FieldRequirement)),
		Page:        page,
		Row:         rowIdx,
	}

	rec.City = CleanRequirement(cellAt(row, m, domain.FieldCity))
	if !m.Has(domain.FieldCity) || rec.City == "" {
		rec.City = inheritedCity
	}

	if rawSalary := cellAt(row, m, domain.FieldSalary); rawSalary != "" {
		rec.RawSalary = rawSalary
		rec.Salary = ParseSalary(rawSalary)
		if rec.Salary == nil {
			warnings = append(warnings, domain.RowWarning{
				Code: domain.WarningUnparseableSalary, Page: page, Row: rowIdx,
				Field: domain.FieldSalary, Raw: rawSalary,
				Message: "salary not parseable, raw value retained",
			})
		}
	}

	if rawVac := cellAt(row, m, domain.FieldVacancies); rawVac != "" {
		rec.RawVacancies = rawVac
		var count *int
		count, rec.ToBeDetermined, rec.ReserveRegister = ParseVacancies(rawVac)
		rec.Vacancies = count
		if count == nil && !rec.ToBeDetermined {
			warnings = append(warnings, domain.RowWarning{
				Code: domain.WarningUnparseableVacancies, Page: page, Row: rowIdx,
				Field: domain.FieldVacancies, Raw: rawVac,
				Message: "vacancy count not parseable, raw value retained",
			})
		}
	}

	if rawHours := cellAt(row, m, domain.FieldWeeklyHours); rawHours != "" {
		rec.WeeklyHours = ParseWeeklyHours(rawHours)
		if rec.WeeklyHours == nil {
			warnings = append(warnings, domain.RowWarning{
				Code: domain.WarningUnparseableHours, Page: page, Row: rowIdx,
				Field: domain.FieldWeeklyHours, Raw: rawHours,
				Message: "weekly workload not parseable",
			})
		}
	}

	return rec, warnings
}
