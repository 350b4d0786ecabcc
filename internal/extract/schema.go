package extract

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"concursos/internal/domain"
)

// SynonymTable maps each canonical field to the header tokens that identify
// it. Matching is declarative: supporting a new bulletin layout is a data
// change here, not a code change.
type SynonymTable map[domain.CanonicalField][]string

// DefaultSynonyms returns the header vocabulary observed across the portal's
// bulletins. Tokens are compared case- and accent-insensitively.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		domain.FieldCity:        {"cidade", "municipio", "localidade", "local de trabalho"},
		domain.FieldRole:        {"cargo", "funcao", "emprego publico", "emprego"},
		domain.FieldRequirement: {"escolaridade", "requisito", "habilitacao", "formacao"},
		domain.FieldSalary:      {"salario", "vencimento", "remuneracao", "valor inicial", "subsidio"},
		domain.FieldWeeklyHours: {"carga horaria", "chs", "jornada", "horas semanais"},
		domain.FieldVacancies:   {"vagas", "vaga", "quantidade"},
	}
}

// mappingOrder fixes the tie-break order when one header cell matches more
// than one canonical field.
var mappingOrder = []domain.CanonicalField{
	domain.FieldRole,
	domain.FieldRequirement,
	domain.FieldSalary,
	domain.FieldWeeklyHours,
	domain.FieldVacancies,
	domain.FieldCity,
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldHeader lowercases a header cell and strips diacritics so that
// "Função" and "FUNCAO" compare equal.
func foldHeader(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// MapColumns fuzzy-matches a candidate's header row against the synonym
// table. It returns nil when the candidate is not a position table: the
// required-field invariant is role plus at least one of salary/vacancies.
// A nil return is a silent discard, not an error; legends and footnote
// tables are expected noise.
func MapColumns(cand domain.TableCandidate, syn SynonymTable) (*domain.ColumnMapping, []domain.RowWarning) {
	header := cand.Rows[cand.HeaderRow]
	mapping := domain.ColumnMapping{Columns: make(map[domain.CanonicalField]int)}
	var warnings []domain.RowWarning

	for col, cell := range header {
		folded := foldHeader(cell)
		if folded == "" {
			continue
		}

		field, ambiguous := matchField(folded, syn)
		if field == "" {
			continue
		}
		if ambiguous {
			warnings = append(warnings, domain.RowWarning{
				Code:    domain.WarningAmbiguousHeaderMatch,
				Page:    cand.StartPage,
				Row:     cand.StartRow + cand.HeaderRow,
				Field:   field,
				Raw:     cell,
				Message: fmt.Sprintf("header %q matches more than one field, mapped to %s", cell, field),
			})
		}

		if _, taken := mapping.Columns[field]; taken {
			// Leftmost column wins; the duplicate is ignored.
			warnings = append(warnings, domain.RowWarning{
				Code:    domain.WarningDuplicateHeaderMatch,
				Page:    cand.StartPage,
				Row:     cand.StartRow + cand.HeaderRow,
				Field:   field,
				Raw:     cell,
				Message: fmt.Sprintf("header %q duplicates field %s, keeping leftmost column", cell, field),
			})
			continue
		}
		mapping.Columns[field] = col
	}

	if !mapping.Has(domain.FieldRole) {
		return nil, nil
	}
	if !mapping.Has(domain.FieldSalary) && !mapping.Has(domain.FieldVacancies) {
		return nil, nil
	}
	return &mapping, warnings
}

// matchField finds the canonical field whose synonyms match a folded header
// cell. Substring containment is tried first; a fuzzy subsequence match is
// the fallback for headers mangled by the text layer ("C arg o"). The second
// return is true when more than one field matched and the tie was broken by
// mappingOrder.
func matchField(folded string, syn SynonymTable) (domain.CanonicalField, bool) {
	var matches []domain.CanonicalField
	for _, field := range mappingOrder {
		if tokensMatch(folded, syn[field]) {
			matches = append(matches, field)
		}
	}
	switch len(matches) {
	case 0:
		return "", false
	case 1:
		return matches[0], false
	default:
		return matches[0], true
	}
}

func tokensMatch(folded string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(folded, tok) {
			return true
		}
		// Fuzzy fallback for spaced-out or slightly corrupted headers.
		// Short tokens are excluded: subsequence matching on them is noise.
		if len(tok) >= 5 && fuzzy.MatchNormalizedFold(tok, folded) {
			compact := strings.ReplaceAll(folded, " ", "")
			if fuzzy.RankMatchNormalizedFold(tok, compact) >= 0 && len(compact) <= len(tok)+3 {
				return true
			}
		}
	}
	return false
}
