package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Exam represents a single public-sector hiring announcement (concurso)
// discovered on the portal, together with the lifecycle of its bulletin PDF.
type Exam struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	PortalID        string         `db:"portal_id" json:"portal_id"`
	Name            string         `db:"name" json:"name"`
	URL             string         `db:"url" json:"url"`
	City            string         `db:"city" json:"city"`
	State           string         `db:"state" json:"state"`
	BulletinURL     string         `db:"bulletin_url" json:"bulletin_url"`
	S3Bucket        string         `db:"s3_bucket" json:"-"`
	S3Key           string         `db:"s3_key" json:"-"`
	Status          ExamStatus     `db:"status" json:"status"`
	DocumentStatus  DocumentStatus `db:"document_status" json:"document_status"`
	ExtractError    string         `db:"extract_error" json:"extract_error,omitempty"`
	ExtractAttempts int            `db:"extract_attempts" json:"extract_attempts"`
	ExtractedAt     *time.Time     `db:"extracted_at" json:"extracted_at,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// PositionRecord is the canonical output unit: one role offered within an
// exam, normalized into the fixed six-field schema. Raw strings are retained
// alongside parsed numerics for audit.
type PositionRecord struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	ExamID          string           `db:"exam_id" json:"exam_id"`
	City            string           `db:"city" json:"city"`
	Role            string           `db:"role" json:"role"`
	Requirement     string           `db:"requirement" json:"requirement"`
	Salary          *decimal.Decimal `db:"salary" json:"salary"`
	RawSalary       string           `db:"raw_salary" json:"raw_salary,omitempty"`
	WeeklyHours     *int             `db:"weekly_hours" json:"weekly_hours"`
	Vacancies       *int             `db:"vacancies" json:"vacancies"`
	RawVacancies    string           `db:"raw_vacancies" json:"raw_vacancies,omitempty"`
	ToBeDetermined  bool             `db:"to_be_determined" json:"to_be_determined"`
	ReserveRegister bool             `db:"reserve_register" json:"reserve_register"`
	Page            int              `db:"page" json:"page"`
	Row             int              `db:"row_num" json:"row"`
}

// RowWarning is a soft, non-fatal extraction problem attached to an outcome.
// It never aborts processing.
type RowWarning struct {
	Code    WarningCode    `json:"code"`
	Page    int            `json:"page"`
	Row     int            `json:"row"`
	Field   CanonicalField `json:"field,omitempty"`
	Raw     string         `json:"raw,omitempty"`
	Message string         `json:"message"`
}

// ExtractionOutcome is the per-document result of the pipeline: created once
// per bulletin, immutable after finalization, handed to the export stage.
type ExtractionOutcome struct {
	ExamID   string           `json:"exam_id"`
	Status   DocumentStatus   `json:"document_status"`
	Records  []PositionRecord `json:"records"`
	Warnings []RowWarning     `json:"warnings"`
}

// CrawlRun records one pass over the portal listing.
type CrawlRun struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Status      RunStatus  `db:"status" json:"status"`
	ExamsFound  int        `db:"exams_found" json:"exams_found"`
	ExamsQueued int        `db:"exams_queued" json:"exams_queued"`
	Error       string     `db:"error" json:"error,omitempty"`
	StartedAt   time.Time  `db:"started_at" json:"started_at"`
	FinishedAt  *time.Time `db:"finished_at" json:"finished_at,omitempty"`
}

// ExamListing is a single entry scraped from the portal's open-exams page.
type ExamListing struct {
	PortalID    string `json:"portal_id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	BulletinURL string `json:"bulletin_url,omitempty"`
}

// ExtractionStats aggregates crawl and extraction health across the whole
// portal.
type ExtractionStats struct {
	TotalExams        int `db:"total_exams" json:"total_exams"`
	ExamsQueued       int `db:"exams_queued" json:"exams_queued"`
	ExamsProcessing   int `db:"exams_processing" json:"exams_processing"`
	ExamsCompleted    int `db:"exams_completed" json:"exams_completed"`
	ExamsFailed       int `db:"exams_failed" json:"exams_failed"`
	DocsOK            int `db:"docs_ok" json:"docs_ok"`
	DocsPartial       int `db:"docs_partial" json:"docs_partial"`
	DocsNoTable       int `db:"docs_no_table" json:"docs_no_table"`
	DocsLikelyScanned int `db:"docs_likely_scanned" json:"docs_likely_scanned"`
	DocsParseError    int `db:"docs_parse_error" json:"docs_parse_error"`
	TotalPositions    int `db:"total_positions" json:"total_positions"`
	TotalVacancies    int `db:"total_vacancies" json:"total_vacancies"`
	DistinctCities    int `db:"distinct_cities" json:"distinct_cities"`
}

// RawCellGrid is one page's extracted text grid: rows of raw cell strings,
// in source reading order. Rows may be ragged; the detector pads them.
type RawCellGrid struct {
	Page int
	Rows [][]string
}

// TableCandidate is a contiguous row region of one or more pages tentatively
// identified as a data table, before schema validation. Every row has the
// same column count as the header row.
type TableCandidate struct {
	StartPage int
	EndPage   int
	StartRow  int
	HeaderRow int // index into Rows
	Rows      [][]string
	Caption   string // text of the nearest preceding caption line, if any
	OpenEnded bool   // ended at a page boundary without a separator row
}

// ColumnMapping maps canonical fields to raw column indexes for one
// candidate. A field absent from the header is simply not present.
type ColumnMapping struct {
	Columns map[CanonicalField]int
}

// Index returns the raw column index for field, or -1 if unmapped.
func (m ColumnMapping) Index(field CanonicalField) int {
	if m.Columns == nil {
		return -1
	}
	if idx, ok := m.Columns[field]; ok {
		return idx
	}
	return -1
}

// Has reports whether field resolved to a column.
func (m ColumnMapping) Has(field CanonicalField) bool {
	return m.Index(field) >= 0
}
