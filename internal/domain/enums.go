package domain

// ExamStatus represents the queue lifecycle of an exam's bulletin.
type ExamStatus string

const (
	// ExamStatusDiscovered marks an exam seen on the portal whose bulletin
	// has not been archived yet. Discovered exams are never claimed by the
	// extraction worker.
	ExamStatusDiscovered ExamStatus = "discovered"
	ExamStatusQueued     ExamStatus = "queued"
	ExamStatusProcessing ExamStatus = "processing"
	ExamStatusCompleted  ExamStatus = "completed"
	ExamStatusFailed     ExamStatus = "failed"
)

// DocumentStatus is the per-bulletin extraction health signal. It is the
// primary externally observed outcome for a document and is deterministic
// for a given set of candidates, records and warnings.
type DocumentStatus string

const (
	DocumentStatusOK            DocumentStatus = "ok"
	DocumentStatusPartial       DocumentStatus = "partial"
	DocumentStatusNoTableFound  DocumentStatus = "no_table_found"
	DocumentStatusLikelyScanned DocumentStatus = "likely_scanned"
	DocumentStatusParseError    DocumentStatus = "parse_error"
)

// WarningCode classifies soft extraction problems attached to an outcome.
type WarningCode string

const (
	WarningDuplicateHeaderMatch WarningCode = "duplicate_header_match"
	WarningAmbiguousHeaderMatch WarningCode = "ambiguous_header_match"
	WarningEmptyRole            WarningCode = "empty_role"
	WarningUnparseableSalary    WarningCode = "unparseable_salary"
	WarningUnparseableVacancies WarningCode = "unparseable_vacancies"
	WarningUnparseableHours     WarningCode = "unparseable_hours"
)

// RunStatus represents the lifecycle of a crawl run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// CanonicalField names the six-column schema all bulletins are normalized
// into. These identifiers are the contract with the export stage and must
// not change.
type CanonicalField string

const (
	FieldCity        CanonicalField = "city"
	FieldRole        CanonicalField = "role"
	FieldRequirement CanonicalField = "requirement"
	FieldSalary      CanonicalField = "salary"
	FieldWeeklyHours CanonicalField = "weekly_hours"
	FieldVacancies   CanonicalField = "vacancies"
)

// CanonicalFields lists the schema in export column order.
var CanonicalFields = []CanonicalField{
	FieldCity, FieldRole, FieldRequirement, FieldSalary, FieldWeeklyHours, FieldVacancies,
}

// ExportFormat identifies a supported export representation.
type ExportFormat string

const (
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatExcel ExportFormat = "xlsx"
	ExportFormatJSON  ExportFormat = "json"
)
