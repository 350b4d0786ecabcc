package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExamNotFound       = errors.New("exam not found")
	ErrRunNotFound        = errors.New("crawl run not found")
	ErrRunAlreadyActive   = errors.New("a crawl run is already in progress")
	ErrNotPDF             = errors.New("downloaded content is not a PDF")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrFetchFailed        = errors.New("bulletin download failed")
	ErrUploadFailed       = errors.New("file upload to storage failed")
	ErrUnsupportedFormat  = errors.New("unsupported export format")

	// ErrDocumentUnreadable marks container-level PDF corruption. It is
	// fatal for that document only and surfaces as DocumentStatusParseError.
	ErrDocumentUnreadable = errors.New("document container is unreadable")
)
