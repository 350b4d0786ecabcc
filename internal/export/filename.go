package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"concursos/internal/domain"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a base name for use as a filename or in a
// Content-Disposition header. Replaces non-alphanumeric chars (except - _)
// with _, collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized, dated filename for one export format.
// Format: {sanitized_base}_{YYYY-MM-DD}.{ext}
func BuildFilename(base string, format domain.ExportFormat) string {
	sanitized := SanitizeFilename(base)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, format)
}
