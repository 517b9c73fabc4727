package dump

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultBaseURL is the archive host dumps are downloaded from.
const DefaultBaseURL = "https://www.nationstates.net"

// ContentType is the MIME type the archive serves dumps with.
const ContentType = "application/x-gzip"

const (
	canonicalSuffix = "-xml.gz"
	legacySuffix    = ".xml.gz"
)

var fileNamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(nations|regions)(-|\.)xml\.gz$`)

// FileName returns the canonical file name of a dump, e.g. 2023-05-01-nations-xml.gz.
func FileName(kind Kind, date time.Time) string {
	return date.Format(DateLayout) + "-" + kind.String() + canonicalSuffix
}

// LegacyFileName returns the file name older releases stored dumps under,
// e.g. 2023-05-01-nations.xml.gz. It is recognized but never written.
func LegacyFileName(kind Kind, date time.Time) string {
	return date.Format(DateLayout) + "-" + kind.String() + legacySuffix
}

// Path returns the canonical location of a dump inside dir.
func Path(dir string, kind Kind, date time.Time) string {
	return filepath.Join(dir, FileName(kind, date))
}

// Paths returns every location a dump may occupy inside dir, canonical first.
func Paths(dir string, kind Kind, date time.Time) []string {
	return []string{
		filepath.Join(dir, FileName(kind, date)),
		filepath.Join(dir, LegacyFileName(kind, date)),
	}
}

// URL returns the archive URL of a dump below baseURL.
func URL(baseURL string, kind Kind, date time.Time) string {
	return fmt.Sprintf("%s/archive/%s/%04d-%02d-%02d-%s-xml.gz",
		strings.TrimRight(baseURL, "/"), kind, date.Year(), int(date.Month()), date.Day(), kind)
}

// ParseFileName is the inverse of FileName and LegacyFileName. It reports
// false for any name that is not a dump.
func ParseFileName(name string) (Record, bool) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return Record{}, false
	}

	date, err := ParseDate(m[1])
	if err != nil {
		return Record{}, false
	}

	kind := Kind(m[2])
	if !kind.Valid() {
		return Record{}, false
	}

	return Record{Kind: kind, Date: date}, true
}
