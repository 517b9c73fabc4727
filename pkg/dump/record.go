package dump

import (
	"time"

	"github.com/esfalsa/pallets/pkg/errors"
)

// DateLayout is the layout of dates inside dump file names and URLs.
const DateLayout = "2006-01-02"

// Record identifies one dump by kind and calendar date.
type Record struct {
	Kind Kind      `json:"kind" yaml:"kind"`
	Date time.Time `json:"date" yaml:"date"`
}

// NewRecord returns a record with its date normalized to a calendar date.
func NewRecord(kind Kind, date time.Time) Record {
	return Record{Kind: kind, Date: NewDate(date.Year(), date.Month(), date.Day())}
}

// NewDate returns midnight UTC of the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date. Impossible dates such as 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrInvalidDate, "%q: %v", s, err)
	}
	return t, nil
}

// Compare orders records by date, then by kind.
func (r Record) Compare(other Record) int {
	if c := r.Date.Compare(other.Date); c != 0 {
		return c
	}
	return r.Kind.Compare(other.Kind)
}

// Equal reports whether both records name the same dump.
func (r Record) Equal(other Record) bool {
	return r.Kind == other.Kind && r.Date.Equal(other.Date)
}

// FileName returns the canonical local file name of the record.
func (r Record) FileName() string {
	return FileName(r.Kind, r.Date)
}

func (r Record) String() string {
	return r.Date.Format(DateLayout) + " " + r.Kind.String()
}
