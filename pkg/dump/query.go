package dump

import (
	"slices"
	"strings"
	"time"

	"github.com/esfalsa/pallets/pkg/errors"
)

// Order is the direction records are sorted in.
type Order int

const (
	// Ascending sorts oldest first.
	Ascending Order = iota
	// Descending sorts newest first.
	Descending
)

// ParseOrder parses "asc"/"ascending" or "desc"/"descending".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, errors.Wrapf(errors.ErrInvalidOrder, "%q", s)
	}
}

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// Query selects and orders records. The zero value matches everything in ascending order.
type Query struct {
	// Kind restricts results to one kind; empty matches all kinds.
	Kind Kind
	// Start is the inclusive lower date bound; zero means unbounded.
	Start time.Time
	// End is the inclusive upper date bound; zero means unbounded.
	End time.Time
	// Order is the sort direction applied to (date, kind).
	Order Order
}

// Match reports whether r passes every filter of the query.
func (q Query) Match(r Record) bool {
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	if !q.Start.IsZero() && r.Date.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Date.After(q.End) {
		return false
	}
	return true
}

// Apply returns the matching records in query order. records is not modified.
func (q Query) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q.Match(r) {
			out = append(out, r)
		}
	}

	cmp := Record.Compare
	if q.Order == Descending {
		cmp = func(a, b Record) int { return b.Compare(a) }
	}
	slices.SortFunc(out, cmp)
	return out
}
