// Package dump models the NationStates daily data dumps: their kinds, the
// (kind, date) records that identify them, the naming scheme that maps a
// record to a local file name and a remote URL, and the query engine used to
// filter and order inventories of records.
package dump

import (
	"strings"

	"github.com/esfalsa/pallets/pkg/errors"
)

// Kind is the category of a dump.
type Kind string

const (
	// Regions is the daily regions dump.
	Regions Kind = "regions"
	// Nations is the daily nations dump.
	Nations Kind = "nations"
)

// kindRank is the fixed total order between kinds used as the sort tiebreak.
var kindRank = map[Kind]int{
	Regions: 0,
	Nations: 1,
}

// Kinds returns every kind in ascending order.
func Kinds() []Kind {
	return []Kind{Regions, Nations}
}

// ParseKind parses a kind token, ignoring case and surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", errors.Wrapf(errors.ErrInvalidKind, "%q (want regions or nations)", s)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindRank[k]
	return ok
}

// String returns the lowercase plural token used in file names and URLs.
func (k Kind) String() string {
	return string(k)
}

// Compare returns -1, 0 or +1 depending on whether k sorts before, with or after other.
func (k Kind) Compare(other Kind) int {
	a, b := kindRank[k], kindRank[other]
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
