package cache

import (
	"time"

	"github.com/esfalsa/pallets/pkg/dump"
)

// Manager defines the interface for operations on the dumps directory.
type Manager interface {
	Directory() string
	Scan() ([]dump.Record, error)
	List(query dump.Query) ([]dump.Record, error)
	Has(kind dump.Kind, date time.Time) bool
	Locate(kind dump.Kind, date time.Time) (string, error)
	Delete(kind dump.Kind, date time.Time) error
	GetInfo() (*Info, error)
}

// Info represents dumps directory statistics.
type Info struct {
	Directory string
	TotalSize int64
	Dumps     int
	ByKind    map[dump.Kind]int
	Oldest    time.Time
	Newest    time.Time
}
