package download

import (
	"context"
	"time"

	"github.com/esfalsa/pallets/pkg/dump"
)

// Manager defines the interface for retrieving dumps from the archive.
type Manager interface {
	// Fetch downloads one dump into req.Dir under its canonical name and
	// returns the absolute local file path.
	Fetch(ctx context.Context, req Request) (string, error)
}

// Request describes one dump to download.
type Request struct {
	Kind  dump.Kind
	Date  time.Time
	Dir   string // destination directory (the dumps directory). Must be absolute.
	Force bool   // overwrite a dump that is already present
}
