package cache

import (
	"fmt"
	"strings"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/dump"
)

// Operation renders cache manager results for people.
type Operation struct {
	manager Manager
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager Manager) *Operation {
	return &Operation{
		manager: manager,
	}
}

// GetInfo returns a human-readable summary of the dumps directory.
func (op *Operation) GetInfo() (string, error) {
	logger.Debug("Collecting dump directory information", logger.Fields{"directory": op.manager.Directory()})

	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("failed to get cache info: %w", err)
	}

	oldest, newest := "-", "-"
	if !info.Oldest.IsZero() {
		oldest = info.Oldest.Format(dump.DateLayout)
		newest = info.Newest.Format(dump.DateLayout)
	}

	var kinds strings.Builder
	for _, kind := range dump.Kinds() {
		fmt.Fprintf(&kinds, "\n  %-13s %d", titleKind(kind)+":", info.ByKind[kind])
	}

	return fmt.Sprintf(`Dump Directory Information:
  Directory:    %s
  Total Size:   %s
  Dumps:        %d%s
  Oldest:       %s
  Newest:       %s`,
		info.Directory,
		formatBytes(info.TotalSize),
		info.Dumps,
		kinds.String(),
		oldest,
		newest,
	), nil
}

// GetDirectory returns the dumps directory path.
func (op *Operation) GetDirectory() string {
	return op.manager.Directory()
}

func titleKind(k dump.Kind) string {
	s := k.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
