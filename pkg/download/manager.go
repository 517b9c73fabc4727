package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/dump"
	pkgerrors "github.com/esfalsa/pallets/pkg/errors"
	"github.com/esfalsa/pallets/pkg/fsutil"
)

// ManagerImpl downloads dumps over HTTP, one request per call. It never
// retries and never resumes.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
	baseURL   string
}

// NewManager creates a new download manager with the given timeout and user agent.
// An empty baseURL selects the public archive.
func NewManager(timeout time.Duration, userAgent, baseURL string) *ManagerImpl {
	if userAgent == "" {
		userAgent = Product
	}
	if baseURL == "" {
		baseURL = dump.DefaultBaseURL
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		baseURL:   baseURL,
	}
}

// Fetch downloads a single dump and returns the path it was stored at.
// Nothing is written at the destination unless the archive answered 200 with
// the gzip content type.
func (m *ManagerImpl) Fetch(ctx context.Context, req Request) (string, error) {
	if req.Dir == "" || !filepath.IsAbs(req.Dir) {
		return "", fmt.Errorf("download dir must be absolute: %q: %w", req.Dir, pkgerrors.ErrDownloadFailed)
	}
	if !req.Kind.Valid() {
		return "", fmt.Errorf("%w: %q", pkgerrors.ErrInvalidKind, req.Kind)
	}
	date := dump.NewDate(req.Date.Year(), req.Date.Month(), req.Date.Day())
	absPath := dump.Path(req.Dir, req.Kind, date)

	if !req.Force {
		for _, p := range dump.Paths(req.Dir, req.Kind, date) {
			if fsutil.IsEntry(p) {
				return "", fmt.Errorf("%w: %s", pkgerrors.ErrDumpExists, p)
			}
		}
	}

	if err := fsutil.EnsureDir(req.Dir); err != nil {
		return "", fmt.Errorf("%w %s: %w", pkgerrors.ErrDumpsDirectory, req.Dir, err)
	}

	url := dump.URL(m.baseURL, req.Kind, date)
	logger.Debug("Requesting dump", logger.Fields{"url": url, "user_agent": m.userAgent})

	resp, err := m.doRequest(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkContentType(resp); err != nil {
		return "", err
	}

	tmpPath, written, err := writeBodyToTemp(resp, absPath)
	if err != nil {
		return "", err
	}
	if err := finalizeFile(tmpPath, absPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	removeLegacyCopy(req.Dir, req.Kind, date)

	logger.Debug("Stored dump", logger.Fields{"path": absPath, "bytes": written})
	return absPath, nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "download failed")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

func checkContentType(resp *http.Response) error {
	values, ok := resp.Header["Content-Type"]
	if !ok || len(values) == 0 {
		return pkgerrors.ErrMissingContentType
	}
	if values[0] != dump.ContentType {
		return fmt.Errorf("%w: %s", pkgerrors.ErrUnexpectedContentType, values[0])
	}
	return nil
}

func writeBodyToTemp(resp *http.Response, absPath string) (string, int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", 0, pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, written, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	if err := os.Chmod(absPath, fsutil.FileModeSecure); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}

// removeLegacyCopy drops a dump stored under the old name once the canonical one exists.
func removeLegacyCopy(dir string, kind dump.Kind, date time.Time) {
	legacy := filepath.Join(dir, dump.LegacyFileName(kind, date))
	if !fsutil.IsEntry(legacy) {
		return
	}
	if err := os.Remove(legacy); err != nil {
		logger.Warn("Could not remove legacy dump file", logger.Fields{"path": legacy, "error": err})
	}
}
