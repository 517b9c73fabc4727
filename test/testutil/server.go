package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/dump"
)

// ArchiveServer is a fake dump archive. It answers GET /archive/{kind}/{file}
// with Body and a configurable status and content type.
type ArchiveServer struct {
	*httptest.Server

	mu          sync.Mutex
	status      int
	contentType string
	noType      bool
	body        []byte
	requests    []Request
}

// Request is what the archive saw for one call.
type Request struct {
	Path      string
	UserAgent string
}

// DefaultBody is served when no body has been configured.
var DefaultBody = []byte("\x1f\x8b fake gzip payload")

// NewArchiveServer starts an archive that serves DefaultBody as gzip.
// The server is closed when the test ends.
func NewArchiveServer(t *testing.T) *ArchiveServer {
	t.Helper()

	as := &ArchiveServer{
		status:      http.StatusOK,
		contentType: dump.ContentType,
		body:        DefaultBody,
	}
	as.Server = httptest.NewServer(http.HandlerFunc(as.serve))
	t.Cleanup(as.Close)
	return as
}

// SetStatus makes every response use status.
func (as *ArchiveServer) SetStatus(status int) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.status = status
}

// SetContentType changes the Content-Type header of successful responses.
func (as *ArchiveServer) SetContentType(contentType string) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.contentType = contentType
	as.noType = false
}

// OmitContentType removes the Content-Type header entirely.
func (as *ArchiveServer) OmitContentType() {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.noType = true
}

// SetBody changes the payload of successful responses.
func (as *ArchiveServer) SetBody(body []byte) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.body = body
}

// Requests returns every request received so far.
func (as *ArchiveServer) Requests() []Request {
	as.mu.Lock()
	defer as.mu.Unlock()
	out := make([]Request, len(as.requests))
	copy(out, as.requests)
	return out
}

func (as *ArchiveServer) serve(w http.ResponseWriter, r *http.Request) {
	as.mu.Lock()
	as.requests = append(as.requests, Request{Path: r.URL.Path, UserAgent: r.UserAgent()})
	status, contentType, noType, body := as.status, as.contentType, as.noType, as.body
	as.mu.Unlock()

	logger.Debug("Archive request", logger.Fields{"path": r.URL.Path, "status": status})

	if !validArchivePath(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}

	if noType {
		// A nil value suppresses content sniffing in net/http.
		w.Header()["Content-Type"] = nil
	} else {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func validArchivePath(path string) bool {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "archive" {
		return false
	}
	rec, ok := dump.ParseFileName(parts[2])
	return ok && rec.Kind.String() == parts[1]
}

// SetupTestConfig writes a configuration file pointing at baseURL and
// dumpsDir and returns its path.
func SetupTestConfig(t *testing.T, baseURL, dumpsDir string) string {
	t.Helper()

	configStr := fmt.Sprintf(`settings:
  dumps_dir: %q
  base_url: %q
  user: "Testlandia"
  http_timeout: 10s
  output_format: text
  log_level: error
`, dumpsDir, baseURL)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configStr), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}
