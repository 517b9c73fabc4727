package download_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esfalsa/pallets/pkg/cache"
	"github.com/esfalsa/pallets/pkg/download"
	"github.com/esfalsa/pallets/pkg/dump"
	"github.com/esfalsa/pallets/pkg/errors"
	"github.com/esfalsa/pallets/pkg/fsutil"
	"github.com/esfalsa/pallets/test/testutil"
)

const testUA = "pallets/0.3.0 (by:Esfalsa, usedBy:Testlandia)"

var testDate = dump.NewDate(2023, time.May, 1)

func dumpEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(as *testutil.ArchiveServer)
		kind      dump.Kind
		expectErr error
	}{
		{
			name: "successful download",
			kind: dump.Nations,
		},
		{
			name: "regions dump",
			kind: dump.Regions,
		},
		{
			name:      "html error page",
			setup:     func(as *testutil.ArchiveServer) { as.SetContentType("text/html") },
			kind:      dump.Nations,
			expectErr: errors.ErrUnexpectedContentType,
		},
		{
			name:      "similar gzip type",
			setup:     func(as *testutil.ArchiveServer) { as.SetContentType("application/gzip") },
			kind:      dump.Nations,
			expectErr: errors.ErrUnexpectedContentType,
		},
		{
			name:      "missing content type",
			setup:     func(as *testutil.ArchiveServer) { as.OmitContentType() },
			kind:      dump.Nations,
			expectErr: errors.ErrMissingContentType,
		},
		{
			name:      "not found",
			setup:     func(as *testutil.ArchiveServer) { as.SetStatus(http.StatusNotFound) },
			kind:      dump.Regions,
			expectErr: errors.ErrDownloadFailed,
		},
		{
			name:      "server error",
			setup:     func(as *testutil.ArchiveServer) { as.SetStatus(http.StatusInternalServerError) },
			kind:      dump.Nations,
			expectErr: errors.ErrDownloadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := testutil.NewArchiveServer(t)
			if tt.setup != nil {
				tt.setup(as)
			}
			dir := t.TempDir()
			m := download.NewManager(5*time.Second, testUA, as.URL)

			path, err := m.Fetch(context.Background(), download.Request{Kind: tt.kind, Date: testDate, Dir: dir})

			if tt.expectErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Empty(t, path)
				assert.Empty(t, dumpEntries(t, dir), "nothing may be written on failure")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, dump.Path(dir, tt.kind, testDate), path)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, testutil.DefaultBody, data)
			assert.Equal(t, []string{dump.FileName(tt.kind, testDate)}, dumpEntries(t, dir))
		})
	}
}

func TestFetch_RequestShape(t *testing.T) {
	as := testutil.NewArchiveServer(t)
	m := download.NewManager(5*time.Second, testUA, as.URL+"/")

	_, err := m.Fetch(context.Background(), download.Request{Kind: dump.Nations, Date: testDate, Dir: t.TempDir()})
	require.NoError(t, err)

	reqs := as.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/archive/nations/2023-05-01-nations-xml.gz", reqs[0].Path)
	assert.Equal(t, testUA, reqs[0].UserAgent)
}

func TestFetch_ExistingDump(t *testing.T) {
	tests := []struct {
		name     string
		existing func(dir string) string
	}{
		{
			name:     "canonical name",
			existing: func(dir string) string { return dump.Path(dir, dump.Nations, testDate) },
		},
		{
			name: "legacy name",
			existing: func(dir string) string {
				return filepath.Join(dir, dump.LegacyFileName(dump.Nations, testDate))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := testutil.NewArchiveServer(t)
			dir := t.TempDir()
			existing := tt.existing(dir)
			require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

			m := download.NewManager(5*time.Second, testUA, as.URL)
			_, err := m.Fetch(context.Background(), download.Request{Kind: dump.Nations, Date: testDate, Dir: dir})
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrDumpExists)
			assert.Empty(t, as.Requests(), "no request is made for an existing dump")

			data, err := os.ReadFile(existing)
			require.NoError(t, err)
			assert.Equal(t, "old", string(data))
		})
	}
}

func TestFetch_DanglingLinkAgreesWithCache(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	as := testutil.NewArchiveServer(t)
	dir := t.TempDir()
	link := dump.Path(dir, dump.Nations, testDate)
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))
	require.True(t, cache.NewManager(dir).Has(dump.Nations, testDate))

	m := download.NewManager(5*time.Second, testUA, as.URL)
	_, err := m.Fetch(context.Background(), download.Request{Kind: dump.Nations, Date: testDate, Dir: dir})
	assert.ErrorIs(t, err, errors.ErrDumpExists)
	assert.Empty(t, as.Requests())
}

func TestFetch_CreatesDirectory(t *testing.T) {
	as := testutil.NewArchiveServer(t)
	dir := filepath.Join(t.TempDir(), "nested", "dumps")

	m := download.NewManager(5*time.Second, testUA, as.URL)
	path, err := m.Fetch(context.Background(), download.Request{Kind: dump.Regions, Date: testDate, Dir: dir})
	require.NoError(t, err)
	assert.FileExists(t, path)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(fsutil.DirModeSecure), info.Mode().Perm(), "same mode the cache creates the directory with")
	}
}

func TestFetch_Force(t *testing.T) {
	as := testutil.NewArchiveServer(t)
	dir := t.TempDir()
	canonical := dump.Path(dir, dump.Nations, testDate)
	legacy := filepath.Join(dir, dump.LegacyFileName(dump.Nations, testDate))
	require.NoError(t, os.WriteFile(canonical, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(legacy, []byte("older"), 0o644))

	m := download.NewManager(5*time.Second, testUA, as.URL)
	path, err := m.Fetch(context.Background(), download.Request{Kind: dump.Nations, Date: testDate, Dir: dir, Force: true})
	require.NoError(t, err)
	assert.Equal(t, canonical, path)

	data, err := os.ReadFile(canonical)
	require.NoError(t, err)
	assert.Equal(t, testutil.DefaultBody, data)
	assert.NoFileExists(t, legacy)
}

func TestFetch_ForceKeepsOldDumpOnFailure(t *testing.T) {
	as := testutil.NewArchiveServer(t)
	as.SetContentType("text/html")
	dir := t.TempDir()
	canonical := dump.Path(dir, dump.Regions, testDate)
	require.NoError(t, os.WriteFile(canonical, []byte("old"), 0o644))

	m := download.NewManager(5*time.Second, testUA, as.URL)
	_, err := m.Fetch(context.Background(), download.Request{Kind: dump.Regions, Date: testDate, Dir: dir, Force: true})
	require.ErrorIs(t, err, errors.ErrUnexpectedContentType)

	data, err := os.ReadFile(canonical)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.Len(t, dumpEntries(t, dir), 1)
}

func TestFetch_InvalidRequest(t *testing.T) {
	m := download.NewManager(time.Second, testUA, "http://127.0.0.1:1")

	_, err := m.Fetch(context.Background(), download.Request{Kind: dump.Nations, Date: testDate, Dir: "relative"})
	require.Error(t, err)

	_, err = m.Fetch(context.Background(), download.Request{Kind: "cards", Date: testDate, Dir: t.TempDir()})
	assert.ErrorIs(t, err, errors.ErrInvalidKind)
}

func TestFetch_ContextCanceled(t *testing.T) {
	as := testutil.NewArchiveServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	m := download.NewManager(5*time.Second, testUA, as.URL)
	_, err := m.Fetch(ctx, download.Request{Kind: dump.Nations, Date: testDate, Dir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, dumpEntries(t, dir))
}

func TestUserAgent(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		user      string
		expected  string
		expectErr error
	}{
		{name: "standard", version: "0.3.0", user: "Testlandia", expected: testUA},
		{name: "trims user", version: "0.3.0", user: "  Testlandia ", expected: testUA},
		{name: "prefixed version", version: "v1.2.0", user: "Maxtopia", expected: "pallets/1.2.0 (by:Esfalsa, usedBy:Maxtopia)"},
		{name: "empty user", version: "0.3.0", user: "", expectErr: errors.ErrUserRequired},
		{name: "blank user", version: "0.3.0", user: "   ", expectErr: errors.ErrUserRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ua, err := download.UserAgent(tt.version, tt.user)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ua)
		})
	}

	_, err := download.UserAgent("not-a-version", "Testlandia")
	assert.Error(t, err)
}
