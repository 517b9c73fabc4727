package cache_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/esfalsa/pallets/pkg/cache"
	"github.com/esfalsa/pallets/pkg/dump"
	"github.com/esfalsa/pallets/pkg/errors"
	"github.com/esfalsa/pallets/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		err := os.WriteFile(filepath.Join(dir, name), []byte("data for "+name), fsutil.FileModeDefault)
		require.NoError(t, err, "failed to create %s", name)
	}
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dumps")

	mgr, err := cache.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, mgr.Directory())
	assert.DirExists(t, dir)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(fsutil.DirModeSecure), info.Mode().Perm())
	}
}

func TestOpen_Errors(t *testing.T) {
	_, err := cache.Open("")
	assert.ErrorIs(t, err, errors.ErrCacheDirectory)

	file := filepath.Join(t.TempDir(), "file")
	writeFiles(t, filepath.Dir(file), "file")
	_, err = cache.Open(filepath.Join(file, "dumps"))
	assert.ErrorIs(t, err, errors.ErrDumpsDirectory)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"2023-05-01-nations-xml.gz",
		"2023-05-02-regions-xml.gz",
		"readme.txt",
	)

	records, err := cache.NewManager(dir).Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, []dump.Record{
		{Kind: dump.Nations, Date: dump.NewDate(2023, time.May, 1)},
		{Kind: dump.Regions, Date: dump.NewDate(2023, time.May, 2)},
	}, records)
}

func TestScan_SkipsUnrelatedEntries(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"2023-5-01-nations-xml.gz",
		"2023-05-01-cards-xml.gz",
		"2024-02-30-regions-xml.gz",
		"2023-05-01-nations-xml.gz.part",
		"dl-1234.tmp",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2023-05-03-nations-xml.gz"), fsutil.DirModeSecure))

	records, err := cache.NewManager(dir).Scan()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScan_LegacyNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"2022-01-01-regions.xml.gz",
		"2022-01-02-nations-xml.gz",
		"2022-01-02-nations.xml.gz",
	)

	records, err := cache.NewManager(dir).Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, []dump.Record{
		{Kind: dump.Regions, Date: dump.NewDate(2022, time.January, 1)},
		{Kind: dump.Nations, Date: dump.NewDate(2022, time.January, 2)},
	}, records)
}

func TestScan_MissingDirectory(t *testing.T) {
	mgr := cache.NewManager(filepath.Join(t.TempDir(), "missing"))

	_, err := mgr.Scan()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCacheRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"2023-05-01-nations-xml.gz",
		"2023-05-02-regions-xml.gz",
		"2023-05-02-nations-xml.gz",
		"readme.txt",
	)
	mgr := cache.NewManager(dir)

	got, err := mgr.List(dump.Query{Kind: dump.Regions})
	require.NoError(t, err)
	assert.Equal(t, []dump.Record{{Kind: dump.Regions, Date: dump.NewDate(2023, time.May, 2)}}, got)

	got, err = mgr.List(dump.Query{Order: dump.Descending})
	require.NoError(t, err)
	assert.Equal(t, []dump.Record{
		{Kind: dump.Nations, Date: dump.NewDate(2023, time.May, 2)},
		{Kind: dump.Regions, Date: dump.NewDate(2023, time.May, 2)},
		{Kind: dump.Nations, Date: dump.NewDate(2023, time.May, 1)},
	}, got)
}

func TestHasAndLocate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2023-05-01-nations-xml.gz", "2020-01-01-regions.xml.gz")
	mgr := cache.NewManager(dir)

	tests := []struct {
		name     string
		kind     dump.Kind
		date     time.Time
		expected string
	}{
		{name: "canonical", kind: dump.Nations, date: dump.NewDate(2023, time.May, 1), expected: "2023-05-01-nations-xml.gz"},
		{name: "legacy", kind: dump.Regions, date: dump.NewDate(2020, time.January, 1), expected: "2020-01-01-regions.xml.gz"},
		{name: "other kind", kind: dump.Regions, date: dump.NewDate(2023, time.May, 1)},
		{name: "other date", kind: dump.Nations, date: dump.NewDate(2023, time.May, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := mgr.Locate(tt.kind, tt.date)
			if tt.expected == "" {
				assert.ErrorIs(t, err, errors.ErrDumpNotFound)
				assert.False(t, mgr.Has(tt.kind, tt.date))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.expected), path)
			assert.True(t, mgr.Has(tt.kind, tt.date))
		})
	}
}

func TestLocateAndDelete_DanglingLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	dir := t.TempDir()
	link := filepath.Join(dir, "2023-05-01-nations-xml.gz")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))
	mgr := cache.NewManager(dir)
	date := dump.NewDate(2023, time.May, 1)

	path, err := mgr.Locate(dump.Nations, date)
	require.NoError(t, err)
	assert.Equal(t, link, path)
	assert.True(t, mgr.Has(dump.Nations, date))

	require.NoError(t, mgr.Delete(dump.Nations, date))
	_, err = os.Lstat(link)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocate_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2023-05-01-nations-xml.gz"), fsutil.DirModeSecure))
	mgr := cache.NewManager(dir)

	_, err := mgr.Locate(dump.Nations, dump.NewDate(2023, time.May, 1))
	assert.ErrorIs(t, err, errors.ErrDumpNotFound)
}

func TestNewDefaultManager_NoHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("dumps directory is resolved from APPDATA on windows")
	}
	t.Setenv("HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	_, err := cache.NewDefaultManager()
	assert.ErrorIs(t, err, errors.ErrConfigDirectory)
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	mgr := cache.NewManager(dir)
	assert.Equal(t, filepath.Join(dir, "2023-05-01-regions-xml.gz"), mgr.Path(dump.Regions, dump.NewDate(2023, time.May, 1)))
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"2023-05-01-nations-xml.gz",
		"2023-05-01-nations.xml.gz",
		"2023-05-01-regions-xml.gz",
	)
	mgr := cache.NewManager(dir)
	date := dump.NewDate(2023, time.May, 1)

	require.NoError(t, mgr.Delete(dump.Nations, date))
	assert.NoFileExists(t, filepath.Join(dir, "2023-05-01-nations-xml.gz"))
	assert.NoFileExists(t, filepath.Join(dir, "2023-05-01-nations.xml.gz"))
	assert.FileExists(t, filepath.Join(dir, "2023-05-01-regions-xml.gz"))

	err := mgr.Delete(dump.Nations, date)
	assert.ErrorIs(t, err, errors.ErrDumpNotFound)
}

func TestGetInfo(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"2023-05-01-nations-xml.gz",
		"2023-05-03-regions-xml.gz",
		"2022-12-31-regions.xml.gz",
		"readme.txt",
	)

	info, err := cache.NewManager(dir).GetInfo()
	require.NoError(t, err)
	assert.Equal(t, dir, info.Directory)
	assert.Equal(t, 3, info.Dumps)
	assert.Equal(t, 1, info.ByKind[dump.Nations])
	assert.Equal(t, 2, info.ByKind[dump.Regions])
	assert.Equal(t, dump.NewDate(2022, time.December, 31), info.Oldest)
	assert.Equal(t, dump.NewDate(2023, time.May, 3), info.Newest)
	assert.Positive(t, info.TotalSize)
}

func TestGetInfoEmpty(t *testing.T) {
	dir := t.TempDir()

	info, err := cache.NewManager(dir).GetInfo()
	require.NoError(t, err)
	assert.Equal(t, 0, info.Dumps)
	assert.Equal(t, int64(0), info.TotalSize)
	assert.True(t, info.Oldest.IsZero())
}
