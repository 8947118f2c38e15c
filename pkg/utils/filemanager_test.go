package utils

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
}

func TestDiscoverReports(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.rpt"))
	touch(t, filepath.Join(dir, "A.RPT"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sheet.csv"))
	touch(t, filepath.Join(dir, "nested", "c.rpt"))

	fm := NewFileManager(dir, t.TempDir(), t.TempDir())

	files, err := fm.DiscoverReports([]string{".rpt"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.RPT"), filepath.Join(dir, "b.rpt")}, files)

	files, err = fm.DiscoverReports([]string{".rpt", ".TXT"})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscoverReports_MissingDir(t *testing.T) {
	fm := NewFileManager(filepath.Join(t.TempDir(), "absent"), "", "")
	_, err := fm.DiscoverReports([]string{".rpt"})
	assert.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "in"), filepath.Join(root, "out"), filepath.Join(root, "archive"))

	require.NoError(t, fm.EnsureDirectories(false))
	assert.DirExists(t, fm.OutputDir)
	assert.NoDirExists(t, fm.InputArchiveDir)

	require.NoError(t, fm.EnsureDirectories(true))
	assert.DirExists(t, fm.InputArchiveDir)
}

func TestArchiveInputFile(t *testing.T) {
	root := t.TempDir()
	report := filepath.Join(root, "in", "BF2.rpt")
	touch(t, report)

	fm := NewFileManager(filepath.Join(root, "in"), filepath.Join(root, "out"), filepath.Join(root, "archive"))

	archived, err := fm.ArchiveInputFile(report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "archive", "BF2.rpt"), archived)
	assert.FileExists(t, archived)
	assert.False(t, FileExists(report))
}

func TestArchiveInputFile_TimestampSubdirs(t *testing.T) {
	root := t.TempDir()
	report := filepath.Join(root, "BF2.rpt")
	touch(t, report)

	fm := NewFileManager(root, root, filepath.Join(root, "archive"))
	fm.UseTimestampSubdirs = true

	archived, err := fm.ArchiveInputFile(report)
	require.NoError(t, err)

	now := time.Now()
	assert.Contains(t, archived, filepath.Join("archive", now.Format("2006"), now.Format("01")))
	assert.FileExists(t, archived)
}

func TestGenerateOutputBaseName(t *testing.T) {
	assert.Equal(t, "BF2", GenerateOutputBaseName("", "/data/in/BF2.rpt"))
	assert.Equal(t, "BF2", GenerateOutputBaseName("{name}", "BF2.rpt"))
	assert.Equal(t, "BF2.v2", GenerateOutputBaseName("{name}", "BF2.v2.rpt"))

	got := GenerateOutputBaseName("{name}_{date}", "BF2.rpt")
	assert.Regexp(t, regexp.MustCompile(`^BF2_\d{8}$`), got)

	got = GenerateOutputBaseName("{uuid}", "BF2.rpt")
	assert.Len(t, got, 36)
	assert.NotEqual(t, got, GenerateOutputBaseName("{uuid}", "BF2.rpt"))
}

func TestOutputPaths(t *testing.T) {
	fm := NewFileManager("in", "out", "archive")

	paths := fm.OutputPaths("{name}", "/data/BF2.rpt")
	assert.Equal(t, filepath.Join("out", "BF2_orig.txt"), paths.Text)
	assert.Equal(t, filepath.Join("out", "BF2_highlighted.pdf"), paths.PDF)
	assert.Equal(t, filepath.Join("out", "BF2_highlighted.xlsx"), paths.Workbook)
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 15, 14, 30, 22, 0, time.Local)

	summary := ProcessingSummary{RunID: "run-1", StartTime: start, EndTime: start.Add(2 * time.Second)}
	summary.Add(ProcessedFileInfo{
		InputFile:   "BF2.rpt",
		OutputFiles: []string{"BF2_orig.txt", "BF2_highlighted.pdf"},
		Lines:       40,
		Red:         2,
		Orange:      1,
		Crossed:     3,
	})
	summary.AddFailure("broken.rpt", errors.New("failed to open report"))

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 2, summary.TotalRed)

	path, err := WriteSummaryLog(summary, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "processing_summary_20240115_143022.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "Blind Receiving Highlighter - Processing Summary"))
	assert.Contains(t, text, "Run ID:         run-1")
	assert.Contains(t, text, "Output:       BF2_highlighted.pdf")
	assert.Contains(t, text, "red=2 orange=1 yellow=0 crossed=3")
	assert.Contains(t, text, "Error: failed to open report")
	assert.True(t, strings.HasSuffix(text, "End of Summary\n"))
}

func TestDiscoverReports_SkipsOwnOutputsInSharedDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "BF2.rpt"))
	touch(t, filepath.Join(dir, "BF2_orig.txt"))
	touch(t, filepath.Join(dir, "processing_summary_20240115_143022.txt"))
	touch(t, filepath.Join(dir, "notes.txt"))

	shared := NewFileManager(dir, dir, "")
	files, err := shared.DiscoverReports([]string{".rpt", ".txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "BF2.rpt"), filepath.Join(dir, "notes.txt")}, files)

	// With a separate output directory every matching file is a report.
	separate := NewFileManager(dir, t.TempDir(), "")
	files, err = separate.DiscoverReports([]string{".rpt", ".txt"})
	require.NoError(t, err)
	assert.Len(t, files, 4)
}

func TestPlanOutputNames(t *testing.T) {
	reports := []string{
		"/in/BF1.rpt",
		"/in/BF2.rpt",
		"/in/BF2.txt",
		"/in/BF2_rpt.rpt",
	}

	names := PlanOutputNames("{name}", reports)

	assert.Equal(t, "BF1", names["/in/BF1.rpt"])
	assert.Equal(t, "BF2_rpt", names["/in/BF2.rpt"])
	assert.Equal(t, "BF2_txt", names["/in/BF2.txt"])

	// BF2_rpt.rpt would collide with the renamed BF2.rpt.
	assert.Regexp(t, regexp.MustCompile(`^BF2_rpt_[0-9a-f]{8}$`), names["/in/BF2_rpt.rpt"])

	seen := make(map[string]bool)
	for _, name := range names {
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestOutputPathsFor(t *testing.T) {
	fm := NewFileManager("in", "out", "archive")

	paths := fm.OutputPathsFor("BF2_txt")
	assert.Equal(t, filepath.Join("out", "BF2_txt_orig.txt"), paths.Text)
	assert.Equal(t, filepath.Join("out", "BF2_txt_highlighted.pdf"), paths.PDF)
}
