package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf_assembler/pdf"
	"pdf_assembler/pdf/pdftest"
	"pdf_assembler/session"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func pageCount(t *testing.T, path string) int {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	engine := pdf.NewPdfcpuEngine(pdf.ValidationRelaxed)
	h, err := engine.Load(data)
	require.NoError(t, err)
	n, err := engine.PageCount(h)
	require.NoError(t, err)
	return n
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", pdftest.Pages(100, 2))
	b := writeFile(t, dir, "b.pdf", pdftest.Pages(200, 3))
	broken := writeFile(t, dir, "broken.pdf", pdftest.Corrupt())
	notes := writeFile(t, dir, "notes.txt", []byte("plain text"))

	stdout, stderr, err := run(t, "merge", "-d", dir, "-o", "book", "--move", "2:1", a, broken, notes, b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "book.pdf (5 pages)")
	assert.Contains(t, stderr, `"broken.pdf"`)
	assert.Contains(t, stderr, "skipped 1 file(s)")
	assert.Equal(t, 5, pageCount(t, filepath.Join(dir, "book.pdf")))
}

func TestMergeCommand_NeedsTwoDocuments(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", pdftest.Pages(0, 1))

	_, _, err := run(t, "merge", "-d", dir, a)
	assert.ErrorIs(t, err, session.ErrMergeRequiresTwo)
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "scan.pdf", pdftest.Pages(0, 10))

	stdout, _, err := run(t, "split", "-d", dir, "-p", "8-10, 2", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "split_scan.pdf (4 pages)")
	assert.Equal(t, 4, pageCount(t, filepath.Join(dir, "split_scan.pdf")))

	_, _, err = run(t, "split", "-d", dir, "-p", "11-20", src)
	assert.ErrorIs(t, err, session.ErrEmptySelection)
}

func TestPagesCommand(t *testing.T) {
	stdout, _, err := run(t, "pages", "-p", "1-3, 5, 8-10", "--max", "10")
	require.NoError(t, err)
	assert.Equal(t, "1,2,3,5,8,9,10\n", stdout)

	_, _, err = run(t, "pages", "-p", "abc", "--max", "5")
	assert.Error(t, err)
}

func TestParseMove(t *testing.T) {
	oldIndex, newIndex, err := parseMove("3:1")
	require.NoError(t, err)
	assert.Equal(t, 2, oldIndex)
	assert.Equal(t, 0, newIndex)

	_, _, err = parseMove("3")
	assert.Error(t, err)
	_, _, err = parseMove("a:1")
	assert.Error(t, err)
}
