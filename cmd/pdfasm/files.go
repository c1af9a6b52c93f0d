package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"pdf_assembler/pdf"
	"pdf_assembler/session"
)

// readFiles reads local files as raw ingest input, detecting each file's media type from its contents
func readFiles(paths []string) ([]session.RawFile, error) {
	files := make([]session.RawFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, session.RawFile{
			Name:     filepath.Base(path),
			Data:     data,
			MimeType: mimetype.Detect(data).String(),
		})
	}
	return files, nil
}

// ingest loads files into s and reports skipped and failed files on w
func ingest(w io.Writer, s *session.Session, paths []string) error {
	files, err := readFiles(paths)
	if err != nil {
		return err
	}

	result, err := s.Ingest(files)
	if err != nil {
		return err
	}
	for _, f := range result.Failures {
		fmt.Fprintln(w, f.Message())
	}
	if result.Skipped > 0 {
		fmt.Fprintf(w, "skipped %d file(s) that are not PDF\n", result.Skipped)
	}
	return nil
}

// writeOutput saves out in dir, or in the working directory when dir is empty
func writeOutput(w io.Writer, dir string, out *session.Output) error {
	path := filepath.Join(dir, out.Name)
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(w, "wrote %s (%d pages)\n", path, out.PageCount)
	return nil
}

// parseMove parses "old:new" with 1-based positions into zero-based indices
func parseMove(arg string) (int, int, error) {
	oldStr, newStr, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid move %q: want old:new", arg)
	}
	oldPos, err := strconv.Atoi(strings.TrimSpace(oldStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid move %q: %w", arg, err)
	}
	newPos, err := strconv.Atoi(strings.TrimSpace(newStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid move %q: %w", arg, err)
	}
	return oldPos - 1, newPos - 1, nil
}

func newEngine(validation string) pdf.Engine {
	return pdf.NewPdfcpuEngine(validation)
}
