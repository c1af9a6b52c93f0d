package session

import (
	"errors"
	"fmt"
	"strings"

	"pdf_assembler/pdf"
)

// RawFile is one file delivered by a file source: local picker, drag and drop, upload or CLI argument
type RawFile struct {
	Name     string
	Data     []byte
	MimeType string
	Err      error // set when the source could not read the file
}

// Failure records a file that could not be ingested
type Failure struct {
	Name string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Name, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Message is the user-facing text for the failure, naming the file
func (f Failure) Message() string {
	if errors.Is(f.Err, ErrRead) {
		return fmt.Sprintf("Error reading file %q: %s", f.Name, strings.TrimPrefix(f.Err.Error(), ErrRead.Error()+": "))
	}
	return fmt.Sprintf("Error reading file %q. The file may be corrupt.", f.Name)
}

// IngestResult summarizes one batch
type IngestResult struct {
	Appended int
	Skipped  int
	Failures []Failure
}

// IsPDF reports whether a declared media type is the PDF media type.
// Parameters such as "; charset=binary" are ignored.
func IsPDF(mimeType string) bool {
	mediaType, _, _ := strings.Cut(mimeType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), pdf.MimeType)
}

// Ingest loads files in order and appends each decoded document to set.
// Files not declared as PDF are skipped. A file that could not be read or
// fails to load is recorded as a failure, in input order, and does not stop
// the rest of the batch.
func Ingest(engine pdf.Engine, set *DocumentSet, files []RawFile) IngestResult {
	result := IngestResult{Failures: []Failure{}}

	for _, file := range files {
		if file.Err != nil {
			result.Failures = append(result.Failures, Failure{
				Name: file.Name,
				Err:  fmt.Errorf("%w: %w", ErrRead, file.Err),
			})
			continue
		}
		if !IsPDF(file.MimeType) {
			result.Skipped++
			continue
		}

		h, err := engine.Load(file.Data)
		if err != nil {
			result.Failures = append(result.Failures, Failure{
				Name: file.Name,
				Err:  fmt.Errorf("%w: %w", ErrDecode, err),
			})
			continue
		}

		if err := set.Append(Document{Name: file.Name, Handle: h}); err != nil {
			engine.Release(h)
			result.Failures = append(result.Failures, Failure{Name: file.Name, Err: err})
			continue
		}
		result.Appended++
	}

	return result
}
