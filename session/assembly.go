package session

import (
	"fmt"
	"strings"

	"pdf_assembler/pdf"
)

// Part is one source document and the zero-based pages to take from it, in output order
type Part struct {
	Source pdf.Handle
	Pages  []int
}

// Output is an assembled document ready for the output sink
type Output struct {
	Name      string
	Data      []byte
	MimeType  string
	PageCount int
}

// Assemble builds a new document from parts in order and returns its bytes.
// The intermediate document is always released; nothing is returned on failure.
// A panic inside the engine is reported as an error.
func Assemble(engine pdf.Engine, parts []Part) (data []byte, count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, count, err = nil, 0, fmt.Errorf("engine fault: %v", r)
		}
	}()

	out, err := engine.Create()
	if err != nil {
		return nil, 0, fmt.Errorf("create document: %w", err)
	}
	defer engine.Release(out)

	for _, part := range parts {
		pages, err := engine.CopyPages(out, part.Source, part.Pages)
		if err != nil {
			return nil, 0, fmt.Errorf("copy pages: %w", err)
		}
		for _, page := range pages {
			if err := engine.AppendPage(out, page); err != nil {
				return nil, 0, fmt.Errorf("append page: %w", err)
			}
		}
	}

	count, err = engine.PageCount(out)
	if err != nil {
		return nil, 0, fmt.Errorf("page count: %w", err)
	}

	data, err = engine.Serialize(out)
	if err != nil {
		return nil, 0, fmt.Errorf("serialize: %w", err)
	}
	return data, count, nil
}

// Merge concatenates every page of every document in set order
func Merge(engine pdf.Engine, set *DocumentSet, filename string) (*Output, error) {
	docs := set.Documents()
	if len(docs) < 2 {
		return nil, ErrMergeRequiresTwo
	}
	name := pdf.ResolveOutputName(filename, pdf.MergeDefaultName)

	parts := make([]Part, len(docs))
	for i, d := range docs {
		n, err := engine.PageCount(d.Handle)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEngine, err)
		}
		parts[i] = Part{Source: d.Handle, Pages: pdf.PageIndices(n)}
	}

	data, count, err := Assemble(engine, parts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngine, err)
	}

	return &Output{Name: name, Data: data, MimeType: pdf.MimeType, PageCount: count}, nil
}

// Split extracts the pages selected by rangeText from the only document in set.
// Pages are written in ascending source order whatever order the expression lists them in.
func Split(engine pdf.Engine, set *DocumentSet, rangeText, filename string) (*Output, error) {
	docs := set.Documents()
	if len(docs) != 1 {
		return nil, ErrSplitRequiresOne
	}
	rangeText = strings.TrimSpace(rangeText)
	if rangeText == "" {
		return nil, ErrEmptyRange
	}

	source := docs[0]
	name := pdf.ResolveOutputName(filename, pdf.SplitDefaultName(source.Name))

	total, err := engine.PageCount(source.Handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngine, err)
	}
	indices := pdf.ParsePageRange(rangeText, total)
	if len(indices) == 0 {
		return nil, ErrEmptySelection
	}

	data, count, err := Assemble(engine, []Part{{Source: source.Handle, Pages: indices}})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngine, err)
	}

	return &Output{Name: name, Data: data, MimeType: pdf.MimeType, PageCount: count}, nil
}
