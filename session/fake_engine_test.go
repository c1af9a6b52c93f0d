package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"pdf_assembler/pdf"
)

var errFake = errors.New("fake engine failure")

type fakeDoc struct {
	pages    []string
	segments [][]string
	loaded   bool
}

// fakeEngine treats file bytes as a comma-separated list of page labels and
// serializes documents the same way, so outputs can be compared as strings.
type fakeEngine struct {
	mu       sync.Mutex
	next     pdf.Handle
	docs     map[pdf.Handle]*fakeDoc
	released []pdf.Handle
	calls    int
	failOn   string // "create", "copy", "append", "count", "serialize" or "panic"
	copyHook func()
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{docs: make(map[pdf.Handle]*fakeDoc)}
}

func (e *fakeEngine) add(doc *fakeDoc) pdf.Handle {
	e.next++
	e.docs[e.next] = doc
	return e.next
}

func (e *fakeEngine) Load(data []byte) (pdf.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	text := string(data)
	if text == "" || strings.HasPrefix(text, "corrupt") {
		return 0, fmt.Errorf("cannot parse %q", text)
	}
	return e.add(&fakeDoc{pages: strings.Split(text, ","), loaded: true}), nil
}

func (e *fakeEngine) Create() (pdf.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if e.failOn == "create" {
		return 0, errFake
	}
	return e.add(&fakeDoc{}), nil
}

func (e *fakeEngine) PageCount(h pdf.Handle) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failOn == "count" {
		return 0, errFake
	}
	doc, ok := e.docs[h]
	if !ok {
		return 0, pdf.ErrUnknownHandle
	}
	return len(doc.pages), nil
}

func (e *fakeEngine) CopyPages(dst, src pdf.Handle, indices []int) ([]pdf.PageRef, error) {
	if e.copyHook != nil {
		e.copyHook()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if e.failOn == "copy" {
		return nil, errFake
	}
	dstDoc, ok := e.docs[dst]
	if !ok {
		return nil, pdf.ErrUnknownHandle
	}
	srcDoc, ok := e.docs[src]
	if !ok {
		return nil, pdf.ErrUnknownHandle
	}

	var seg []string
	refs := make([]pdf.PageRef, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(srcDoc.pages) {
			return nil, pdf.ErrPageOutOfRange
		}
		seg = append(seg, srcDoc.pages[idx])
		refs[i] = pdf.PageRef{Owner: dst, Segment: len(dstDoc.segments), Page: i + 1}
	}
	dstDoc.segments = append(dstDoc.segments, seg)
	return refs, nil
}

func (e *fakeEngine) AppendPage(dst pdf.Handle, page pdf.PageRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if e.failOn == "append" {
		return errFake
	}
	doc, ok := e.docs[dst]
	if !ok || page.Owner != dst {
		return pdf.ErrForeignPage
	}
	doc.pages = append(doc.pages, doc.segments[page.Segment][page.Page-1])
	return nil
}

func (e *fakeEngine) Serialize(h pdf.Handle) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if e.failOn == "serialize" {
		return nil, errFake
	}
	if e.failOn == "panic" {
		panic("fake engine fault")
	}
	doc, ok := e.docs[h]
	if !ok {
		return nil, pdf.ErrUnknownHandle
	}
	return []byte(strings.Join(doc.pages, ",")), nil
}

func (e *fakeEngine) Release(h pdf.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.docs[h]; ok {
		e.released = append(e.released, h)
		delete(e.docs, h)
	}
}

func (e *fakeEngine) open() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.docs)
}

func (e *fakeEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.calls
}

// pdfFile builds a PDF-typed raw file whose fake contents are the given page labels
func pdfFile(name string, pages ...string) RawFile {
	return RawFile{Name: name, Data: []byte(strings.Join(pages, ",")), MimeType: pdf.MimeType}
}
