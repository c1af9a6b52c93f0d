package pdf

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// segment is a batch of pages picked from a source document by one CopyPages call.
// Pages are extracted from src only when the owning document is serialized.
type segment struct {
	src     *model.Context
	pageNrs []int // 1-based, in copy order
}

// document is the engine-side state behind a Handle.
// Loaded documents carry a context; created documents collect copied pages.
type document struct {
	ctx      *model.Context
	segments []segment
	pages    []PageRef
}

func (d *document) pageCount() int {
	if d.ctx != nil {
		return d.ctx.PageCount
	}
	return len(d.pages)
}

// PdfcpuEngine implements Engine on top of the pdfcpu library.
// Documents live in an arena keyed by Handle; it is safe for concurrent use
// as long as a single document is not used from two goroutines at once.
type PdfcpuEngine struct {
	validationMode int

	mu   sync.Mutex
	next Handle
	docs map[Handle]*document
}

// NewPdfcpuEngine creates an engine using the given validation mode
// (ValidationRelaxed or ValidationStrict; anything else means relaxed).
// pdfcpu's on-disk configuration directory is disabled; built-in defaults are used.
func NewPdfcpuEngine(validation string) *PdfcpuEngine {
	disableConfigDir.Do(api.DisableConfigDir)

	mode := model.ValidationRelaxed
	if validation == ValidationStrict {
		mode = model.ValidationStrict
	}
	return &PdfcpuEngine{
		validationMode: mode,
		docs:           make(map[Handle]*document),
	}
}

func (e *PdfcpuEngine) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = e.validationMode
	return conf
}

func (e *PdfcpuEngine) register(doc *document) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	e.docs[e.next] = doc
	return e.next
}

func (e *PdfcpuEngine) lookup(h Handle) (*document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.docs[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return doc, nil
}

// recoverFault turns a pdfcpu panic into an error for op
func recoverFault(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdfcpu %s failed: %v", op, r)
	}
}

// Load reads, validates and optimizes a PDF
func (e *PdfcpuEngine) Load(data []byte) (h Handle, err error) {
	// pdfcpu may panic on badly broken input
	defer recoverFault("read", &err)

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.configuration())
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read failed: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}

	return e.register(&document{ctx: ctx}), nil
}

// Create returns a new empty document
func (e *PdfcpuEngine) Create() (Handle, error) {
	return e.register(&document{}), nil
}

// PageCount reports the number of pages of a document
func (e *PdfcpuEngine) PageCount(h Handle) (int, error) {
	doc, err := e.lookup(h)
	if err != nil {
		return 0, err
	}
	return doc.pageCount(), nil
}

// CopyPages picks the pages at indices of src into a new segment owned by dst
func (e *PdfcpuEngine) CopyPages(dst, src Handle, indices []int) (refs []PageRef, err error) {
	defer recoverFault("copy", &err)

	dstDoc, err := e.lookup(dst)
	if err != nil {
		return nil, err
	}
	srcDoc, err := e.lookup(src)
	if err != nil {
		return nil, err
	}
	if srcDoc.ctx == nil {
		return nil, fmt.Errorf("copy from created document %d: %w", src, ErrNoPages)
	}
	if len(indices) == 0 {
		return []PageRef{}, nil
	}

	// pdfcpu page numbers are 1-based
	pageNrs := make([]int, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= srcDoc.ctx.PageCount {
			return nil, fmt.Errorf("%w: %d (document has %d pages)", ErrPageOutOfRange, idx, srcDoc.ctx.PageCount)
		}
		pageNrs[i] = idx + 1
	}

	e.mu.Lock()
	dstDoc.segments = append(dstDoc.segments, segment{src: srcDoc.ctx, pageNrs: pageNrs})
	seg := len(dstDoc.segments) - 1
	e.mu.Unlock()

	refs = make([]PageRef, len(pageNrs))
	for i := range refs {
		refs[i] = PageRef{Owner: dst, Segment: seg, Page: i + 1}
	}
	return refs, nil
}

// AppendPage adds a copied page to the end of dst
func (e *PdfcpuEngine) AppendPage(dst Handle, page PageRef) error {
	doc, err := e.lookup(dst)
	if err != nil {
		return err
	}
	if page.Owner != dst || doc.ctx != nil {
		return fmt.Errorf("append to document %d: %w", dst, ErrForeignPage)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if page.Segment < 0 || page.Segment >= len(doc.segments) ||
		page.Page < 1 || page.Page > len(doc.segments[page.Segment].pageNrs) {
		return fmt.Errorf("append to document %d: %w", dst, ErrPageOutOfRange)
	}
	doc.pages = append(doc.pages, page)
	return nil
}

// Serialize writes a document as PDF bytes.
// Consecutive pages from the same segment are extracted from their source in
// one pass and the parts are merged in page order. Sources are never modified,
// so a document may be serialized more than once.
func (e *PdfcpuEngine) Serialize(h Handle) (data []byte, err error) {
	defer recoverFault("write", &err)

	doc, err := e.lookup(h)
	if err != nil {
		return nil, err
	}

	if doc.ctx != nil {
		return writePages(doc.ctx, pageRange(doc.ctx.PageCount))
	}
	if len(doc.pages) == 0 {
		return nil, ErrNoPages
	}

	var parts [][]byte
	for start := 0; start < len(doc.pages); {
		end := start + 1
		for end < len(doc.pages) && doc.pages[end].Segment == doc.pages[start].Segment {
			end++
		}

		part, err := writeRun(doc.segments[doc.pages[start].Segment], doc.pages[start:end])
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		start = end
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	readers := make([]io.ReadSeeker, len(parts))
	for i, part := range parts {
		readers[i] = bytes.NewReader(part)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, e.configuration()); err != nil {
		return nil, fmt.Errorf("pdfcpu merge failed: %w", err)
	}
	return out.Bytes(), nil
}

// Release drops a document and every segment copied into it
func (e *PdfcpuEngine) Release(h Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.docs, h)
}

// Open reports how many documents the engine currently holds
func (e *PdfcpuEngine) Open() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.docs)
}

// writeRun writes the pages of one segment in run order
func writeRun(seg segment, run []PageRef) ([]byte, error) {
	pageNrs := make([]int, len(run))
	for i, p := range run {
		pageNrs[i] = seg.pageNrs[p.Page-1]
	}
	return writePages(seg.src, pageNrs)
}

// writePages extracts the 1-based pageNrs of src into a new context and writes it
func writePages(src *model.Context, pageNrs []int) ([]byte, error) {
	if len(pageNrs) == 0 {
		return nil, ErrNoPages
	}

	ctx, err := pdfcpu.ExtractPages(src, pageNrs, false)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu extract pages failed: %w", err)
	}
	return writeContext(ctx)
}

func pageRange(count int) []int {
	pageNrs := make([]int, count)
	for i := range pageNrs {
		pageNrs[i] = i + 1
	}
	return pageNrs
}

func writeContext(ctx *model.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("pdfcpu write failed: %w", err)
	}
	return buf.Bytes(), nil
}
