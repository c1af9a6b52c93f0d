package pdf

import "errors"

var (
	// ErrUnknownHandle is returned when a handle is not (or no longer) owned by the engine
	ErrUnknownHandle = errors.New("unknown document handle")

	// ErrNoPages is returned when serializing a document that has no pages
	ErrNoPages = errors.New("document has no pages")

	// ErrPageOutOfRange is returned when a copy names a page index the source does not have
	ErrPageOutOfRange = errors.New("page index out of range")

	// ErrForeignPage is returned when a page is appended to a document it was not copied into
	ErrForeignPage = errors.New("page was copied into a different document")
)

// Handle is an opaque reference to a document owned by an Engine.
// The zero Handle never refers to a document.
type Handle uint64

// PageRef identifies one copied page waiting to be appended to its owner document.
type PageRef struct {
	Owner   Handle // document the page was copied into
	Segment int    // copy batch within the owner
	Page    int    // 1-based page number within the batch
}

// Engine is the low-level PDF capability the assembler is built on.
//
// Page indices passed to CopyPages are zero-based. Pages returned by
// CopyPages keep the order of the requested indices and must be appended to
// the same destination document they were copied into.
type Engine interface {
	// Load decodes PDF bytes into a new document.
	Load(data []byte) (Handle, error)

	// Create returns a new empty document.
	Create() (Handle, error)

	// PageCount reports the current number of pages of a document.
	PageCount(h Handle) (int, error)

	// CopyPages copies the pages at indices of src into dst without adding them to its page tree.
	CopyPages(dst, src Handle, indices []int) ([]PageRef, error)

	// AppendPage adds a previously copied page to the end of dst.
	AppendPage(dst Handle, page PageRef) error

	// Serialize encodes a document to PDF bytes.
	Serialize(h Handle) ([]byte, error)

	// Release frees a document. Releasing an unknown handle is a no-op.
	Release(h Handle)
}

// PageIndices returns the zero-based indices 0..count-1.
func PageIndices(count int) []int {
	if count <= 0 {
		return []int{}
	}
	indices := make([]int, count)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
