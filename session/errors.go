package session

import "errors"

var (
	// ErrIndexOutOfRange is returned by DocumentSet operations given a position outside the set
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrDuplicateHandle is returned when appending a document whose handle is already in the set
	ErrDuplicateHandle = errors.New("document handle already in set")

	// ErrRead marks a file its source could not deliver, such as an upload over the size limit
	ErrRead = errors.New("read error")

	// ErrDecode marks a file whose bytes could not be loaded as a PDF
	ErrDecode = errors.New("decode error")

	// ErrEngine marks a PDF engine failure during merge or split
	ErrEngine = errors.New("engine error")

	// ErrEmptySelection is returned when a page range selects no valid page
	ErrEmptySelection = errors.New("no valid pages were specified")

	// ErrEmptyRange is returned when split is requested without a page range
	ErrEmptyRange = errors.New("page range is empty")

	// ErrMergeRequiresTwo is returned when merge is requested with fewer than two documents
	ErrMergeRequiresTwo = errors.New("merge requires at least two documents")

	// ErrSplitRequiresOne is returned when split is requested without exactly one document
	ErrSplitRequiresOne = errors.New("split requires exactly one document")

	// ErrBusy is returned when another operation is already running on the session
	ErrBusy = errors.New("another operation is in progress")

	// ErrSessionNotFound is returned by the store for unknown or expired session ids
	ErrSessionNotFound = errors.New("session not found")
)
