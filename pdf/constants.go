package pdf

const (
	// MimeType is the media type of PDF documents
	MimeType = "application/pdf"

	// Extension is the file suffix appended to output names that lack it
	Extension = ".pdf"

	// MergeDefaultName is the output name used when a merge gets no filename
	MergeDefaultName = "merged.pdf"

	// SplitNamePrefix is prepended to the source name to form the default split output name
	SplitNamePrefix = "split_"

	// ValidationRelaxed accepts the common deviations from the PDF specification
	ValidationRelaxed = "relaxed"

	// ValidationStrict rejects documents that do not follow the PDF specification
	ValidationStrict = "strict"
)
