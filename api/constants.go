package api

const (
	// MaxErrorMessageLength caps engine error text returned to clients
	MaxErrorMessageLength = 200

	// FormFieldPDF is the multipart field carrying uploaded PDF files
	FormFieldPDF = "pdf"

	// DefaultDownloadName is used when an output name sanitizes to nothing
	DefaultDownloadName = "document.pdf"

	// MergeFailedMessage is the generic message for merge engine failures
	MergeFailedMessage = "An error occurred while merging the PDFs."

	// SplitFailedMessage prefixes the engine message for split failures
	SplitFailedMessage = "An error occurred while splitting the PDF: "

	// EmptyRangeMessage asks the user for a page range
	EmptyRangeMessage = "Please enter a page range (e.g., 1-3, 5, 8-10)."

	// EmptySelectionMessage asks the user to adjust the page range
	EmptySelectionMessage = "No valid pages were specified."
)
