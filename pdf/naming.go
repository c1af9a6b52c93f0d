package pdf

import "strings"

// ResolveOutputName returns the filename for an output document.
// Blank input falls back to defaultBase, and the ".pdf" suffix is appended
// unless already present in any letter case.
func ResolveOutputName(userInput, defaultBase string) string {
	filename := strings.TrimSpace(userInput)
	if filename == "" {
		filename = defaultBase
	}
	if !strings.HasSuffix(strings.ToLower(filename), Extension) {
		filename += Extension
	}
	return filename
}

// SplitDefaultName is the default output name for a split of the named source document
func SplitDefaultName(source string) string {
	return SplitNamePrefix + source
}
