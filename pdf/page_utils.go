package pdf

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ParsePageRange parses a page range expression and returns the selected pages
// as zero-based indices in ascending order.
// Supports formats: "1", "1,3", "1-5", "1-3, 5, 8-10"
//
// Tokens that do not parse, and pages outside 1..maxPage, are skipped. A range
// whose start is greater than its end selects nothing. Callers detect "nothing
// valid" by checking for an empty result.
func ParsePageRange(text string, maxPage int) []int {
	selected := make(map[int]struct{})

	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)

		if strings.Contains(part, "-") {
			// Range like "1-5"
			rangeParts := strings.Split(part, "-")
			start, okStart := parseLeadingInt(rangeParts[0])
			end, okEnd := parseLeadingInt(rangeParts[1])
			if !okStart || !okEnd {
				continue
			}

			for i := max(start, 1); i <= end && i <= maxPage; i++ {
				selected[i-1] = struct{}{}
			}
			continue
		}

		// Single page like "3"
		page, ok := parseLeadingInt(part)
		if ok && page > 0 && page <= maxPage {
			selected[page-1] = struct{}{}
		}
	}

	indices := make([]int, 0, len(selected))
	for i := range selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	return indices
}

// parseLeadingInt reads an optionally signed decimal integer from the start of s,
// ignoring leading whitespace and anything after the digits ("12abc" is 12).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		// Atoi reports the saturated value on overflow
		return n, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatPages renders zero-based page indices as a comma-separated list of page numbers
func FormatPages(indices []int) string {
	pageStrs := make([]string, len(indices))
	for i, p := range indices {
		pageStrs[i] = strconv.Itoa(p + 1)
	}
	return strings.Join(pageStrs, ",")
}
