package pdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		maxPage int
		want    []int
	}{
		{"mixed ranges and pages", "1-3,5,8-10", 10, []int{0, 1, 2, 4, 7, 8, 9}},
		{"whitespace around tokens", " 1 - 3 ,  5 , 8-10 ", 10, []int{0, 1, 2, 4, 7, 8, 9}},
		{"reversed range is empty", "2-1", 5, []int{}},
		{"not a number", "abc", 5, []int{}},
		{"out of bounds", "0,11", 10, []int{}},
		{"empty text", "", 10, []int{}},
		{"no pages", "1-3,5", 0, []int{}},
		{"negative bound", "1", -1, []int{}},
		{"overlapping ranges collapse", "1-4,3-6,5", 10, []int{0, 1, 2, 3, 4, 5}},
		{"token order does not matter", "3,1,2", 10, []int{0, 1, 2}},
		{"range clipped to bounds", "0-3,9-20", 10, []int{0, 1, 2, 8, 9}},
		{"range with bad endpoint is dropped whole", "1-x,4", 10, []int{3}},
		{"open ended range is dropped", "5-,-2", 10, []int{}},
		{"extra dashes use first two pieces", "2-4-9", 10, []int{1, 2, 3}},
		{"trailing garbage after digits", "2abc,4 pages", 10, []int{1, 3}},
		{"explicit plus sign", "+3", 10, []int{2}},
		{"empty tokens are skipped", ",,2,,", 10, []int{1}},
		{"huge range end", "9-99999999999", 10, []int{8, 9}},
		{"overflowing range end is clamped", "1-99999999999999999999", 3, []int{0, 1, 2}},
		{"overflowing page is out of bounds", "99999999999999999999,2", 3, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePageRange(tt.text, tt.maxPage))
		})
	}
}

func TestParsePageRange_StrictlyAscending(t *testing.T) {
	inputs := []string{"10,1,5-7,6,2-3", "9-1,1-9,5", "4,4,4,3-4", "1-100"}
	for _, text := range inputs {
		got := ParsePageRange(text, 50)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i], "input %q", text)
		}
		for _, idx := range got {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 50)
		}
	}
}

func TestParseLeadingInt(t *testing.T) {
	n, ok := parseLeadingInt("  42")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = parseLeadingInt("-7x")
	assert.True(t, ok)
	assert.Equal(t, -7, n)

	_, ok = parseLeadingInt("")
	assert.False(t, ok)

	_, ok = parseLeadingInt("-")
	assert.False(t, ok)

	_, ok = parseLeadingInt("x1")
	assert.False(t, ok)

	n, ok = parseLeadingInt("99999999999999999999")
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt, n)

	n, ok = parseLeadingInt("-99999999999999999999")
	assert.True(t, ok)
	assert.Equal(t, math.MinInt, n)
}

func TestFormatPages(t *testing.T) {
	assert.Equal(t, "1,2,3,5", FormatPages([]int{0, 1, 2, 4}))
	assert.Equal(t, "", FormatPages(nil))
}

func TestPageIndices(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, PageIndices(3))
	assert.Equal(t, []int{}, PageIndices(0))
}
