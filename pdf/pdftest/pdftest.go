// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// PageHeight is the MediaBox height of every generated page
const PageHeight = 792

// Build returns a PDF with one page per width. Page i has the MediaBox
// [0 0 widths[i] PageHeight], which lets tests tell pages apart after they
// have been copied between documents.
func Build(widths ...int) []byte {
	var buf bytes.Buffer
	var offsets []int

	writeObject := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	// 1: catalog, 2: page tree, then a page and its content stream per width
	kids := make([]string, len(widths))
	for i := range widths {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	writeObject("<< /Type /Catalog /Pages 2 0 R >>")
	writeObject(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(widths)))

	for i, w := range widths {
		writeObject(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> /Contents %d 0 R >>",
			w, PageHeight, 4+2*i))
		content := fmt.Sprintf("0 0 m %d %d l S", w, PageHeight)
		writeObject(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// Pages returns a PDF with count pages whose widths are base+1, base+2, ...
func Pages(base, count int) []byte {
	widths := make([]int, count)
	for i := range widths {
		widths[i] = base + i + 1
	}
	return Build(widths...)
}

// Corrupt returns bytes that carry a PDF header but no document
func Corrupt() []byte {
	return []byte("%PDF-1.4\nthis file was truncated\n")
}
