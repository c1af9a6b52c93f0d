package session

import (
	"bytes"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf_assembler/pdf"
	"pdf_assembler/pdf/pdftest"
)

// mediaBoxWidths reads an output PDF and returns each page's MediaBox width
func mediaBoxWidths(t *testing.T, data []byte) []int {
	t.Helper()

	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	require.NoError(t, err)
	require.NoError(t, ctx.EnsurePageCount())

	widths := make([]int, ctx.PageCount)
	for i := range widths {
		_, _, inh, err := ctx.PageDict(i+1, false)
		require.NoError(t, err)
		widths[i] = int(inh.MediaBox.Width())
	}
	return widths
}

func TestPdfcpu_IngestMergeSplit(t *testing.T) {
	engine := pdf.NewPdfcpuEngine(pdf.ValidationRelaxed)
	s := New(engine)

	result, err := s.Ingest([]RawFile{
		{Name: "a.pdf", Data: pdftest.Pages(100, 2), MimeType: pdf.MimeType},
		{Name: "corrupt.pdf", Data: pdftest.Corrupt(), MimeType: pdf.MimeType},
		{Name: "b.pdf", Data: pdftest.Pages(200, 3), MimeType: pdf.MimeType},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Appended)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "corrupt.pdf", result.Failures[0].Name)

	merged, err := s.Merge("")
	require.NoError(t, err)
	assert.Equal(t, 5, merged.PageCount)
	assert.Equal(t, []int{101, 102, 201, 202, 203}, mediaBoxWidths(t, merged.Data))

	require.NoError(t, s.Remove(0))
	split, err := s.Split("3,1", "")
	require.NoError(t, err)
	assert.Equal(t, "split_b.pdf", split.Name)
	assert.Equal(t, []int{201, 203}, mediaBoxWidths(t, split.Data))

	require.NoError(t, s.Close())
	assert.Equal(t, 0, engine.Open())
}
