package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"pdf_assembler/pdf"
	"pdf_assembler/session"
)

// moveRequest is bound from a form or JSON body
type moveRequest struct {
	OldIndex *int `form:"old_index" json:"old_index" binding:"required"`
	NewIndex *int `form:"new_index" json:"new_index" binding:"required"`
}

type failureResponse struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func HandleCreateSession(c *gin.Context, store *session.Store) {
	s := store.Create()
	c.JSON(http.StatusCreated, s.State())
}

func HandleGetSession(c *gin.Context, store *session.Store) {
	s, ok := lookupSession(c, store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.State())
}

func HandleDeleteSession(c *gin.Context, store *session.Store) {
	if err := store.Delete(c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete session")
		return
	}
	c.Status(http.StatusNoContent)
}

func HandleUpload(c *gin.Context, config *Config, store *session.Store) {
	s, ok := lookupSession(c, store)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	headers := form.File[FormFieldPDF]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if config.MaxUploadFiles > 0 && len(headers) > config.MaxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many files: %d exceeds maximum allowed %d", len(headers), config.MaxUploadFiles),
		})
		return
	}

	// Files that cannot be read are handed on with their error so failures keep input order
	files := make([]session.RawFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUploadedFile(header, config.MaxFileSize)
		if err != nil {
			file = session.RawFile{Name: header.Filename, MimeType: header.Header.Get("Content-Type"), Err: err}
		}
		files = append(files, file)
	}

	result, err := s.Ingest(files)
	if err != nil {
		respondError(c, err, "Failed to load files")
		return
	}
	failures := make([]failureResponse, 0, len(result.Failures))
	for _, f := range result.Failures {
		log.Printf("PDF read error: %v", f)
		failures = append(failures, failureResponse{Name: f.Name, Error: f.Message()})
	}

	c.JSON(http.StatusOK, gin.H{
		"appended": result.Appended,
		"skipped":  result.Skipped,
		"failures": failures,
		"session":  s.State(),
	})
}

func HandleRemoveDocument(c *gin.Context, store *session.Store) {
	s, ok := lookupSession(c, store)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document index"})
		return
	}

	if err := s.Remove(index); err != nil {
		respondError(c, err, "Failed to remove document")
		return
	}
	c.JSON(http.StatusOK, s.State())
}

func HandleMoveDocument(c *gin.Context, store *session.Store) {
	s, ok := lookupSession(c, store)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old_index and new_index are required"})
		return
	}

	if err := s.Move(*req.OldIndex, *req.NewIndex); err != nil {
		respondError(c, err, "Failed to move document")
		return
	}
	c.JSON(http.StatusOK, s.State())
}

func HandleMerge(c *gin.Context, store *session.Store) {
	s, ok := lookupSession(c, store)
	if !ok {
		return
	}

	out, err := s.Merge(c.PostForm("filename"))
	if err != nil {
		log.Printf("PDF merge error: %v", err)
		if errors.Is(err, session.ErrEngine) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": MergeFailedMessage})
			return
		}
		respondError(c, err, MergeFailedMessage)
		return
	}
	sendPDF(c, out)
}

func HandleSplit(c *gin.Context, store *session.Store) {
	s, ok := lookupSession(c, store)
	if !ok {
		return
	}

	out, err := s.Split(c.PostForm("pages"), c.PostForm("filename"))
	if err != nil {
		log.Printf("PDF split error: %v", err)
		if errors.Is(err, session.ErrEngine) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": SplitFailedMessage + truncate(engineCause(err))})
			return
		}
		respondError(c, err, "PDF split failed")
		return
	}
	sendPDF(c, out)
}

func lookupSession(c *gin.Context, store *session.Store) (*session.Session, bool) {
	s, err := store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return s, true
}

// respondError maps session errors to status codes; anything unknown is a 500 with fallback
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "Another operation is in progress"})
	case errors.Is(err, session.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document index out of range"})
	case errors.Is(err, session.ErrEmptyRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": EmptyRangeMessage})
	case errors.Is(err, session.ErrEmptySelection):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": EmptySelectionMessage})
	case errors.Is(err, session.ErrMergeRequiresTwo), errors.Is(err, session.ErrSplitRequiresOne):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("PDF operation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// sendPDF writes an assembled document as a download
func sendPDF(c *gin.Context, out *session.Output) {
	filename := sanitizeFilename(out.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Page-Count", strconv.Itoa(out.PageCount))
	c.Data(http.StatusOK, out.MimeType, out.Data)
}

// readUploadedFile reads one multipart file and determines its declared media type.
// Parts sent without a specific type are sniffed.
func readUploadedFile(header *multipart.FileHeader, maxSize int64) (session.RawFile, error) {
	if maxSize > 0 && header.Size > maxSize {
		return session.RawFile{}, fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	file, err := header.Open()
	if err != nil {
		return session.RawFile{}, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return session.RawFile{}, fmt.Errorf("failed to read file: %v", err)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || strings.HasPrefix(mimeType, "application/octet-stream") {
		mimeType = mimetype.Detect(data).String()
	}

	return session.RawFile{Name: header.Filename, Data: data, MimeType: mimeType}, nil
}

// engineCause strips the wrapping added by the session package, keeping the engine's own message
func engineCause(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && strings.HasPrefix(msg, session.ErrEngine.Error()) {
		return msg[i+2:]
	}
	return msg
}

// truncate shortens long error messages but keeps the key info
func truncate(msg string) string {
	if len(msg) > MaxErrorMessageLength {
		return msg[:MaxErrorMessageLength] + "..."
	}
	return msg
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	// Get just the base filename to prevent path issues
	filename = filepath.Base(filename)

	// Remove any remaining dangerous characters
	filename = strings.TrimSpace(filename)

	// If empty after sanitization, use default
	if filename == "" || filename == "." || strings.EqualFold(filename, pdf.Extension) {
		filename = DefaultDownloadName
	}

	return filename
}
