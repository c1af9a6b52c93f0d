package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"pdf_assembler/session"
)

// Config holds application configuration
type Config struct {
	Port           string
	MaxFileSize    int64
	MaxUploadFiles int
	SessionTTL     time.Duration
	Validation     string
}

func SetupRoutes(r *gin.Engine, config *Config, store *session.Store) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/sessions", func(c *gin.Context) { HandleCreateSession(c, store) })
		apiGroup.GET("/sessions/:id", func(c *gin.Context) { HandleGetSession(c, store) })
		apiGroup.DELETE("/sessions/:id", func(c *gin.Context) { HandleDeleteSession(c, store) })
		apiGroup.POST("/sessions/:id/documents", func(c *gin.Context) { HandleUpload(c, config, store) })
		apiGroup.DELETE("/sessions/:id/documents/:index", func(c *gin.Context) { HandleRemoveDocument(c, store) })
		apiGroup.POST("/sessions/:id/documents/move", func(c *gin.Context) { HandleMoveDocument(c, store) })
		apiGroup.POST("/sessions/:id/merge", func(c *gin.Context) { HandleMerge(c, store) })
		apiGroup.POST("/sessions/:id/split", func(c *gin.Context) { HandleSplit(c, store) })
	}
}
