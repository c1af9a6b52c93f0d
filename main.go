package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pdf_assembler/api"
	"pdf_assembler/pdf"
	"pdf_assembler/session"
)

const (
	// DefaultMaxFileSize is the default maximum size of one uploaded file (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultMaxUploadFiles is the default maximum number of files in one upload
	DefaultMaxUploadFiles = 50

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultSessionTTL is how long an idle session keeps its documents
	DefaultSessionTTL = 30 * time.Minute

	// SessionReapInterval is how often idle sessions are looked for
	SessionReapInterval = time.Minute

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 30 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	config := &api.Config{
		Port:           getEnv("PORT", DefaultPort),
		MaxFileSize:    getEnvInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		MaxUploadFiles: int(getEnvInt64("MAX_UPLOAD_FILES", DefaultMaxUploadFiles)),
		SessionTTL:     getEnvDuration("SESSION_TTL", DefaultSessionTTL),
		Validation:     getEnv("PDF_VALIDATION", pdf.ValidationRelaxed),
	}

	engine := pdf.NewPdfcpuEngine(config.Validation)
	store := session.NewStore(engine, config.SessionTTL, log.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Run(ctx, SessionReapInterval)

	r := gin.Default()
	r.MaxMultipartMemory = config.MaxFileSize

	// API routes with config
	api.SetupRoutes(r, config, store)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "pdf_assembler",
			"sessions": store.Len(),
		})
	})

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		log.Printf("Max file size: %d bytes, max files per upload: %d", config.MaxFileSize, config.MaxUploadFiles)
		log.Printf("Session TTL: %s, PDF validation: %s", config.SessionTTL, config.Validation)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	cancel()
	store.CloseAll()

	log.Println("Server exited gracefully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
