// Package gin provides the HTTP transport for metadata extraction and task
// status queries, built on gin.
package gin

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/docmeta"
	"github.com/gin-gonic/gin"
)

// PublicMetadataNote accompanies every successful extraction response.
const PublicMetadataNote = "This extracts publicly available metadata only. Full content requires advanced tools."

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// JobStarter starts a background extraction and returns its task ID.
type JobStarter interface {
	Start(ctx context.Context, url, taskID string) (string, error)
}

// Server is the HTTP transport around the metadata and task services.
type Server struct {
	Metadata docmeta.MetadataService
	Tasks    docmeta.TaskStore

	// Jobs serves asynchronous extraction requests. Optional.
	Jobs JobStarter

	router *gin.Engine
}

// NewServer creates a Server and registers its routes.
func NewServer(metadata docmeta.MetadataService, tasks docmeta.TaskStore, jobs JobStarter) *Server {
	s := &Server{
		Metadata: metadata,
		Tasks:    tasks,
		Jobs:     jobs,
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), corsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "error": "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
	})

	api := r.Group("/api")
	api.POST("/metadata", s.handleMetadata)
	api.OPTIONS("/metadata", handlePreflight)
	api.GET("/status", s.handleStatus)
	api.OPTIONS("/status", handlePreflight)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// corsMiddleware allows browser clients from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	}
}

func handlePreflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// errorResponse writes a failure body. Invalid input maps to 400; every
// other failure is a 500 carrying the message text.
func errorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if docmeta.ErrorCode(err) == docmeta.EINVALID {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"success": false, "error": docmeta.ErrorMessage(err)})
}
