package gin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// metadataRequest is the body of POST /api/metadata.
// ScribdURL is accepted as an alias of URL for older clients.
type metadataRequest struct {
	URL       string `json:"url"`
	ScribdURL string `json:"scribdUrl"`
	Async     bool   `json:"async"`
	TaskID    string `json:"taskId"`
}

func (r *metadataRequest) sourceURL() string {
	if u := strings.TrimSpace(r.URL); u != "" {
		return u
	}
	return strings.TrimSpace(r.ScribdURL)
}

func (s *Server) handleMetadata(c *gin.Context) {
	var req metadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON in request body"})
		return
	}

	sourceURL := req.sourceURL()
	if sourceURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing url parameter"})
		return
	}

	if req.Async {
		if s.Jobs == nil {
			c.JSON(http.StatusNotImplemented, gin.H{"success": false, "error": "Asynchronous extraction not enabled"})
			return
		}
		taskID, err := s.Jobs.Start(c.Request.Context(), sourceURL, req.TaskID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"success": true, "taskId": taskID})
		return
	}

	md, err := s.Metadata.ExtractMetadata(c.Request.Context(), sourceURL)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"metadata": md,
		"note":     PublicMetadataNote,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	taskID := strings.TrimSpace(c.Query("taskId"))
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing taskId"})
		return
	}

	task, err := s.Tasks.ReadTask(c.Request.Context(), taskID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	body := gin.H(task.Fields())
	body["success"] = true
	c.JSON(http.StatusOK, body)
}
