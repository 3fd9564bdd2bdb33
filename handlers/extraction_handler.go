package handlers

import (
	"context"
	"log"
	"net/http"

	"tabreview-backend/models"
	"tabreview-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractionHandler handles HTTP requests for extraction runs and task
// polling
type ExtractionHandler struct {
	extractionService *service.ExtractionService
	taskService       *service.TaskService
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(extractionService *service.ExtractionService, taskService *service.TaskService) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		taskService:       taskService,
	}
}

// Extract handles POST /api/projects/:id/extract
func (h *ExtractionHandler) Extract(c *gin.Context) {
	projectIDStr := c.Param("id")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid project ID format",
			},
		})
		return
	}

	var documentID *uuid.UUID
	if docIDStr := c.Query("document_id"); docIDStr != "" {
		docID, err := uuid.Parse(docIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DOCUMENT_ID",
					"message": "Invalid document_id format",
				},
			})
			return
		}
		documentID = &docID
	}

	fields, err := h.extractionService.ResolveFields(c.Request.Context(), projectID)
	if err != nil {
		switch err {
		case service.ErrProjectNotFound:
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Project not found",
				},
			})
		case service.ErrFieldTemplateNotSet:
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_FIELD_TEMPLATE",
					"message": "Project has no field template",
				},
			})
		case service.ErrTemplateNotFound:
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Field template not found",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXTRACTION_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	// Create task (synchronous, fast)
	task, err := h.taskService.CreateTask(c.Request.Context(), models.TaskTypeExtract, &projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Spawn background goroutine for actual processing
	// Use background context (not request context) to avoid cancellation
	go func() {
		bgCtx := context.Background()
		if err := h.extractionService.RunExtraction(bgCtx, task.ID, projectID, documentID, fields); err != nil {
			// Error is logged and stored in task.ErrorMessage
			// No need to return to HTTP client (they'll poll status)
			log.Printf("Extraction task %s failed: %v", task.ID, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"task_id": task.ID,
			"status":  "started",
			"message": "Extraction started in background",
		},
	})
}

// GetTask handles GET /api/tasks/:id
func (h *ExtractionHandler) GetTask(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid task ID format",
			},
		})
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Task not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
	})
}
