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

// EvaluationHandler handles HTTP requests for extraction quality evaluation
type EvaluationHandler struct {
	evaluationService *service.EvaluationService
	taskService       *service.TaskService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationService *service.EvaluationService, taskService *service.TaskService) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: evaluationService,
		taskService:       taskService,
	}
}

// EvaluationItemRequest is one document and field pair with its human
// reference value
type EvaluationItemRequest struct {
	DocumentID string  `json:"document_id" binding:"required"`
	FieldName  string  `json:"field_name" binding:"required"`
	HumanValue *string `json:"human_value"`
}

// EvaluateRequest represents the request body for evaluating a project
type EvaluateRequest struct {
	Items []EvaluationItemRequest `json:"items" binding:"required"`
}

// Evaluate handles POST /api/projects/:id/evaluate
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
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

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	items := make([]service.EvaluationItem, 0, len(req.Items))
	for _, item := range req.Items {
		docID, err := uuid.Parse(item.DocumentID)
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
		items = append(items, service.EvaluationItem{
			DocumentID: docID,
			FieldName:  item.FieldName,
			HumanValue: item.HumanValue,
		})
	}

	// Create task (synchronous, fast)
	task, err := h.taskService.CreateTask(c.Request.Context(), models.TaskTypeEvaluate, &projectID)
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
		if err := h.evaluationService.RunEvaluation(bgCtx, task.ID, projectID, items); err != nil {
			// Error is logged and stored in task.ErrorMessage
			// No need to return to HTTP client (they'll poll status)
			log.Printf("Evaluation task %s failed: %v", task.ID, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"task_id": task.ID,
			"status":  "started",
			"message": "Evaluation started in background",
		},
	})
}

// Report handles GET /api/projects/:id/evaluation-report
func (h *EvaluationHandler) Report(c *gin.Context) {
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

	result, err := h.evaluationService.Report(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
