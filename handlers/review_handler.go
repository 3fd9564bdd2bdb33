package handlers

import (
	"errors"
	"net/http"

	"tabreview-backend/models"
	"tabreview-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles HTTP requests for extraction reviews
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// UpdateReviewRequest represents the request body for reviewing an extraction
type UpdateReviewRequest struct {
	Status        string  `json:"status" binding:"required"`
	ManualValue   *string `json:"manual_value"`
	ReviewerNotes *string `json:"reviewer_notes"`
}

// UpdateReview handles PUT /api/extractions/:id/review
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid extraction ID format",
			},
		})
		return
	}

	var req UpdateReviewRequest
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

	serviceReq := service.UpdateReviewRequest{
		ExtractionID:  id,
		Status:        models.ExtractionStatus(req.Status),
		ManualValue:   req.ManualValue,
		ReviewerNotes: req.ReviewerNotes,
	}

	result, err := h.reviewService.UpdateReview(c.Request.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReviewStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": err.Error(),
				},
			})
			return
		}
		if errors.Is(err, service.ErrExtractionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Extraction not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
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

// PendingReviews handles GET /api/projects/:id/reviews/pending
func (h *ReviewHandler) PendingReviews(c *gin.Context) {
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

	reviews, err := h.reviewService.PendingReviews(c.Request.Context(), projectID)
	if err != nil {
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
		"data": gin.H{
			"reviews": reviews,
			"total":   len(reviews),
		},
	})
}
