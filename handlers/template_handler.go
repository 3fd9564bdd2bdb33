package handlers

import (
	"errors"
	"net/http"

	"tabreview-backend/models"
	"tabreview-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TemplateHandler handles HTTP requests for field templates
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplateRequest represents the request body for creating a field
// template
type CreateTemplateRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description *string                `json:"description"`
	Fields      []models.TemplateField `json:"fields" binding:"required"`
}

// CreateTemplate handles POST /api/field-templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
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

	serviceReq := service.CreateTemplateRequest{
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
	}

	result, err := h.templateService.CreateTemplate(c.Request.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNameRequired) ||
			errors.Is(err, service.ErrTemplateFieldsRequired) ||
			errors.Is(err, service.ErrTemplateFieldInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Template,
	})
}

// ListTemplates handles GET /api/field-templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	result, err := h.templateService.ListTemplates(c.Request.Context(), service.ListTemplatesRequest{})
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
			"templates": result.Templates,
			"total":     len(result.Templates),
		},
	})
}

// GetTemplate handles GET /api/field-templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid template ID format",
			},
		})
		return
	}

	serviceReq := service.GetTemplateRequest{
		ID: id,
	}

	result, err := h.templateService.GetTemplate(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Field template not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Template,
	})
}
