package handlers

import (
	"net/http"
	"strconv"

	"tabreview-backend/models"
	"tabreview-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	FieldTemplateID *string `json:"field_template_id"`
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
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

	var templateID *uuid.UUID
	if req.FieldTemplateID != nil && *req.FieldTemplateID != "" {
		tid, err := uuid.Parse(*req.FieldTemplateID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TEMPLATE_ID",
					"message": "Invalid field_template_id format",
				},
			})
			return
		}
		templateID = &tid
	}

	serviceReq := service.CreateProjectRequest{
		Name:            req.Name,
		Description:     req.Description,
		FieldTemplateID: templateID,
	}

	result, err := h.projectService.CreateProject(c.Request.Context(), serviceReq)
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

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Project,
	})
}

// projectInfoResponse is a project with its document and extraction counts
type projectInfoResponse struct {
	*models.Project
	DocumentCount   int `json:"document_count"`
	ExtractionCount int `json:"extraction_count"`
}

// GetProject handles GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
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

	serviceReq := service.GetProjectRequest{
		ID: id,
	}

	result, err := h.projectService.GetProject(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Project not found",
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
		"data": projectInfoResponse{
			Project:         result.Project,
			DocumentCount:   result.DocumentCount,
			ExtractionCount: result.ExtractionCount,
		},
	})
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	serviceReq := service.ListProjectsRequest{
		Limit:  limit,
		Offset: skip,
	}

	result, err := h.projectService.ListProjects(c.Request.Context(), serviceReq)
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
			"projects": result.Projects,
			"total":    len(result.Projects),
		},
	})
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	FieldTemplateID *string `json:"field_template_id"`
	Status          string  `json:"status"`
}

// UpdateProject handles PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
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

	var req UpdateProjectRequest
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

	serviceReq := service.UpdateProjectRequest{
		ID: id,
	}
	if req.Name != "" {
		serviceReq.Name = &req.Name
	}
	if req.Description != nil {
		serviceReq.Description = req.Description
	}
	if req.FieldTemplateID != nil && *req.FieldTemplateID != "" {
		tid, err := uuid.Parse(*req.FieldTemplateID)
		if err == nil {
			serviceReq.FieldTemplateID = &tid
		}
	}
	if req.Status != "" {
		status := models.ProjectStatus(req.Status)
		serviceReq.Status = &status
	}

	result, err := h.projectService.UpdateProject(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Project not found",
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
		"data":    result.Project,
	})
}
