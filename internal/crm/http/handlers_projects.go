package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devforge-studio/crm-backend/internal/api/http/middleware"
	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=project_list request_id=%s error=%v", middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("[error] operation=project_detail request_id=%s id=%d error=%v", middleware.RequestID(c), id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type createProjectReq struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Link                string     `json:"link"`
	Technologies        []string   `json:"technologies"`
	Capabilities        string     `json:"capabilities"`
	CurrentStageID      *int64     `json:"current_stage"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	stageID := req.CurrentStageID
	if stageID == nil {
		// New projects start in the proposal stage when one exists;
		// without it the stage stays unset.
		stage, ok, err := h.stages.Default(c.Request.Context())
		if err != nil {
			log.Printf("[error] operation=project_create request_id=%s default stage lookup: %v", middleware.RequestID(c), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
			return
		}
		if ok {
			stageID = &stage.ID
		}
	}

	p := &domain.Project{
		Title:               req.Title,
		Description:         req.Description,
		Link:                strings.TrimSpace(req.Link),
		Technologies:        req.Technologies,
		Capabilities:        req.Capabilities,
		CurrentStageID:      stageID,
		EstimatedCompletion: req.EstimatedCompletion,
	}
	if err := h.projects.Create(c.Request.Context(), p); err != nil {
		log.Printf("[error] operation=project_create request_id=%s error=%v", middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) listProjectTasks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respondTasks(c, id)
}

func (h *Handler) listProjectChanges(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respondChangeRequests(c, id)
}
