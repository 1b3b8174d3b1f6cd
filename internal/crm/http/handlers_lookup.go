package http

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

// listStages returns stages in display order regardless of how the
// backing store returned them.
func (h *Handler) listStages(c *gin.Context) {
	stages, err := h.stages.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=stage_list error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stages"})
		return
	}

	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].Order < stages[j].Order
	})
	c.JSON(http.StatusOK, stages)
}

func queryProjectID(c *gin.Context) (int64, bool) {
	raw := c.Query("project")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project query parameter is required"})
		return 0, false
	}
	return id, true
}

func (h *Handler) listTasksByQuery(c *gin.Context) {
	id, ok := queryProjectID(c)
	if !ok {
		return
	}
	h.respondTasks(c, id)
}

func (h *Handler) listChangeRequestsByQuery(c *gin.Context) {
	id, ok := queryProjectID(c)
	if !ok {
		return
	}
	h.respondChangeRequests(c, id)
}

func (h *Handler) respondTasks(c *gin.Context, projectID int64) {
	tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[error] operation=task_list project=%d error=%v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) respondChangeRequests(c *gin.Context, projectID int64) {
	requests, err := h.changes.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[error] operation=change_request_list project=%d error=%v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list change requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) listCommunications(c *gin.Context) {
	comms, err := h.communications.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=communication_list error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list communications"})
		return
	}
	c.JSON(http.StatusOK, comms)
}

func (h *Handler) getCommunication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comm, err := h.communications.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Communication not found"})
			return
		}
		log.Printf("[error] operation=communication_detail id=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get communication"})
		return
	}
	c.JSON(http.StatusOK, comm)
}

func (h *Handler) getClientProfile(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}

	profile, err := h.profiles.GetByCustomerID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client profile not found"})
			return
		}
		log.Printf("[error] operation=client_profile customer=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
