package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		log.Printf("[error] operation=customer_list error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cust, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		log.Printf("[error] operation=customer_detail id=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get customer"})
		return
	}
	c.JSON(http.StatusOK, cust)
}

type createCustomerReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req createCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a valid email are required"})
		return
	}

	cust := &domain.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	if err := h.customers.Create(c.Request.Context(), cust); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already exists"})
			return
		}
		log.Printf("[error] operation=customer_create error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *Handler) listCustomerCommunications(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comms, err := h.communications.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		log.Printf("[error] operation=communication_list customer=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list communications"})
		return
	}
	c.JSON(http.StatusOK, comms)
}

type createCommunicationReq struct {
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

func (h *Handler) createCommunication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createCommunicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !domain.ValidCommType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid communication type"})
		return
	}

	comm := &domain.Communication{
		CustomerID: id,
		Type:       req.Type,
		Notes:      req.Notes,
	}
	if err := h.communications.Create(c.Request.Context(), comm); err != nil {
		log.Printf("[error] operation=communication_create customer=%d error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create communication"})
		return
	}
	c.JSON(http.StatusCreated, comm)
}
