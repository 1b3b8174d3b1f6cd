// Package http exposes the CRM read/create endpoints. Listing and detail
// operations are plain fetch-and-serialize; no pagination or sorting
// beyond the stage display order is offered.
package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

// Read/create surfaces the handlers depend on; the pgx repositories
// satisfy them.
type ProjectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
}

type CustomerStore interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
}

type CommunicationStore interface {
	List(ctx context.Context) ([]domain.Communication, error)
	GetByID(ctx context.Context, id int64) (*domain.Communication, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Communication, error)
	Create(ctx context.Context, c *domain.Communication) error
}

type StageStore interface {
	List(ctx context.Context) ([]domain.ProjectStage, error)
	// Default reports the proposal stage when one exists; the handler
	// decides the fallback (a project with no stage).
	Default(ctx context.Context) (*domain.ProjectStage, bool, error)
}

type TaskLister interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error)
}

type ChangeRequestLister interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.ChangeRequest, error)
}

type ClientProfileReader interface {
	GetByCustomerID(ctx context.Context, customerID int64) (*domain.ClientProfile, error)
}

type Handler struct {
	projects       ProjectStore
	customers      CustomerStore
	communications CommunicationStore
	stages         StageStore
	tasks          TaskLister
	changes        ChangeRequestLister
	profiles       ClientProfileReader
}

func NewHandler(
	projects ProjectStore,
	customers CustomerStore,
	communications CommunicationStore,
	stages StageStore,
	tasks TaskLister,
	changes ChangeRequestLister,
	profiles ClientProfileReader,
) *Handler {
	return &Handler{
		projects:       projects,
		customers:      customers,
		communications: communications,
		stages:         stages,
		tasks:          tasks,
		changes:        changes,
		profiles:       profiles,
	}
}

// RegisterPublic wires the unauthenticated portfolio endpoints.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/projects/", h.listProjects)
	rg.GET("/projects/:id/", h.getProject)
}

// RegisterAuthenticated wires the endpoints guarded by the session
// middleware.
func (h *Handler) RegisterAuthenticated(rg *gin.RouterGroup) {
	rg.POST("/projects/", h.createProject)
	rg.GET("/projects/:id/dashboard/", h.getProject)
	rg.GET("/projects/:id/tasks/", h.listProjectTasks)
	rg.GET("/projects/:id/changes/", h.listProjectChanges)

	rg.GET("/customers/", h.listCustomers)
	rg.POST("/customers/", h.createCustomer)
	rg.GET("/customers/:id/", h.getCustomer)
	rg.GET("/customers/:id/communications/", h.listCustomerCommunications)
	rg.POST("/customers/:id/communications/", h.createCommunication)

	rg.GET("/communications/", h.listCommunications)
	rg.GET("/communications/:id/", h.getCommunication)

	rg.GET("/stages/", h.listStages)
	rg.GET("/tasks/", h.listTasksByQuery)
	rg.GET("/change-requests/", h.listChangeRequestsByQuery)
	rg.GET("/client-profile/:customerId/", h.getClientProfile)
}
