package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devforge-studio/crm-backend/internal/crm/domain"
)

type stubProjects struct {
	projects []domain.Project
}

func (s *stubProjects) List(context.Context) ([]domain.Project, error) {
	return s.projects, nil
}

func (s *stubProjects) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return &s.projects[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProjects) Create(_ context.Context, p *domain.Project) error {
	p.ID = int64(len(s.projects) + 1)
	s.projects = append(s.projects, *p)
	return nil
}

type stubCustomers struct {
	customers []domain.Customer
	createErr error
}

func (s *stubCustomers) List(context.Context) ([]domain.Customer, error) {
	return s.customers, nil
}

func (s *stubCustomers) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return &s.customers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCustomers) Create(_ context.Context, c *domain.Customer) error {
	if s.createErr != nil {
		return s.createErr
	}
	c.ID = int64(len(s.customers) + 1)
	s.customers = append(s.customers, *c)
	return nil
}

type stubComms struct {
	comms []domain.Communication
}

func (s *stubComms) List(context.Context) ([]domain.Communication, error) { return s.comms, nil }

func (s *stubComms) GetByID(_ context.Context, id int64) (*domain.Communication, error) {
	for i := range s.comms {
		if s.comms[i].ID == id {
			return &s.comms[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubComms) ListByCustomer(_ context.Context, customerID int64) ([]domain.Communication, error) {
	var out []domain.Communication
	for _, c := range s.comms {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubComms) Create(_ context.Context, c *domain.Communication) error {
	c.ID = int64(len(s.comms) + 1)
	s.comms = append(s.comms, *c)
	return nil
}

type stubStages struct {
	stages []domain.ProjectStage
}

func (s *stubStages) List(context.Context) ([]domain.ProjectStage, error) {
	return append([]domain.ProjectStage(nil), s.stages...), nil
}

func (s *stubStages) Default(context.Context) (*domain.ProjectStage, bool, error) {
	for i := range s.stages {
		if s.stages[i].Name == domain.StageProposal {
			return &s.stages[i], true, nil
		}
	}
	return nil, false, nil
}

type stubTasks struct{}

func (stubTasks) ListByProject(context.Context, int64) ([]domain.Task, error) { return nil, nil }

type stubChanges struct{}

func (stubChanges) ListByProject(context.Context, int64) ([]domain.ChangeRequest, error) {
	return nil, nil
}

type stubProfiles struct{}

func (stubProfiles) GetByCustomerID(context.Context, int64) (*domain.ClientProfile, error) {
	return nil, domain.ErrNotFound
}

func newCRMRouter(projects *stubProjects, customers *stubCustomers, comms *stubComms, stages *stubStages) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(projects, customers, comms, stages, stubTasks{}, stubChanges{}, stubProfiles{})
	r := gin.New()
	g := r.Group("")
	h.RegisterPublic(g)
	h.RegisterAuthenticated(g)
	return r
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListStagesOrdering(t *testing.T) {
	stages := &stubStages{stages: []domain.ProjectStage{
		{ID: 1, Name: "proposal", Order: 0},
		{ID: 2, Name: "review", Order: 2},
		{ID: 3, Name: "active", Order: 1},
	}}
	router := newCRMRouter(&stubProjects{}, &stubCustomers{}, &stubComms{}, stages)

	rec := get(router, "/stages/")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.ProjectStage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, []string{"proposal", "active", "review"},
		[]string{got[0].Name, got[1].Name, got[2].Name})
}

func TestGetProject(t *testing.T) {
	projects := &stubProjects{projects: []domain.Project{{ID: 10, Title: "Portal"}}}
	router := newCRMRouter(projects, &stubCustomers{}, &stubComms{}, &stubStages{})

	t.Run("found", func(t *testing.T) {
		rec := get(router, "/projects/10/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Portal")
	})

	t.Run("missing id yields 404 with error body", func(t *testing.T) {
		rec := get(router, "/projects/999/")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Project not found")
	})

	t.Run("non-numeric id rejected", func(t *testing.T) {
		rec := get(router, "/projects/abc/")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateProject(t *testing.T) {
	postProject := func(router *gin.Engine, body any) *httptest.ResponseRecorder {
		data, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/projects/", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("defaults to the proposal stage when none given", func(t *testing.T) {
		projects := &stubProjects{}
		stages := &stubStages{stages: []domain.ProjectStage{
			{ID: 7, Name: domain.StageProposal, Order: 0},
			{ID: 8, Name: domain.StageActive, Order: 1},
		}}
		router := newCRMRouter(projects, &stubCustomers{}, &stubComms{}, stages)

		rec := postProject(router, gin.H{"title": "Portal rebuild"})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, projects.projects, 1)
		require.NotNil(t, projects.projects[0].CurrentStageID)
		assert.Equal(t, int64(7), *projects.projects[0].CurrentStageID)
	})

	t.Run("stage stays unset when no proposal stage exists", func(t *testing.T) {
		projects := &stubProjects{}
		router := newCRMRouter(projects, &stubCustomers{}, &stubComms{}, &stubStages{})

		rec := postProject(router, gin.H{"title": "Portal rebuild"})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, projects.projects, 1)
		assert.Nil(t, projects.projects[0].CurrentStageID)
	})

	t.Run("explicit stage wins over the default", func(t *testing.T) {
		projects := &stubProjects{}
		stages := &stubStages{stages: []domain.ProjectStage{
			{ID: 7, Name: domain.StageProposal, Order: 0},
		}}
		router := newCRMRouter(projects, &stubCustomers{}, &stubComms{}, stages)

		rec := postProject(router, gin.H{"title": "Portal rebuild", "current_stage": 9})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, projects.projects[0].CurrentStageID)
		assert.Equal(t, int64(9), *projects.projects[0].CurrentStageID)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		router := newCRMRouter(&stubProjects{}, &stubCustomers{}, &stubComms{}, &stubStages{})
		rec := postProject(router, gin.H{"description": "no title"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateCustomer(t *testing.T) {
	router := newCRMRouter(&stubProjects{}, &stubCustomers{}, &stubComms{}, &stubStages{})

	post := func(body any) *httptest.ResponseRecorder {
		data, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/customers/", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("created", func(t *testing.T) {
		rec := post(gin.H{"name": "Acme", "email": "ops@acme.example"})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		rec := post(gin.H{"name": "Acme", "email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dupRouter := newCRMRouter(&stubProjects{},
			&stubCustomers{createErr: domain.ErrDuplicateEmail}, &stubComms{}, &stubStages{})
		data, _ := json.Marshal(gin.H{"name": "Acme", "email": "ops@acme.example"})
		req := httptest.NewRequest(http.MethodPost, "/customers/", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		dupRouter.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "email already exists")
	})
}

func TestCreateCommunication(t *testing.T) {
	customers := &stubCustomers{customers: []domain.Customer{{ID: 5, Name: "Acme"}}}
	comms := &stubComms{}
	router := newCRMRouter(&stubProjects{}, customers, comms, &stubStages{})

	post := func(body any) *httptest.ResponseRecorder {
		data, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/customers/5/communications/", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("created", func(t *testing.T) {
		rec := post(gin.H{"type": domain.CommTypeCall, "notes": "Kickoff call"})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, comms.comms, 1)
		assert.Equal(t, int64(5), comms.comms[0].CustomerID)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		rec := post(gin.H{"type": "carrier_pigeon", "notes": "?"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid communication type")
	})
}

func TestTasksQueryParam(t *testing.T) {
	router := newCRMRouter(&stubProjects{}, &stubCustomers{}, &stubComms{}, &stubStages{})

	rec := get(router, "/tasks/")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "project query parameter is required")

	rec = get(router, "/tasks/?project=3")
	assert.Equal(t, http.StatusOK, rec.Code)
}
