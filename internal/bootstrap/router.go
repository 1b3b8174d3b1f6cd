package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/devforge-studio/crm-backend/config"
	httpapi "github.com/devforge-studio/crm-backend/internal/api/http"
	"github.com/devforge-studio/crm-backend/internal/api/http/middleware"
	authhttp "github.com/devforge-studio/crm-backend/internal/auth/http"
	authrepo "github.com/devforge-studio/crm-backend/internal/auth/repository"
	authservice "github.com/devforge-studio/crm-backend/internal/auth/service"
	"github.com/devforge-studio/crm-backend/internal/auth/session"
	crmhttp "github.com/devforge-studio/crm-backend/internal/crm/http"
	crmrepo "github.com/devforge-studio/crm-backend/internal/crm/repository"
	"github.com/devforge-studio/crm-backend/internal/intake"
	intakehttp "github.com/devforge-studio/crm-backend/internal/intake/http"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	Cfg           *config.Config
	DB            *pgxpool.Pool
	Redis         *redis.Client
	Intake        *intake.Service
	IntakeLimiter *intakehttp.IPRateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestIDMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-CSRF-Token", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	sessions := session.NewStore(dep.Redis, session.DefaultTTL)
	userRepo := authrepo.NewUserRepo(dep.DB)
	authSvc := authservice.NewAuthService(userRepo, sessions)

	crmHandler := crmhttp.NewHandler(
		crmrepo.NewProjectRepo(dep.DB),
		crmrepo.NewCustomerRepo(dep.DB),
		crmrepo.NewCommunicationRepo(dep.DB),
		crmrepo.NewStageRepo(dep.DB),
		crmrepo.NewTaskRepo(dep.DB),
		crmrepo.NewChangeRequestRepo(dep.DB),
		crmrepo.NewClientProfileRepo(dep.DB),
	)

	public := r.Group("")
	authhttp.Register(public, authSvc, sessions)
	crmHandler.RegisterPublic(public)

	intakehttp.Register(public, dep.Intake, dep.IntakeLimiter)

	authed := r.Group("")
	authed.Use(authhttp.RequireSession(sessions))
	authed.Use(authhttp.RequireCSRF())
	crmHandler.RegisterAuthenticated(authed)

	return r
}
