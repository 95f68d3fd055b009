package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"probimport/internal/handler"
	"probimport/internal/metrics"
	"probimport/internal/middleware"
	"probimport/internal/mount"
	"probimport/internal/service"
)

// ImportFeature is the mount key of the markdown import routes.
const ImportFeature = "problem-markdown-import"

// Deps holds everything Setup wires into the engine.
type Deps struct {
	AuthService    service.AuthService
	ParseHandler   *handler.ParseHandler
	ProblemHandler *handler.ProblemHandler
	HealthHandler  *handler.HealthHandler
	AllowedOrigins []string
	Logger         *zap.Logger
	// Mounts guards one-time feature installation. Nil uses a registry private to the engine.
	Mounts *mount.Registry
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(d Deps) (*gin.Engine, error) {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(metrics.Middleware())

	// Health checks and operations
	r.GET("/healthz", d.HealthHandler.Liveness)
	r.GET("/readyz", d.HealthHandler.Readiness)
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	mounts := d.Mounts
	if mounts == nil {
		mounts = &mount.Registry{}
	}
	if _, err := MountImport(r, mounts, d.AuthService, d.ParseHandler); err != nil {
		return nil, err
	}

	// Problem store - staff only
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(d.AuthService))
	v1.Use(middleware.RequireStaff())

	problems := v1.Group("/problems")
	problems.POST("", d.ProblemHandler.Create)
	problems.GET("", d.ProblemHandler.List)
	problems.GET("/export/csv", d.ProblemHandler.ExportCSV)
	problems.GET("/:id", d.ProblemHandler.GetByID)
	problems.PUT("/:id", d.ProblemHandler.Update)

	return r, nil
}

// MountImport registers the parse endpoints on the add and change pages of
// the problem admin. Repeated calls with the same registry are no-ops and
// report false.
func MountImport(r gin.IRouter, mounts *mount.Registry, authSvc service.AuthService, parseH *handler.ParseHandler) (bool, error) {
	return mounts.Install(ImportFeature, func() error {
		admin := r.Group("/admin/problems")
		admin.Use(middleware.AuthMiddleware(authSvc))
		admin.POST("/parse-markdown/", parseH.ParseMarkdown)
		admin.POST("/:id/parse-markdown/", parseH.ParseMarkdown)
		return nil
	})
}
