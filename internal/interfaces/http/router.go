package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemPatent-Insight/internal/application/analysis"
	"github.com/turtacn/ChemPatent-Insight/internal/config"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
	promm "github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemPatent-Insight/internal/interfaces/http/handlers"
)

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(cfg *config.Config, svc *analysis.Service, metrics *promm.Metrics, logger logging.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxBodySize
	r.Use(RequestLogger(logger), Recovery(logger), CORS(), MetricsMiddleware(metrics))

	h := handlers.NewAnalysisHandler(svc, cfg.Extraction.MaxFileSize, logger)

	r.GET("/healthz", h.Health)
	r.GET("/readyz", h.Ready)
	if metrics != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/patents/upload", h.Submit)
		v1.GET("/patents/:id/status", h.Status)
		v1.GET("/patents/:id/result", h.Result)
		v1.GET("/patents/:id/report", h.Report)
	}
	return r
}
