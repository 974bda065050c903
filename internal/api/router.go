package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"go-data-quality/internal/api/handler"
	_ "go-data-quality/internal/docs"
	"go-data-quality/pkg/router"
)

// NewRouter wires all API routes onto a fresh router.
func NewRouter(h *handler.Handler, log *zap.Logger, corsOrigins []string) *router.Router {
	r := router.New(log, corsOrigins)

	r.POST("/api/v1/analyses", h.Analyze)
	r.GET("/api/v1/analyses", h.ListAnalyses)
	r.GET("/api/v1/analyses/*", h.GetAnalysis)
	r.DELETE("/api/v1/analyses/*", h.DeleteAnalysis)
	r.GET("/api/v1/summary", h.GetSummary)
	r.GET("/api/v1/health", h.Health)
	r.GET("/", h.Root)

	swagger := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
	r.GET("/swagger/*", func(w http.ResponseWriter, req *http.Request) {
		swagger.ServeHTTP(w, req)
	})

	return r
}
