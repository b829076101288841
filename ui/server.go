// Package ui exposes the insights engine over HTTP. The handlers own the
// upload boundary (size cap, multipart decoding); everything computational
// lives behind the service.
package ui

import (
	"log"

	"github.com/gin-gonic/gin"

	"insightsuite/internal/config"
	insightsvc "insightsuite/internal/insights"
)

// Server represents the web server for the insights dashboard API
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	service *insightsvc.Service
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, service *insightsvc.Service) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:  gin.Default(),
		cfg:     cfg,
		service: service,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/insights")
	{
		api.POST("", s.handleUpload)
		api.GET("/report", s.handleReport)
		api.GET("/leaderboard", s.handleLeaderboard)
		api.GET("/geo", s.handleGeo)
		api.GET("/profile", s.handleProfile)
		api.GET("/rows", s.handleRows)
		api.DELETE("", s.handleReset)
	}
}

// Run starts the HTTP server and blocks
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[Server] listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
