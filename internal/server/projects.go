package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
)

// handleListProjects returns all projects ordered by name. Projects are
// seeded reference data; there is no mutation surface for them.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// handleStats returns the per-status task counts plus the total.
func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
