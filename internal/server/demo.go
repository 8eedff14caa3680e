package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GenerateDemoData(c *gin.Context) {
	report, err := s.seedSvc.Generate(requestContext(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (s *Server) DeleteDemoData(c *gin.Context) {
	if err := s.seedSvc.Delete(requestContext(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
