package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetSummary(c *gin.Context) {
	summary, err := s.dashboardSvc.Summary(requestContext(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) GetRevenueByCategory(c *gin.Context) {
	revenue, err := s.dashboardSvc.RevenueByCategory(requestContext(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revenueByCategory": revenue})
}
