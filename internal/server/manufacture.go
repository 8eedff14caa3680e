package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	manufacturedomain "github.com/smallbiznis/backoffice/internal/manufacture/domain"
)

type convertProductionRequest struct {
	Raw      []manufacturedomain.LineRequest `json:"raw"`
	Finished []manufacturedomain.LineRequest `json:"finished"`
}

func (s *Server) ConvertProduction(c *gin.Context) {
	var req convertProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	batch, err := s.manufactureSvc.Convert(requestContext(c), manufacturedomain.ConvertRequest{
		Raw:      req.Raw,
		Finished: req.Finished,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (s *Server) ListProductionBatches(c *gin.Context) {
	batches, err := s.manufactureSvc.List(requestContext(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}
