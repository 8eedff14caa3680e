package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	companydomain "github.com/smallbiznis/backoffice/internal/company/domain"
)

type upsertSettingsRequest struct {
	Name     *string           `json:"name"`
	Address  *string           `json:"address"`
	Phone    *string           `json:"phone"`
	Email    *string           `json:"email"`
	Currency *string           `json:"currency"`
	Metadata datatypes.JSONMap `json:"metadata"`
}

func (s *Server) GetSettings(c *gin.Context) {
	company, err := s.companySvc.Get(requestContext(c))
	if err != nil {
		if errors.Is(err, companydomain.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) UpsertSettings(c *gin.Context) {
	var req upsertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	company, err := s.companySvc.Upsert(requestContext(c), companydomain.UpsertRequest{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Currency: req.Currency,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}
