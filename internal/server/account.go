package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/smallbiznis/backoffice/internal/account/domain"
)

type createAccountRequest struct {
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status string  `json:"status"`
	Type   string  `json:"type"`
}

type updateAccountRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status *string `json:"status"`
	Type   *string `json:"type"`
}

func (s *Server) ListAccounts(c *gin.Context) {
	accounts, err := s.accountSvc.List(requestContext(c), accountdomain.ListRequest{
		Type:   accountdomain.AccountType(c.Query("type")),
		Status: accountdomain.AccountStatus(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (s *Server) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	account, err := s.accountSvc.Create(requestContext(c), accountdomain.CreateRequest{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: accountdomain.AccountStatus(req.Status),
		Type:   accountdomain.AccountType(req.Type),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (s *Server) GetAccountByID(c *gin.Context) {
	account, err := s.accountSvc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := accountdomain.UpdateRequest{
		ID:    c.Param("id"),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.Status != nil {
		status := accountdomain.AccountStatus(*req.Status)
		update.Status = &status
	}
	if req.Type != nil {
		accountType := accountdomain.AccountType(*req.Type)
		update.Type = &accountType
	}

	account, err := s.accountSvc.Update(requestContext(c), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) DeleteAccount(c *gin.Context) {
	if err := s.accountSvc.Delete(requestContext(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) AccountHasOrders(c *gin.Context) {
	hasOrders, err := s.accountSvc.HasOrders(requestContext(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_orders": hasOrders})
}
