package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ledgerdomain "github.com/smallbiznis/backoffice/internal/ledger/domain"
)

type createTransactionRequest struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	PaidAmount  float64 `json:"paid_amount"`
}

type updateTransactionRequest struct {
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	PaidAmount  *float64 `json:"paid_amount"`
}

func (s *Server) ListTransactions(c *gin.Context) {
	transactions, err := s.ledgerSvc.List(requestContext(c), ledgerdomain.ListRequest{
		Type:     ledgerdomain.TransactionType(c.Query("type")),
		Category: c.Query("category"),
		Status:   ledgerdomain.TransactionStatus(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (s *Server) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	transaction, err := s.ledgerSvc.Create(requestContext(c), ledgerdomain.CreateRequest{
		Description: req.Description,
		Category:    req.Category,
		Type:        ledgerdomain.TransactionType(req.Type),
		Amount:      req.Amount,
		PaidAmount:  req.PaidAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

func (s *Server) GetTransactionByID(c *gin.Context) {
	transaction, err := s.ledgerSvc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (s *Server) UpdateTransaction(c *gin.Context) {
	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	transaction, err := s.ledgerSvc.Update(requestContext(c), ledgerdomain.UpdateRequest{
		ID:          c.Param("id"),
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		PaidAmount:  req.PaidAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (s *Server) DeleteTransaction(c *gin.Context) {
	if err := s.ledgerSvc.Delete(requestContext(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
