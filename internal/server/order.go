package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
)

type createOrderRequest struct {
	AccountID   string                    `json:"account_id"`
	Type        string                    `json:"type"`
	Items       []orderdomain.LineRequest `json:"items"`
	TotalAmount float64                   `json:"total_amount"`
	PaidAmount  float64                   `json:"paid_amount"`
}

type updateOrderRequest struct {
	Status     *string  `json:"status"`
	PaidAmount *float64 `json:"paid_amount"`
}

func (s *Server) ListOrders(c *gin.Context) {
	orders, err := s.orderSvc.List(requestContext(c), orderdomain.ListRequest{
		Type:   orderdomain.OrderType(c.Query("type")),
		Status: orderdomain.OrderStatus(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.Create(requestContext(c), orderdomain.CreateRequest{
		AccountID:   req.AccountID,
		Type:        orderdomain.OrderType(req.Type),
		Lines:       req.Items,
		TotalAmount: req.TotalAmount,
		PaidAmount:  req.PaidAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) GetOrderByID(c *gin.Context) {
	order, err := s.orderSvc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := orderdomain.UpdateRequest{
		ID:         c.Param("id"),
		PaidAmount: req.PaidAmount,
	}
	if req.Status != nil {
		status := orderdomain.OrderStatus(*req.Status)
		update.Status = &status
	}

	order, err := s.orderSvc.Update(requestContext(c), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(requestContext(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ListOrderItems(c *gin.Context) {
	items, err := s.orderSvc.ListItems(requestContext(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
