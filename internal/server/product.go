package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
)

type createProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Unit        string   `json:"unit"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	CostPrice   float64  `json:"cost_price"`
	InStock     float64  `json:"in_stock"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	CostPrice   *float64 `json:"cost_price"`
}

type adjustStockRequest struct {
	Delta       float64 `json:"delta"`
	Description string  `json:"description"`
}

func (s *Server) ListProducts(c *gin.Context) {
	products, err := s.productSvc.List(requestContext(c), productdomain.ListRequest{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Create(requestContext(c), productdomain.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		Category:    req.Category,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		InStock:     req.InStock,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) GetProductByID(c *gin.Context) {
	product, err := s.productSvc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Update(requestContext(c), productdomain.UpdateRequest{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		Category:    req.Category,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.productSvc.Delete(requestContext(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	movement, err := s.inventorySvc.Adjust(requestContext(c), inventorydomain.AdjustRequest{
		ProductID:   c.Param("id"),
		Delta:       req.Delta,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func (s *Server) ListStockMovements(c *gin.Context) {
	movements, err := s.inventorySvc.ListMovements(requestContext(c), inventorydomain.ListRequest{
		ProductID: c.Query("product_id"),
		Type:      inventorydomain.MovementType(c.Query("type")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock_movements": movements})
}
