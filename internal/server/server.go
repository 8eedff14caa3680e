package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/backoffice/internal/account"
	accountdomain "github.com/smallbiznis/backoffice/internal/account/domain"
	"github.com/smallbiznis/backoffice/internal/auth"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/auth/session"
	"github.com/smallbiznis/backoffice/internal/company"
	companydomain "github.com/smallbiznis/backoffice/internal/company/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/backoffice/internal/dashboard/domain"
	"github.com/smallbiznis/backoffice/internal/inventory"
	inventorydomain "github.com/smallbiznis/backoffice/internal/inventory/domain"
	"github.com/smallbiznis/backoffice/internal/ledger"
	ledgerdomain "github.com/smallbiznis/backoffice/internal/ledger/domain"
	"github.com/smallbiznis/backoffice/internal/manufacture"
	manufacturedomain "github.com/smallbiznis/backoffice/internal/manufacture/domain"
	"github.com/smallbiznis/backoffice/internal/observability"
	obsmiddleware "github.com/smallbiznis/backoffice/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/backoffice/internal/observability/metrics"
	"github.com/smallbiznis/backoffice/internal/order"
	orderdomain "github.com/smallbiznis/backoffice/internal/order/domain"
	"github.com/smallbiznis/backoffice/internal/product"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/internal/seed"
	seeddomain "github.com/smallbiznis/backoffice/internal/seed/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	account.Module,
	product.Module,
	inventory.Module,
	ledger.Module,
	order.Module,
	manufacture.Module,
	dashboard.Module,
	company.Module,
	seed.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	genID          *snowflake.Node
	sessions       *session.Manager
	authSvc        authdomain.Service
	accountSvc     accountdomain.Service
	productSvc     productdomain.Service
	inventorySvc   inventorydomain.Service
	ledgerSvc      ledgerdomain.Service
	orderSvc       orderdomain.Service
	manufactureSvc manufacturedomain.Service
	dashboardSvc   dashboarddomain.Service
	companySvc     companydomain.Service
	seedSvc        seeddomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	Sessions       *session.Manager
	AuthSvc        authdomain.Service
	AccountSvc     accountdomain.Service
	ProductSvc     productdomain.Service
	InventorySvc   inventorydomain.Service
	LedgerSvc      ledgerdomain.Service
	OrderSvc       orderdomain.Service
	ManufactureSvc manufacturedomain.Service
	DashboardSvc   dashboarddomain.Service
	CompanySvc     companydomain.Service
	SeedSvc        seeddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		sessions:       p.Sessions,
		authSvc:        p.AuthSvc,
		accountSvc:     p.AccountSvc,
		productSvc:     p.ProductSvc,
		inventorySvc:   p.InventorySvc,
		ledgerSvc:      p.LedgerSvc,
		orderSvc:       p.OrderSvc,
		manufactureSvc: p.ManufactureSvc,
		dashboardSvc:   p.DashboardSvc,
		companySvc:     p.CompanySvc,
		seedSvc:        p.SeedSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.WebAuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.WebAuthRequired())

	// -------- Accounts --------
	api.GET("/accounts", s.ListAccounts)
	api.POST("/accounts", s.CreateAccount)
	api.GET("/accounts/:id", s.GetAccountByID)
	api.PATCH("/accounts/:id", s.UpdateAccount)
	api.DELETE("/accounts/:id", s.DeleteAccount)
	api.GET("/accounts/:id/has-orders", s.AccountHasOrders)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)
	api.POST("/products/:id/adjust-stock", s.AdjustStock)

	// -------- Stock movements --------
	api.GET("/stock-movements", s.ListStockMovements)

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrderByID)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.GET("/orders/:id/items", s.ListOrderItems)

	// -------- Transactions --------
	api.GET("/transactions", s.ListTransactions)
	api.POST("/transactions", s.CreateTransaction)
	api.GET("/transactions/:id", s.GetTransactionByID)
	api.PATCH("/transactions/:id", s.UpdateTransaction)
	api.DELETE("/transactions/:id", s.DeleteTransaction)

	// -------- Manufacturing --------
	api.GET("/manufacture", s.ListProductionBatches)
	api.POST("/manufacture", s.ConvertProduction)

	// -------- Dashboard --------
	api.GET("/summary", s.GetSummary)
	api.GET("/revenue/category", s.GetRevenueByCategory)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpsertSettings)

	// -------- Demo data --------
	api.POST("/demo/generate", s.GenerateDemoData)
	api.POST("/demo/delete", s.DeleteDemoData)
}
