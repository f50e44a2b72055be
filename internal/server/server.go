package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smartsellhq/smartsell/internal/auth"
	authdomain "github.com/smartsellhq/smartsell/internal/auth/domain"
	"github.com/smartsellhq/smartsell/internal/config"
	"github.com/smartsellhq/smartsell/internal/currency"
	currencydomain "github.com/smartsellhq/smartsell/internal/currency/domain"
	"github.com/smartsellhq/smartsell/internal/customer"
	customerdomain "github.com/smartsellhq/smartsell/internal/customer/domain"
	"github.com/smartsellhq/smartsell/internal/observability"
	obsmiddleware "github.com/smartsellhq/smartsell/internal/observability/logger"
	obsmetrics "github.com/smartsellhq/smartsell/internal/observability/metrics"
	obstracing "github.com/smartsellhq/smartsell/internal/observability/tracing"
	"github.com/smartsellhq/smartsell/internal/order"
	orderdomain "github.com/smartsellhq/smartsell/internal/order/domain"
	"github.com/smartsellhq/smartsell/internal/pixel"
	pixeldomain "github.com/smartsellhq/smartsell/internal/pixel/domain"
	"github.com/smartsellhq/smartsell/internal/ratelimit"
	"github.com/smartsellhq/smartsell/internal/store"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/smartsellhq/smartsell/internal/upload"
	uploaddomain "github.com/smartsellhq/smartsell/internal/upload/domain"
	"github.com/smartsellhq/smartsell/internal/workspace"
	workspacedomain "github.com/smartsellhq/smartsell/internal/workspace/domain"
	redispkg "github.com/smartsellhq/smartsell/pkg/redis"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	redispkg.Module,
	ratelimit.Module,
	auth.Module,
	workspace.Module,
	store.Module,
	currency.Module,
	customer.Module,
	order.Module,
	pixel.Module,
	upload.Module,
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
	r.Use(obstracing.GinMiddleware())
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

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
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
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	authSvc      authdomain.Service
	workspaceSvc workspacedomain.Service
	storeSvc     storedomain.Service
	currencySvc  currencydomain.Service
	customerSvc  customerdomain.Service
	orderSvc     orderdomain.Service
	pixelSvc     pixeldomain.Service
	uploadSvc    uploaddomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	AuthSvc      authdomain.Service
	WorkspaceSvc workspacedomain.Service
	StoreSvc     storedomain.Service
	CurrencySvc  currencydomain.Service
	CustomerSvc  customerdomain.Service
	OrderSvc     orderdomain.Service
	PixelSvc     pixeldomain.Service
	UploadSvc    uploaddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		authSvc:      p.AuthSvc,
		workspaceSvc: p.WorkspaceSvc,
		storeSvc:     p.StoreSvc,
		currencySvc:  p.CurrencySvc,
		customerSvc:  p.CustomerSvc,
		orderSvc:     p.OrderSvc,
		pixelSvc:     p.PixelSvc,
		uploadSvc:    p.UploadSvc,
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
	auth.POST("/google", s.LoginWithGoogle)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
	auth.POST("/password", s.AuthRequired(), s.ChangePassword)

	user := auth.Group("/user", s.AuthRequired())
	{
		user.GET("/workspaces", s.ListUserWorkspaces)
	}
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/locales", s.ListLocales)

	api.POST("/workspaces", s.AuthRequired(), s.CreateWorkspace)

	ws := api.Group("", s.AuthRequired(), s.WorkspaceContext())

	ws.GET("/workspace", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.GetWorkspace)

	// -------- Stores --------
	ws.GET("/stores", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.ListStores)
	ws.POST("/stores", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.CreateStore)
	ws.GET("/stores/:id", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.GetStoreByID)
	ws.PATCH("/stores/:id", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.UpdateStore)
	ws.DELETE("/stores/:id", s.requireRole(workspacedomain.RoleOwner), s.DeleteStore)

	// -------- Currency catalog --------
	ws.GET("/currencies", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.ListCurrencies)
	ws.POST("/currencies", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.CreateCurrency)
	ws.PATCH("/currencies/:id", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.UpdateCurrency)
	ws.DELETE("/currencies/:id", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.DeleteCurrency)

	// -------- Store currency settings --------
	ws.GET("/stores/:id/currency-settings", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.GetStoreCurrencySettings)
	ws.PATCH("/stores/:id/currency-settings", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.UpdateStoreCurrencySettings)

	// -------- Customers --------
	ws.GET("/stores/:id/customers", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.ListCustomers)
	ws.POST("/stores/:id/customers", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.CreateCustomer)
	ws.GET("/stores/:id/customers/:customerId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.GetCustomerByID)
	ws.PATCH("/stores/:id/customers/:customerId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.UpdateCustomer)
	ws.DELETE("/stores/:id/customers/:customerId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.DeleteCustomer)

	// -------- Orders --------
	ws.GET("/stores/:id/orders", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.ListOrders)
	ws.POST("/stores/:id/orders", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.CreateOrder)
	ws.GET("/stores/:id/orders/:orderId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.GetOrderByID)
	ws.POST("/stores/:id/orders/:orderId/status", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.UpdateOrderStatus)

	// -------- Pixels --------
	ws.GET("/stores/:id/pixels", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.ListPixels)
	ws.POST("/stores/:id/pixels", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.CreatePixel)
	ws.PATCH("/stores/:id/pixels/:pixelId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.UpdatePixel)
	ws.DELETE("/stores/:id/pixels/:pixelId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.DeletePixel)
	ws.POST("/stores/:id/pixels/:pixelId/check", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.CheckPixel)

	// -------- Uploads --------
	ws.GET("/stores/:id/uploads", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.ListUploads)
	ws.POST("/stores/:id/uploads", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.CreateUpload)
	ws.GET("/stores/:id/uploads/:uploadId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin, workspacedomain.RoleMember), s.DownloadUpload)
	ws.DELETE("/stores/:id/uploads/:uploadId", s.requireRole(workspacedomain.RoleOwner, workspacedomain.RoleAdmin), s.DeleteUpload)
}
