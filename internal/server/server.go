package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/StoicRounin/paystack-gateway/internal/config"
	"github.com/StoicRounin/paystack-gateway/internal/observability/logger"
	"github.com/StoicRounin/paystack-gateway/internal/observability/metrics"
	"github.com/StoicRounin/paystack-gateway/internal/observability/tracing"
	paymentdomain "github.com/StoicRounin/paystack-gateway/internal/payment/domain"
	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	cfg         config.Config
	log         *zap.Logger
	paymentSvc  paymentdomain.Service
	settingsSvc settingsdomain.Service
	limiter     *rateLimiter
}

type Params struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	PaymentSvc  paymentdomain.Service
	SettingsSvc settingsdomain.Service
	HTTPMetrics *metrics.HTTPMetrics `optional:"true"`
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		paymentSvc:  p.PaymentSvc,
		settingsSvc: p.SettingsSvc,
		limiter:     newRateLimiter(60, time.Minute),
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(p Params) *gin.Engine {
	if p.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(tracing.ExtractHTTP(c.Request.Context(), c.Request.Header))
		c.Next()
	})
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{SkipPaths: []string{"/healthz"}}))
	if p.HTTPMetrics != nil {
		engine.Use(metrics.GinMiddleware(p.HTTPMetrics))
	}
	return engine
}

// RegisterRoutes wires the gateway routes. The /plugins/paystack prefix
// matches the URLs handed to the provider as transaction metadata.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Health)

	plugin := engine.Group("/plugins/paystack")
	plugin.GET("/checkout/:reference", s.rateLimited(s.Checkout))
	plugin.GET("/callback", s.Callback)
	plugin.POST("/notify", s.rateLimited(s.Notify))
	plugin.GET("/notify", s.rateLimited(s.Notify))
	plugin.GET("/cancel", s.Cancel)
	plugin.GET("/fee", s.HandlingFee)

	admin := engine.Group("/admin/paystack")
	admin.GET("/settings", s.GetSettings)
	admin.PUT("/settings", s.SaveSettings)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) rateLimited(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		handler(c)
	}
}

// RunHTTP starts the HTTP listener on the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine, server *Server) {
	server.RegisterRoutes(engine)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.Addr))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Provide(NewEngine),
	fx.Invoke(RunHTTP),
)
