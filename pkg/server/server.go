package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/query"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/validate"
)

// Server 挂单配置服务的 HTTP 层
// 只做传输编解码与路由，业务语义全部在校验引擎与查询服务里
type Server struct {
	engine  *validate.Engine
	queries *query.Service
	log     *zap.Logger
	router  *gin.Engine
	http    *http.Server
}

// New 创建 HTTP 服务
func New(engine *validate.Engine, queries *query.Service, mode string, log *zap.Logger) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	s := &Server{
		engine:  engine,
		queries: queries,
		log:     log,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()
	return s
}

// Router 返回底层路由，测试时直接驱动
func (s *Server) Router() *gin.Engine { return s.router }

// Run 启动监听，阻塞到 Shutdown 被调用
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	s.log.Info("HTTP 服务启动", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown 优雅停机
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api/v1")

	api.GET("/health", s.handleHealth)

	// 第1步：车型 / 品牌 / 型号
	api.GET("/bike-types", s.handleListBikeTypes)
	api.GET("/brands", s.handleListBrands)
	api.GET("/brands/:brand/models", s.handleListModels)
	api.GET("/brands/:brand/models/:model", s.handleModelDetails)

	// 第2步：技术参数选项与字段要求
	api.GET("/bike-types/:bike_type/requirements", s.handleRequirements)
	api.GET("/bike-types/:bike_type/options", s.handleOptions)
	api.GET("/bike-types/:bike_type/components", s.handleComponentsForBikeType)
	api.GET("/components/categories", s.handleComponentCategories)

	// 第3步：国家 / 城市 / 寄送
	api.GET("/countries", s.handleListCountries)
	api.GET("/countries/:code", s.handleCountryDetails)
	api.GET("/countries/:code/cities", s.handleCities)
	api.GET("/countries/:code/shipping-options", s.handleShippingOptions)

	// 第5步：货币 / 支付 / 定价
	api.GET("/currencies", s.handleListCurrencies)
	api.GET("/currencies/:code", s.handleCurrencyDetails)
	api.GET("/currencies/:code/payment-methods", s.handlePaymentMethods)
	api.POST("/pricing/suggestion", s.handlePriceSuggestion)
	api.POST("/pricing/fees", s.handleFees)

	// 第6步：照片指引
	api.GET("/photos/requirements", s.handlePhotoRequirements)

	// 各步骤校验
	api.POST("/listing/steps/:step/validate", s.handleValidateStep)
}

// requestLogger 请求级访问日志
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("请求完成",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
