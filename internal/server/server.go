package server

import (
	"embed"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	v1 "parkcross/internal/api/v1"
	"parkcross/internal/config"
	"parkcross/internal/metrics"
)

//go:embed web/index.html
var indexHTML embed.FS

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	logger  zerolog.Logger
	metrics *metrics.Metrics
	v1      *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger zerolog.Logger) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	s := &Server{
		router:  gin.New(),
		logger:  logger.With().Str("component", "server").Logger(),
		metrics: m,
		v1:      v1.NewHandler(cfg, logger, m),
	}
	s.router.MaxMultipartMemory = cfg.MaxUploadBytes() * 3

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	s.router.Use(gin.Recovery(), requestLogger(&s.logger))

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Run-Id")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	// Prometheus
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// 首页
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}
	s.router.GET("/", func(c *gin.Context) {
		data, err := indexHTML.ReadFile("web/index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// requestLogger 结构化请求日志
func requestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Request.URL.Path == "/metrics" {
			return
		}
		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration_ms", time.Since(start)).
			Str("remote_addr", c.ClientIP()).
			Msg("HTTP request")
	}
}

// Handler 返回 http.Handler，供 http.Server 使用
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics 获取指标（用于测试）
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}
