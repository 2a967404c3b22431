package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"parkcross/internal/config"
	"parkcross/internal/metrics"
	"parkcross/internal/service/excel"
)

// Handler V1 API 处理器
type Handler struct {
	cfg       *config.AppConfig
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	exporter  *excel.Exporter
	downloads *exportDownloadStore
	limiter   *rate.Limiter
}

// NewHandler 创建 V1 API 处理器
func NewHandler(cfg *config.AppConfig, logger zerolog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		exporter:  excel.NewExporter(cfg.Export.SheetName),
		downloads: newExportDownloadStore(),
		limiter:   newCrossLimiter(cfg.Upload.RatePerMinute),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 三表交叉
	router.POST("/cross", h.rateLimit(), h.Cross)

	// 结果下载
	router.GET("/export/download/:token", h.DownloadExport)
}
