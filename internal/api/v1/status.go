package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkcross/internal/config"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Name             string   `json:"name"`
	Version          string   `json:"version"`
	AcceptedStatuses []string `json:"acceptedStatuses"` // 参与交叉的 Estado
	PreviewRows      int      `json:"previewRows"`
	MaxFileSizeMB    int      `json:"maxFileSizeMB"`
	ExportFileName   string   `json:"exportFileName"`
	PendingDownloads int      `json:"pendingDownloads"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Name:             "parkcross",
		Version:          config.Version,
		AcceptedStatuses: h.cfg.Crossing.AcceptedStatuses,
		PreviewRows:      h.cfg.Crossing.PreviewRows,
		MaxFileSizeMB:    h.cfg.Upload.MaxFileSizeMB,
		ExportFileName:   h.cfg.Export.FileName,
		PendingDownloads: h.downloads.len(),
	})
}
