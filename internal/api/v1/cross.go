package v1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"parkcross/internal/metrics"
	"parkcross/internal/model"
	"parkcross/internal/service/crossing"
	"parkcross/internal/service/excel"
)

// 上传字段名
const (
	FieldRequests    = "pqr"
	FieldLedger      = "cartera"
	FieldAssignments = "parq"
)

// CrossResponse 交叉结果
type CrossResponse struct {
	RunID       string           `json:"runId"`
	Columns     []string         `json:"columns"`
	Preview     []model.Row      `json:"preview"`
	Report      *crossing.Report `json:"report"`
	DownloadURL string           `json:"downloadUrl"`
}

// uploadError 上传校验失败，返回 400
type uploadError struct {
	field string
	msg   string
}

func (e *uploadError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.msg)
}

// Cross 上传三个工作簿并执行交叉
// POST /api/cross
func (h *Handler) Cross(c *gin.Context) {
	inputs, err := h.readInputs(c)
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ue.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	log := h.logger.With().Str("component", "api").Logger()
	result, err := crossing.Run(inputs, crossing.Options{
		AcceptedStatuses: h.cfg.Crossing.AcceptedStatuses,
		Logger:           &log,
	})
	if err != nil {
		if errors.Is(err, excel.ErrMalformedWorkbook) {
			h.metrics.ObserveFailure(metrics.OutcomeMalformed)
			log.Warn().Err(err).Msg("工作簿无法解析")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.metrics.ObserveFailure(metrics.OutcomeError)
		log.Error().Err(err).Msg("交叉失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := h.exporter.ExportBytes(result.Table)
	if err != nil {
		h.metrics.ObserveFailure(metrics.OutcomeError)
		log.Error().Err(err).Str("run_id", result.Report.RunID).Msg("导出失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成导出文件失败"})
		return
	}
	h.metrics.ObserveRun(result.Report)

	token := h.downloads.put(result.Report.RunID, data, h.cfg.DownloadTTL())

	c.JSON(http.StatusOK, CrossResponse{
		RunID:       result.Report.RunID,
		Columns:     result.Table.Columns,
		Preview:     result.Table.Head(h.cfg.Crossing.PreviewRows),
		Report:      result.Report,
		DownloadURL: "/api/export/download/" + token,
	})
}

// readInputs 读取并校验三个上传文件
func (h *Handler) readInputs(c *gin.Context) (crossing.Inputs, error) {
	var in crossing.Inputs
	fields := []struct {
		name string
		dst  *io.Reader
	}{
		{FieldRequests, &in.Requests},
		{FieldLedger, &in.Ledger},
		{FieldAssignments, &in.Assignments},
	}

	for _, f := range fields {
		fh, err := c.FormFile(f.name)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return in, &uploadError{field: f.name, msg: "未找到上传文件"}
			}
			return in, err
		}
		data, err := h.readUpload(f.name, fh)
		if err != nil {
			return in, err
		}
		*f.dst = bytes.NewReader(data)
	}
	return in, nil
}

func (h *Handler) readUpload(field string, fh *multipart.FileHeader) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return nil, &uploadError{field: field, msg: "仅支持 .xlsx 文件"}
	}
	limit := h.cfg.MaxUploadBytes()
	if fh.Size > limit {
		return nil, &uploadError{field: field, msg: fmt.Sprintf("文件超过 %d MB", h.cfg.Upload.MaxFileSizeMB)}
	}

	file, err := fh.Open()
	if err != nil {
		return nil, &uploadError{field: field, msg: "读取上传文件失败"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, &uploadError{field: field, msg: "读取上传文件失败"}
	}
	if int64(len(data)) > limit {
		return nil, &uploadError{field: field, msg: fmt.Sprintf("文件超过 %d MB", h.cfg.Upload.MaxFileSizeMB)}
	}
	return data, nil
}

// DownloadExport 下载交叉结果（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.cfg.Export.FileName))
	c.Header("X-Run-Id", item.runID)
	c.Data(http.StatusOK, excel.ContentType, item.data)
}
