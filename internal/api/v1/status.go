package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Status         string   `json:"status"`
	CatalogSize    int      `json:"catalogSize"`    // 规范属性数量
	MandatoryAttrs []string `json:"mandatoryAttrs"` // 必备属性名
	LastImportTime string   `json:"lastImportTime"` // 最后导入时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	catalog := h.coord().Catalog()

	lastImport := ""
	if h.store != nil {
		if logs, err := h.store.ListImportLogs(1); err == nil && len(logs) > 0 {
			lastImport = logs[0].CreatedAt.Format("2006-01-02 15:04:05")
		}
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:         "ok",
		CatalogSize:    catalog.Len(),
		MandatoryAttrs: catalog.Mandatory(),
		LastImportTime: lastImport,
	})
}
