package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListImports 获取导入历史
// GET /api/imports?limit=50
func (h *Handler) ListImports(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"imports": []interface{}{}})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	logs, err := h.store.ListImportLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询导入历史失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imports": logs})
}
