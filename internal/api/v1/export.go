package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/exporter"
)

// ExportWorkbook 把已上传会话的分析结果导出为 XLSX 工作簿
// GET /api/export?token=xxx
// 分析按当前记住的覆盖全量重算，与 /analyze 保持同一条路径
func (h *Handler) ExportWorkbook(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token 参数"})
		return
	}

	session, ok := h.sessions.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
		return
	}

	overrides := map[string]string{}
	if h.store != nil {
		if remembered, err := h.store.GetOverrides(session.fingerprint); err == nil {
			overrides = remembered
		}
	}

	coordinator := h.coord()
	resolution := coordinator.Resolver().Resolve(session.table.Headers, overrides)
	analysis, err := coordinator.Analyzer().Analyze(session.table, resolution)
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}

	f, err := exporter.WriteAnalysisWorkbook(analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("生成工作簿失败: %v", err)})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", session.filename+"_analysis.xlsx"))
	if err := f.Write(c.Writer); err != nil {
		// 响应头已写出，只能记录在响应尾部失败
		return
	}
}
