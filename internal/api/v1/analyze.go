package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnalyzeRequest 重分析请求：基于上传会话与新的列覆盖重新对齐并分析
type AnalyzeRequest struct {
	Token             string            `json:"token" binding:"required"`
	Overrides         map[string]string `json:"overrides,omitempty"`
	RememberOverrides bool              `json:"rememberOverrides,omitempty"`
}

// Analyze 用新覆盖重新分析已上传的表格
// POST /api/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	session, ok := h.sessions.get(req.Token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
		return
	}

	coordinator := h.coord()
	resolver := coordinator.Resolver()
	resolution := resolver.Resolve(session.table.Headers, req.Overrides)

	analysis, err := coordinator.Analyzer().Analyze(session.table, resolution)
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}

	if req.RememberOverrides && h.store != nil && len(req.Overrides) > 0 {
		if err := h.store.SaveOverrides(session.fingerprint, req.Overrides); err != nil {
			// 覆盖记忆失败不影响分析结果
			c.Header("X-Overrides-Saved", "false")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":    session.filename,
		"sheetName":   session.sheetName,
		"headerRow":   session.headerRow,
		"resolution":  resolution,
		"missingInfo": resolver.MissingDetails(resolution),
		"analysis":    analysis,
	})
}
