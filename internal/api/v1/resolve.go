package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResolveRequest 属性对齐请求
// 既可直接传列名（无会话），也可传上传会话 token
type ResolveRequest struct {
	Token     string            `json:"token,omitempty"`
	Columns   []string          `json:"columns,omitempty"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// ResolveColumns 对列名做属性对齐，返回对齐结果与缺失说明
// POST /api/resolve
func (h *Handler) ResolveColumns(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	columns := req.Columns
	if req.Token != "" {
		session, ok := h.sessions.get(req.Token)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
			return
		}
		columns = session.table.Headers
	}

	if len(columns) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "columns 与 token 至少提供一个"})
		return
	}

	resolver := h.coord().Resolver()
	resolution := resolver.Resolve(columns, req.Overrides)

	c.JSON(http.StatusOK, gin.H{
		"resolution":  resolution,
		"missingInfo": resolver.MissingDetails(resolution),
	})
}
