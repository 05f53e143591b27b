package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/importer"
)

// Upload 上传总账文件并流式分析 (SSE 响应)
// POST /api/upload
// 表单字段: file（必填）, overrides（JSON, 可选）, remember（"true"/"false", 可选）
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadedFile := files[0]

	// 保存到临时目录
	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fmt.Sprintf("ledgerlens_upload_%d_%s", time.Now().Unix(), uploadedFile.Filename))

	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	// 解析覆盖参数
	overrides := map[string]string{}
	if raw := c.PostForm("overrides"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "overrides 不是合法的 JSON 对象"})
			return
		}
	}
	remember := c.DefaultPostForm("remember", "false") == "true"

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	progressChan := h.coord().Import(importer.ImportOptions{
		FilePath:          tempFilePath,
		Filename:          uploadedFile.Filename,
		Overrides:         overrides,
		RememberOverrides: remember,
	})

	for event := range progressChan {
		// done 与分析失败事件都携带 outcome，先注册会话，调用方可继续多轮对齐
		if outcome := extractOutcome(event); outcome != nil && outcome.Table != nil {
			token := h.sessions.put(uploadSession{
				table:       outcome.Table,
				filename:    outcome.Filename,
				sheetName:   outcome.SheetName,
				headerRow:   outcome.HeaderRow,
				fingerprint: outcome.Fingerprint,
			})
			h.writeSSE(c, flusher, importer.ProgressEvent{
				Type:      "session",
				Message:   "会话已建立, 可用 token 继续对齐与重分析",
				Data:      map[string]string{"token": token},
				Timestamp: time.Now(),
			})
		}
		h.writeSSE(c, flusher, event)
	}
}

// extractOutcome 从事件中取出导入产出（done 事件直接携带，error 事件嵌在 data.outcome）
func extractOutcome(event importer.ProgressEvent) *importer.ImportOutcome {
	if outcome, ok := event.Data.(*importer.ImportOutcome); ok {
		return outcome
	}
	if m, ok := event.Data.(map[string]interface{}); ok {
		if outcome, ok := m["outcome"].(*importer.ImportOutcome); ok {
			return outcome
		}
	}
	return nil
}

func (h *Handler) writeSSE(c *gin.Context, flusher http.Flusher, event importer.ProgressEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return
	}
	// SSE 格式: data: {json}\n\n
	fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
	flusher.Flush()
}
