package v1

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/analyzer"
	"ledgerlens/internal/config"
	"ledgerlens/internal/importer"
	"ledgerlens/internal/store"
)

// Handler V1 API 处理器
// gin 每个请求一个 goroutine，cfg 与 coordinator 会被 PATCH /config
// 原地更新，读写都必须经过 mu
type Handler struct {
	store    *store.Store
	sessions *uploadSessionStore

	mu          sync.RWMutex
	cfg         *config.AppConfig
	coordinator *importer.Coordinator
}

// NewHandler 创建 V1 API 处理器
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:       st,
		cfg:         cfg,
		coordinator: importer.NewCoordinator(st, cfg),
		sessions:    newUploadSessionStore(),
	}
}

// coord 取当前协调器（并发安全）
func (h *Handler) coord() *importer.Coordinator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.coordinator
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 上传与分析
	router.POST("/upload", h.Upload)
	router.POST("/resolve", h.ResolveColumns)
	router.POST("/analyze", h.Analyze)
	router.GET("/export", h.ExportWorkbook)

	// 导入历史
	router.GET("/imports", h.ListImports)

	// 分析参数配置
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)
}

// writeAnalyzeError 将分析错误映射为带 kind 的 JSON 响应
// 结构化错误全部 422，调用方据此渲染纠错界面
func writeAnalyzeError(c *gin.Context, err error) {
	var missingErr *analyzer.MissingMandatoryAttributeError
	if errors.As(err, &missingErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      err.Error(),
			"kind":       "missing_mandatory_attribute",
			"attributes": missingErr.Attributes,
		})
		return
	}

	var accountErr *analyzer.NoAccountColumnError
	if errors.As(err, &accountErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"kind":  "no_account_column",
			"tried": accountErr.Tried,
		})
		return
	}

	var amountErr *analyzer.NoAmountColumnError
	if errors.As(err, &amountErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"kind":  "no_amount_column",
		})
		return
	}

	var malformedErr *analyzer.MalformedAmountError
	if errors.As(err, &malformedErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  err.Error(),
			"kind":   "malformed_amount",
			"row":    malformedErr.Row,
			"column": malformedErr.Column,
			"value":  malformedErr.Value,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
