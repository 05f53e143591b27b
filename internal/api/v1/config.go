package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/config"
	"ledgerlens/internal/importer"
)

// AnalysisConfigPatch 分析参数更新请求，仅更新提供的字段
type AnalysisConfigPatch struct {
	HeaderMatchThreshold *int     `json:"headerMatchThreshold,omitempty"`
	FuzzyEnabled         *bool    `json:"fuzzyEnabled,omitempty"`
	FuzzyCutoff          *float64 `json:"fuzzyCutoff,omitempty"`
	TrendWindows         []int    `json:"trendWindows,omitempty"`
}

// analysisSnapshot 加锁读出的分析参数副本
func (h *Handler) analysisSnapshot() config.AnalysisConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snapshot := h.cfg.Analysis
	snapshot.TrendWindows = append([]int(nil), h.cfg.Analysis.TrendWindows...)
	return snapshot
}

func analysisResponse(c *gin.Context, analysis config.AnalysisConfig) {
	c.JSON(http.StatusOK, gin.H{
		"headerMatchThreshold": analysis.HeaderMatchThreshold,
		"fuzzyEnabled":         analysis.FuzzyEnabled,
		"fuzzyCutoff":          analysis.FuzzyCutoff,
		"trendWindows":         analysis.TrendWindows,
	})
}

// GetConfig 获取分析参数配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	analysisResponse(c, h.analysisSnapshot())
}

// UpdateConfig 更新分析参数配置并持久化
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var patch AnalysisConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	if patch.HeaderMatchThreshold != nil && *patch.HeaderMatchThreshold < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "headerMatchThreshold 必须大于 0"})
		return
	}
	if patch.FuzzyCutoff != nil && (*patch.FuzzyCutoff <= 0 || *patch.FuzzyCutoff > 1) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fuzzyCutoff 必须在 (0, 1] 范围内"})
		return
	}
	for _, d := range patch.TrendWindows {
		if d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "trendWindows 天数必须大于 0"})
			return
		}
	}

	// 更新配置与重建协调器在同一临界区内完成,
	// 并发请求经 coord() 读到的要么是旧组合要么是新组合
	h.mu.Lock()
	if patch.HeaderMatchThreshold != nil {
		h.cfg.Analysis.HeaderMatchThreshold = *patch.HeaderMatchThreshold
	}
	if patch.FuzzyEnabled != nil {
		h.cfg.Analysis.FuzzyEnabled = *patch.FuzzyEnabled
	}
	if patch.FuzzyCutoff != nil {
		h.cfg.Analysis.FuzzyCutoff = *patch.FuzzyCutoff
	}
	if len(patch.TrendWindows) > 0 {
		h.cfg.Analysis.TrendWindows = append([]int(nil), patch.TrendWindows...)
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		h.mu.Unlock()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存配置失败"})
		return
	}

	h.coordinator = importer.NewCoordinator(h.store, h.cfg)

	snapshot := h.cfg.Analysis
	snapshot.TrendWindows = append([]int(nil), h.cfg.Analysis.TrendWindows...)
	h.mu.Unlock()

	analysisResponse(c, snapshot)
}
