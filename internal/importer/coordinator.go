package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ledgerlens/internal/analyzer"
	"ledgerlens/internal/config"
	"ledgerlens/internal/model"
	"ledgerlens/internal/parser"
	"ledgerlens/internal/store"
)

// Coordinator 导入协调器：解码 → 表头定位 → 属性对齐 → 分析
type Coordinator struct {
	store    *store.Store // 可为 nil（无历史与记忆功能）
	catalog  *parser.AttributeCatalog
	locator  *parser.HeaderLocator
	resolver *parser.AttributeResolver
	analyzer *analyzer.Analyzer
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store, cfg *config.AppConfig) *Coordinator {
	catalog := parser.DefaultCatalog()
	classifier := parser.NewAccountClassifier()

	a := analyzer.NewAnalyzer(catalog, classifier)
	a.SetTrendWindows(cfg.Analysis.TrendWindows)

	return &Coordinator{
		store:   st,
		catalog: catalog,
		locator: parser.NewHeaderLocator(cfg.Analysis.HeaderMatchThreshold),
		resolver: parser.NewAttributeResolver(catalog, parser.ResolverOptions{
			EnableFuzzy: cfg.Analysis.FuzzyEnabled,
			FuzzyCutoff: cfg.Analysis.FuzzyCutoff,
		}),
		analyzer: a,
	}
}

// Catalog 当前使用的属性目录
func (c *Coordinator) Catalog() *parser.AttributeCatalog {
	return c.catalog
}

// Resolver 当前使用的属性对齐器
func (c *Coordinator) Resolver() *parser.AttributeResolver {
	return c.resolver
}

// Analyzer 当前使用的聚合器
func (c *Coordinator) Analyzer() *analyzer.Analyzer {
	return c.analyzer
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath          string
	Filename          string            // 原始文件名（展示与历史用）
	Overrides         map[string]string // 本次请求的属性→列覆盖
	RememberOverrides bool              // 是否按表头指纹记住覆盖
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/resolved/warning/error/done
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ImportOutcome 导入产出（done 事件的 Data）
type ImportOutcome struct {
	Filename    string                          `json:"filename"`
	SheetName   string                          `json:"sheetName"`
	HeaderRow   int                             `json:"headerRow"`
	Fingerprint string                          `json:"fingerprint"`
	Resolution  model.ResolutionResult          `json:"resolution"`
	MissingInfo []model.MissingAttributeDetail  `json:"missingInfo"`
	Analysis    *model.AnalysisResult           `json:"analysis,omitempty"`
	RowsIn      int                             `json:"rowsIn"`
	Duration    time.Duration                   `json:"duration"`

	// 供调用方继续对齐/重分析，不进 JSON
	Table *model.Table `json:"-"`
}

// Import 执行导入，返回进度通道
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()
	filename := opts.Filename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}

	c.send(progressChan, ProgressEvent{
		Type:      "start",
		Message:   "开始导入总账文件",
		Data:      map[string]string{"filename": filename},
		Timestamp: time.Now(),
	})

	// 解码为原始网格
	grids, err := c.readGrids(opts.FilePath)
	if err != nil {
		c.fail(progressChan, filename, startTime, "decode_failed", fmt.Sprintf("解码文件失败: %v", err), nil)
		return
	}

	c.send(progressChan, ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("发现 %d 个数据表", len(grids)),
		Data:      map[string]int{"grids": len(grids)},
		Timestamp: time.Now(),
	})

	// 逐表定位表头，首个定位成功的表生效
	var table *model.Table
	sheetName := ""
	headerRow := -1
	var lastLocateErr error

	for _, g := range grids {
		idx, err := c.locator.LocateHeader(g.Grid)
		if err != nil {
			lastLocateErr = err
			c.send(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("数据表 %q 未定位到表头: %v", g.Name, err),
				Timestamp: time.Now(),
			})
			continue
		}
		table = model.TableFromGrid(g.Grid, idx)
		sheetName = g.Name
		headerRow = idx
		break
	}

	if table == nil {
		msg := "所有数据表均未定位到表头"
		if lastLocateErr != nil {
			msg = lastLocateErr.Error()
		}
		c.fail(progressChan, filename, startTime, "header_not_found", msg, nil)
		return
	}

	c.send(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("数据表 %q 第 %d 行识别为表头, 共 %d 列 %d 行数据", sheetName, headerRow+1, len(table.Headers), len(table.Rows)),
		Data: map[string]interface{}{
			"sheet_name": sheetName,
			"header_row": headerRow,
			"columns":    len(table.Headers),
			"rows":       len(table.Rows),
		},
		Timestamp: time.Now(),
	})

	// 记住的覆盖与本次覆盖合并，本次优先
	fingerprint := parser.HeaderFingerprint(table.Headers)
	merged := make(map[string]string)
	if c.store != nil {
		remembered, err := c.store.GetOverrides(fingerprint)
		if err == nil {
			for attr, col := range remembered {
				merged[attr] = col
			}
			if len(remembered) > 0 {
				c.send(progressChan, ProgressEvent{
					Type:      "info",
					Message:   fmt.Sprintf("套用 %d 条记住的列覆盖", len(remembered)),
					Timestamp: time.Now(),
				})
			}
		}
	}
	for attr, col := range opts.Overrides {
		merged[attr] = col
	}

	resolution := c.resolver.Resolve(table.Headers, merged)
	missingInfo := c.resolver.MissingDetails(resolution)

	c.send(progressChan, ProgressEvent{
		Type:    "resolved",
		Message: fmt.Sprintf("属性对齐完成: %d 项已对齐, %d 项缺失", len(resolution.Present), len(resolution.Missing)),
		Data: map[string]interface{}{
			"resolution":   resolution,
			"missing_info": missingInfo,
		},
		Timestamp: time.Now(),
	})

	outcome := &ImportOutcome{
		Filename:    filename,
		SheetName:   sheetName,
		HeaderRow:   headerRow,
		Fingerprint: fingerprint,
		Resolution:  resolution,
		MissingInfo: missingInfo,
		RowsIn:      len(table.Rows),
		Table:       table,
	}

	// 分析
	analysis, err := c.analyzer.Analyze(table, resolution)
	if err != nil {
		kind, missing := classifyAnalyzeError(err)
		c.logImport(store.ImportLog{
			Filename:     filename,
			SheetName:    sheetName,
			HeaderRow:    headerRow,
			RowsIn:       len(table.Rows),
			Status:       "failed",
			ErrorKind:    kind,
			MissingAttrs: missing,
			DurationMS:   time.Since(startTime).Milliseconds(),
		})
		outcome.Duration = time.Since(startTime)
		c.send(progressChan, ProgressEvent{
			Type:    "error",
			Message: err.Error(),
			Data: map[string]interface{}{
				"kind":    kind,
				"outcome": outcome,
			},
			Timestamp: time.Now(),
		})
		return
	}

	outcome.Analysis = analysis
	outcome.Duration = time.Since(startTime)

	// 记住本次覆盖
	if opts.RememberOverrides && c.store != nil && len(opts.Overrides) > 0 {
		if err := c.store.SaveOverrides(fingerprint, opts.Overrides); err != nil {
			c.send(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("保存列覆盖失败: %v", err),
				Timestamp: time.Now(),
			})
		}
	}

	c.logImport(store.ImportLog{
		Filename:    filename,
		SheetName:   sheetName,
		HeaderRow:   headerRow,
		RowsIn:      len(table.Rows),
		RowsDropped: analysis.DroppedRows,
		Status:      "analyzed",
		DurationMS:  time.Since(startTime).Milliseconds(),
	})

	c.send(progressChan, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("分析完成: %d 行有效台账", len(analysis.Rows)),
		Data:      outcome,
		Timestamp: time.Now(),
	})
}

// readGrids 按扩展名选择解码方式
func (c *Coordinator) readGrids(path string) ([]NamedGrid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ReadWorkbookGrids(path)
	default:
		grid, err := ReadDelimitedGrid(path)
		if err != nil {
			return nil, err
		}
		return []NamedGrid{{Name: "data", Grid: grid}}, nil
	}
}

// fail 发送错误事件并写失败历史
func (c *Coordinator) fail(progressChan chan ProgressEvent, filename string, startTime time.Time, kind, msg string, data interface{}) {
	c.logImport(store.ImportLog{
		Filename:   filename,
		Status:     "failed",
		ErrorKind:  kind,
		DurationMS: time.Since(startTime).Milliseconds(),
	})
	c.send(progressChan, ProgressEvent{
		Type:      "error",
		Message:   msg,
		Data:      map[string]interface{}{"kind": kind, "detail": data},
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) logImport(entry store.ImportLog) {
	if c.store == nil {
		return
	}
	// 历史写失败不影响导入结果
	_ = c.store.InsertImportLog(entry)
}

// send 发送进度事件，通道满时丢弃
func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}

// classifyAnalyzeError 将分析错误归类为稳定的 kind 标识
func classifyAnalyzeError(err error) (kind string, missingAttrs []string) {
	var missingErr *analyzer.MissingMandatoryAttributeError
	if errors.As(err, &missingErr) {
		return "missing_mandatory_attribute", missingErr.Attributes
	}
	var accountErr *analyzer.NoAccountColumnError
	if errors.As(err, &accountErr) {
		return "no_account_column", nil
	}
	var amountErr *analyzer.NoAmountColumnError
	if errors.As(err, &amountErr) {
		return "no_amount_column", nil
	}
	var malformedErr *analyzer.MalformedAmountError
	if errors.As(err, &malformedErr) {
		return "malformed_amount", nil
	}
	return "analyze_failed", nil
}
