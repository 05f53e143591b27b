package analyzer

import (
	"ledgerlens/internal/model"
	"ledgerlens/internal/parser"
)

// accountColumnCandidates 科目列候选属性，按优先级排列
var accountColumnCandidates = []string{
	"account_name",
	"memo_description",
	"supplier_name",
	"customer_name",
	"item_name",
}

// Analyzer 台账规范化与 KPI 聚合器
// 单线程同步计算，每次调用全量重算，不修改调用方的表格
type Analyzer struct {
	catalog      *parser.AttributeCatalog
	classifier   *parser.AccountClassifier
	trendWindows []int // 趋势窗口天数
}

// NewAnalyzer 创建聚合器
func NewAnalyzer(catalog *parser.AttributeCatalog, classifier *parser.AccountClassifier) *Analyzer {
	return &Analyzer{
		catalog:      catalog,
		classifier:   classifier,
		trendWindows: []int{7, 30, 90},
	}
}

// SetTrendWindows 自定义趋势窗口天数（空切片恢复默认）
func (a *Analyzer) SetTrendWindows(days []int) {
	if len(days) == 0 {
		a.trendWindows = []int{7, 30, 90}
		return
	}
	a.trendWindows = days
}

// Analyze 清洗表格、分类科目并聚合为 KPI 与各类报表
// 必备属性未对齐、科目列缺失、金额通道缺失、金额残值均为硬失败
func (a *Analyzer) Analyze(table *model.Table, res model.ResolutionResult) (*model.AnalysisResult, error) {
	// 必备属性检查以目录为准，不信任调用方传入的划分
	missing := make([]string, 0)
	for _, name := range a.catalog.Mandatory() {
		if _, ok := res.Mapping[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingMandatoryAttributeError{Attributes: missing}
	}

	// 科目列：固定优先级候选，首个已对齐者生效
	accountCol := ""
	for _, cand := range accountColumnCandidates {
		if col, ok := res.Mapping[cand]; ok {
			accountCol = col
			break
		}
	}
	if accountCol == "" || table.ColumnIndex(accountCol) < 0 {
		return nil, &NoAccountColumnError{Tried: accountColumnCandidates}
	}

	// 金额通道：借/贷双列与单金额列互斥，先识别先生效
	cols := amountColumns{}
	debitCol, hasDebit := res.Mapping["debit_gbp"]
	creditCol, hasCredit := res.Mapping["credit_gbp"]
	amountCol, hasAmount := res.Mapping["amount"]

	var mode model.AmountMode
	switch {
	case hasDebit && hasCredit:
		mode = model.AmountModeDebitCredit
		cols.debit = table.ColumnIndex(debitCol)
		cols.credit = table.ColumnIndex(creditCol)
		cols.debitName = debitCol
		cols.creditName = creditCol
		if cols.debit < 0 || cols.credit < 0 {
			return nil, &NoAmountColumnError{}
		}
	case hasAmount:
		mode = model.AmountModeSigned
		cols.amount = table.ColumnIndex(amountCol)
		cols.amountName = amountCol
		if cols.amount < 0 {
			return nil, &NoAmountColumnError{}
		}
	default:
		return nil, &NoAmountColumnError{}
	}

	postedIdx := -1
	if postedCol, ok := res.Mapping["posted_dt"]; ok {
		postedIdx = table.ColumnIndex(postedCol)
	}

	rows, dropped, err := a.normalizeRows(table, table.ColumnIndex(accountCol), mode, cols, postedIdx)
	if err != nil {
		return nil, err
	}

	result := &model.AnalysisResult{
		Rows:            rows,
		KPIs:            a.computeKPIs(rows),
		CategorySummary: buildCategorySummary(rows),
		TrialBalance:    buildTrialBalance(rows),
		ProfitAndLoss:   buildProfitAndLoss(rows),
		BalanceSheet:    buildBalanceSheet(rows),
		AmountMode:      mode,
		DroppedRows:     dropped,
	}

	if postedIdx >= 0 {
		result.Trend = a.computeTrend(rows)
	}

	return result, nil
}

// amountColumns 金额列下标与名称（报错信息需要实际列名）
type amountColumns struct {
	debit      int
	credit     int
	amount     int
	debitName  string
	creditName string
	amountName string
}
