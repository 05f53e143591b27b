package model

import "time"

// AccountCategory 科目财务类别
type AccountCategory string

const (
	CategoryRevenue      AccountCategory = "revenue"
	CategoryCOGS         AccountCategory = "cogs"
	CategoryOPEX         AccountCategory = "opex"
	CategoryOtherIncome  AccountCategory = "other_income"
	CategoryOtherExpense AccountCategory = "other_expense"
	CategoryUnclassified AccountCategory = "unclassified"
)

// AmountMode 金额通道模式（每次分析只有一种）
type AmountMode string

const (
	AmountModeDebitCredit AmountMode = "debit_credit" // 借/贷双列
	AmountModeSigned      AmountMode = "signed"       // 单签名金额列
)

// LedgerRow 规范化后的台账行
// 单次分析内创建后不再修改，分析结束即丢弃
type LedgerRow struct {
	RowNo     int             `json:"rowNo"` // 数据区 1 起始行号（不含表头）
	Account   string          `json:"account"`
	Debit     float64         `json:"debit"`
	Credit    float64         `json:"credit"`
	NetAmount float64         `json:"netAmount"`
	Category  AccountCategory `json:"category"`
	PostedAt  *time.Time      `json:"postedAt,omitempty"`
}

// KPISet 指标名 → 数值
type KPISet map[string]float64

// TrialBalanceRow 试算平衡行（按科目）
type TrialBalanceRow struct {
	Account     string  `json:"account"`
	TotalDebit  float64 `json:"totalDebit"`
	TotalCredit float64 `json:"totalCredit"`
	Balance     float64 `json:"balance"` // 借方合计 - 贷方合计
}

// CategorySummaryRow 品类汇总行
type CategorySummaryRow struct {
	Category    AccountCategory `json:"category"`
	RowCount    int             `json:"rowCount"`
	TotalDebit  float64         `json:"totalDebit"`
	TotalCredit float64         `json:"totalCredit"`
	NetAmount   float64         `json:"netAmount"`
}

// StatementRow 报表行（损益表按类别、资产负债表按科目）
type StatementRow struct {
	Label     string  `json:"label"`
	NetAmount float64 `json:"netAmount"`
}

// TrendMetrics 趋势窗口名（net_7d 等）→ 窗口内净额合计
type TrendMetrics map[string]float64

// AnalysisResult 单次分析产出，每次调用全量重算
type AnalysisResult struct {
	Rows            []LedgerRow          `json:"rows"`
	KPIs            KPISet               `json:"kpis"`
	CategorySummary []CategorySummaryRow `json:"categorySummary"`
	TrialBalance    []TrialBalanceRow    `json:"trialBalance"`
	ProfitAndLoss   []StatementRow       `json:"profitAndLoss"`
	BalanceSheet    []StatementRow       `json:"balanceSheet"`
	Trend           TrendMetrics         `json:"trend,omitempty"` // 无 posted_dt 时为 nil
	AmountMode      AmountMode           `json:"amountMode"`
	DroppedRows     int                  `json:"droppedRows"`
}
