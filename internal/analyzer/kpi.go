package analyzer

import "ledgerlens/internal/model"

// computeKPIs 汇总头部 KPI
// KPI 取值按贷方为正口径（每类别求 credit - debit 之和），
// 使销售贷记 1000 产出 revenue=1000；报表则按规格原文对 net_amount 求和，
// 两种口径并存（见 DESIGN.md）
func (a *Analyzer) computeKPIs(rows []model.LedgerRow) model.KPISet {
	creditPositive := make(map[model.AccountCategory]float64)
	for _, row := range rows {
		creditPositive[row.Category] -= row.NetAmount
	}

	revenue := creditPositive[model.CategoryRevenue]
	cogs := creditPositive[model.CategoryCOGS]
	opex := creditPositive[model.CategoryOPEX]
	otherIncome := creditPositive[model.CategoryOtherIncome]
	otherExpense := creditPositive[model.CategoryOtherExpense]

	grossProfit := revenue - cogs
	ebitda := grossProfit - opex
	netProfit := ebitda + otherIncome - otherExpense

	return model.KPISet{
		"revenue":           revenue,
		"cogs":              cogs,
		"opex":              opex,
		"other_income":      otherIncome,
		"other_expense":     otherExpense,
		"gross_profit":      grossProfit,
		"ebitda":            ebitda,
		"net_profit":        netProfit,
		"gross_margin_pct":  marginPct(grossProfit, revenue),
		"ebitda_margin_pct": marginPct(ebitda, revenue),
		"net_margin_pct":    marginPct(netProfit, revenue),
	}
}

// marginPct 占收入比；revenue 为 0 时约定返回 0（非真实毛利率）
func marginPct(value, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return value / revenue * 100
}
