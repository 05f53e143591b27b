package analyzer

import (
	"sort"

	"ledgerlens/internal/model"
)

// incomeCategories 损益类别，顺序与分类器优先级一致
var incomeCategories = []model.AccountCategory{
	model.CategoryRevenue,
	model.CategoryCOGS,
	model.CategoryOPEX,
	model.CategoryOtherIncome,
	model.CategoryOtherExpense,
}

// allCategories 品类汇总输出的固定顺序
var allCategories = []model.AccountCategory{
	model.CategoryRevenue,
	model.CategoryCOGS,
	model.CategoryOPEX,
	model.CategoryOtherIncome,
	model.CategoryOtherExpense,
	model.CategoryUnclassified,
}

// buildTrialBalance 按科目汇总借贷，balance = 借方合计 - 贷方合计
func buildTrialBalance(rows []model.LedgerRow) []model.TrialBalanceRow {
	byAccount := make(map[string]*model.TrialBalanceRow)
	order := make([]string, 0)

	for _, row := range rows {
		tb, ok := byAccount[row.Account]
		if !ok {
			tb = &model.TrialBalanceRow{Account: row.Account}
			byAccount[row.Account] = tb
			order = append(order, row.Account)
		}
		tb.TotalDebit += row.Debit
		tb.TotalCredit += row.Credit
	}

	sort.Strings(order)
	out := make([]model.TrialBalanceRow, 0, len(order))
	for _, account := range order {
		tb := byAccount[account]
		tb.Balance = tb.TotalDebit - tb.TotalCredit
		out = append(out, *tb)
	}
	return out
}

// buildCategorySummary 按类别汇总行数、借贷与净额，六个类别全部输出
func buildCategorySummary(rows []model.LedgerRow) []model.CategorySummaryRow {
	byCategory := make(map[model.AccountCategory]*model.CategorySummaryRow)
	for _, cat := range allCategories {
		byCategory[cat] = &model.CategorySummaryRow{Category: cat}
	}

	for _, row := range rows {
		cs := byCategory[row.Category]
		cs.RowCount++
		cs.TotalDebit += row.Debit
		cs.TotalCredit += row.Credit
		cs.NetAmount += row.NetAmount
	}

	out := make([]model.CategorySummaryRow, 0, len(allCategories))
	for _, cat := range allCategories {
		out = append(out, *byCategory[cat])
	}
	return out
}

// buildProfitAndLoss 损益表：五个损益类别按 net_amount 求和
func buildProfitAndLoss(rows []model.LedgerRow) []model.StatementRow {
	sums := make(map[model.AccountCategory]float64)
	for _, row := range rows {
		sums[row.Category] += row.NetAmount
	}

	out := make([]model.StatementRow, 0, len(incomeCategories))
	for _, cat := range incomeCategories {
		out = append(out, model.StatementRow{
			Label:     string(cat),
			NetAmount: sums[cat],
		})
	}
	return out
}

// buildBalanceSheet 资产负债表：损益类别之外的科目按 net_amount 汇总
func buildBalanceSheet(rows []model.LedgerRow) []model.StatementRow {
	sums := make(map[string]float64)
	order := make([]string, 0)

	for _, row := range rows {
		if row.Category != model.CategoryUnclassified {
			continue
		}
		if _, ok := sums[row.Account]; !ok {
			order = append(order, row.Account)
		}
		sums[row.Account] += row.NetAmount
	}

	sort.Strings(order)
	out := make([]model.StatementRow, 0, len(order))
	for _, account := range order {
		out = append(out, model.StatementRow{
			Label:     account,
			NetAmount: sums[account],
		})
	}
	return out
}
