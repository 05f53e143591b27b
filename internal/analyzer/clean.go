package analyzer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledgerlens/internal/model"
)

// postedDateLayouts posted_dt 支持的日期布局，按常见程度排列
// 斜杠写法按英式 日/月/年 解释
var postedDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

// normalizeRows 逐行清洗并派生净额与类别
// 清洗规则按序：剔除 total/sum 汇总行 → 剔除空科目行 → 剔除金额全空行 →
// 千分位/空白剥离 → 空串记零 → 解析失败报 MalformedAmountError
func (a *Analyzer) normalizeRows(table *model.Table, accountIdx int, mode model.AmountMode, cols amountColumns, postedIdx int) ([]model.LedgerRow, int, error) {
	rows := make([]model.LedgerRow, 0, len(table.Rows))
	dropped := 0

	for i := range table.Rows {
		rowNo := i + 1

		account := strings.TrimSpace(table.Cell(i, accountIdx))
		if account == "" {
			dropped++
			continue
		}
		lower := strings.ToLower(account)
		if strings.Contains(lower, "total") || strings.Contains(lower, "sum") {
			// 表内小计行不是交易
			dropped++
			continue
		}

		row := model.LedgerRow{
			RowNo:   rowNo,
			Account: account,
		}

		switch mode {
		case model.AmountModeDebitCredit:
			debitRaw := table.Cell(i, cols.debit)
			creditRaw := table.Cell(i, cols.credit)
			if isBlankAmount(debitRaw) && isBlankAmount(creditRaw) {
				dropped++
				continue
			}
			debit, ok := parseAmount(debitRaw)
			if !ok {
				return nil, 0, &MalformedAmountError{Row: rowNo, Column: cols.debitName, Value: debitRaw}
			}
			credit, ok := parseAmount(creditRaw)
			if !ok {
				return nil, 0, &MalformedAmountError{Row: rowNo, Column: cols.creditName, Value: creditRaw}
			}
			row.Debit, _ = debit.Float64()
			row.Credit, _ = credit.Float64()
			row.NetAmount, _ = debit.Sub(credit).Float64()

		case model.AmountModeSigned:
			amountRaw := table.Cell(i, cols.amount)
			if isBlankAmount(amountRaw) {
				dropped++
				continue
			}
			amount, ok := parseAmount(amountRaw)
			if !ok {
				return nil, 0, &MalformedAmountError{Row: rowNo, Column: cols.amountName, Value: amountRaw}
			}
			row.NetAmount, _ = amount.Float64()
		}

		row.Category = a.classifier.Classify(account)

		if postedIdx >= 0 {
			row.PostedAt = parsePostedDate(table.Cell(i, postedIdx))
		}

		rows = append(rows, row)
	}

	return rows, dropped, nil
}

func isBlankAmount(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseAmount 清洗并解析金额文本；空串记零，残值返回 !ok
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parsePostedDate 按布局列表解析日期，全部失败返回 nil
// 日期质量不阻断分析，仅影响趋势统计
func parsePostedDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
