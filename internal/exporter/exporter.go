package exporter

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"ledgerlens/internal/model"
)

// kpiOrder KPI 工作表的输出顺序
var kpiOrder = []struct {
	key   string
	label string
}{
	{"revenue", "收入 Revenue"},
	{"cogs", "销货成本 COGS"},
	{"gross_profit", "毛利 Gross Profit"},
	{"opex", "运营费用 OPEX"},
	{"ebitda", "EBITDA"},
	{"other_income", "其他收入 Other Income"},
	{"other_expense", "其他支出 Other Expense"},
	{"net_profit", "净利润 Net Profit"},
	{"gross_margin_pct", "毛利率 %"},
	{"ebitda_margin_pct", "EBITDA 利润率 %"},
	{"net_margin_pct", "净利率 %"},
}

// WriteAnalysisWorkbook 把一次分析结果写成 XLSX 工作簿
// 工作表: KPI / 试算平衡 / 损益 / 资产负债 / 分类汇总
func WriteAnalysisWorkbook(result *model.AnalysisResult) (*excelize.File, error) {
	if result == nil {
		return nil, fmt.Errorf("分析结果为空")
	}

	f := excelize.NewFile()

	if err := writeKPISheet(f, result); err != nil {
		_ = f.Close()
		return nil, err
	}
	writeTrialBalanceSheet(f, result.TrialBalance)
	writeStatementSheet(f, "损益表", result.ProfitAndLoss)
	writeStatementSheet(f, "资产负债", result.BalanceSheet)
	writeCategorySheet(f, result.CategorySummary)

	// excelize 默认创建的 Sheet1 不再需要
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)
	return f, nil
}

func writeKPISheet(f *excelize.File, result *model.AnalysisResult) error {
	const sheet = "KPI"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("创建 KPI 工作表失败: %w", err)
	}

	_ = f.SetCellValue(sheet, "A1", "指标")
	_ = f.SetCellValue(sheet, "B1", "数值")
	row := 2
	for _, item := range kpiOrder {
		if v, ok := result.KPIs[item.key]; ok {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.label)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), v)
			row++
		}
	}

	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "金额通道")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(result.AmountMode))
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "清洗剔除行数")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), result.DroppedRows)

	if result.Trend != nil {
		keys := make([]string, 0, len(result.Trend))
		for key := range result.Trend {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		row += 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "趋势窗口")
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "净额")
		for _, key := range keys {
			row++
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), key)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), result.Trend[key])
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 18)
	return nil
}

func writeTrialBalanceSheet(f *excelize.File, rows []model.TrialBalanceRow) {
	const sheet = "试算平衡"
	_, _ = f.NewSheet(sheet)

	headers := []string{"科目", "借方合计", "贷方合计", "余额"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, r := range rows {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), r.Account)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), r.TotalDebit)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), r.TotalCredit)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), r.Balance)
	}
	_ = f.SetColWidth(sheet, "A", "A", 36)
}

func writeStatementSheet(f *excelize.File, sheet string, rows []model.StatementRow) {
	_, _ = f.NewSheet(sheet)

	_ = f.SetCellValue(sheet, "A1", "科目/分类")
	_ = f.SetCellValue(sheet, "B1", "净额")
	for i, r := range rows {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), r.Label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), r.NetAmount)
	}
	_ = f.SetColWidth(sheet, "A", "A", 36)
}

func writeCategorySheet(f *excelize.File, rows []model.CategorySummaryRow) {
	const sheet = "分类汇总"
	_, _ = f.NewSheet(sheet)

	headers := []string{"类别", "行数", "借方合计", "贷方合计", "净额"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, r := range rows {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), string(r.Category))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), r.RowCount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), r.TotalDebit)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), r.TotalCredit)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), r.NetAmount)
	}
	_ = f.SetColWidth(sheet, "A", "A", 20)
}
