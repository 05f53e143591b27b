package exporter

import (
	"testing"

	"ledgerlens/internal/model"
)

func TestWriteAnalysisWorkbook(t *testing.T) {
	t.Parallel()

	result := &model.AnalysisResult{
		KPIs: model.KPISet{
			"revenue":      1000,
			"opex":         -500,
			"gross_profit": 1000,
			"ebitda":       1500,
			"net_profit":   1500,
		},
		TrialBalance: []model.TrialBalanceRow{
			{Account: "Sales", TotalCredit: 1000, Balance: -1000},
		},
		ProfitAndLoss: []model.StatementRow{
			{Label: "revenue", NetAmount: -1000},
		},
		BalanceSheet: []model.StatementRow{
			{Label: "Cash at Bank", NetAmount: 500},
		},
		CategorySummary: []model.CategorySummaryRow{
			{Category: model.CategoryRevenue, RowCount: 1, TotalCredit: 1000, NetAmount: -1000},
		},
		Trend:      model.TrendMetrics{"net_7d": 0},
		AmountMode: model.AmountModeDebitCredit,
	}

	f, err := WriteAnalysisWorkbook(result)
	if err != nil {
		t.Fatalf("生成工作簿失败: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"KPI", "试算平衡", "损益表", "资产负债", "分类汇总"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("工作簿应包含工作表 %q", sheet)
		}
	}

	// KPI 表第一条应是收入
	label, err := f.GetCellValue("KPI", "A2")
	if err != nil {
		t.Fatalf("读取单元格失败: %v", err)
	}
	if label != "收入 Revenue" {
		t.Fatalf("KPI 首行应为收入, 实际 %q", label)
	}
	value, _ := f.GetCellValue("KPI", "B2")
	if value != "1000" {
		t.Fatalf("收入值应为 1000, 实际 %q", value)
	}

	account, _ := f.GetCellValue("试算平衡", "A2")
	if account != "Sales" {
		t.Fatalf("试算平衡首行科目应为 Sales, 实际 %q", account)
	}
}

func TestWriteAnalysisWorkbookNilResult(t *testing.T) {
	t.Parallel()

	if _, err := WriteAnalysisWorkbook(nil); err == nil {
		t.Fatal("空结果应报错")
	}
}
