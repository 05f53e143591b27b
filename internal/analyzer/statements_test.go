package analyzer

import (
	"testing"

	"ledgerlens/internal/model"
)

func TestBuildTrialBalance(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "Sales", Credit: 1000, NetAmount: -1000, Category: model.CategoryRevenue},
		{Account: "Cash at Bank", Debit: 1000, NetAmount: 1000, Category: model.CategoryUnclassified},
		{Account: "Cash at Bank", Credit: 300, NetAmount: -300, Category: model.CategoryUnclassified},
	}

	tb := buildTrialBalance(rows)
	if len(tb) != 2 {
		t.Fatalf("应按科目聚合为 2 行, 实际 %d", len(tb))
	}

	// 科目按字典序输出
	if tb[0].Account != "Cash at Bank" || tb[1].Account != "Sales" {
		t.Fatalf("科目顺序错误: %+v", tb)
	}

	cash := tb[0]
	if cash.TotalDebit != 1000 || cash.TotalCredit != 300 {
		t.Fatalf("Cash at Bank 借贷合计错误: %+v", cash)
	}
	if cash.Balance != 700 {
		t.Fatalf("余额应为借方 - 贷方 = 700, 实际 %v", cash.Balance)
	}
}

func TestBuildCategorySummaryAlwaysSixCategories(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "Sales", Credit: 1000, NetAmount: -1000, Category: model.CategoryRevenue},
	}

	summary := buildCategorySummary(rows)
	if len(summary) != 6 {
		t.Fatalf("品类汇总应固定输出 6 个类别, 实际 %d", len(summary))
	}
	if summary[0].Category != model.CategoryRevenue || summary[0].RowCount != 1 {
		t.Fatalf("revenue 行错误: %+v", summary[0])
	}
	// 无数据的类别也要出现, 数值为零
	if summary[1].Category != model.CategoryCOGS || summary[1].RowCount != 0 {
		t.Fatalf("空类别应以零值出现: %+v", summary[1])
	}
}

func TestBuildProfitAndLoss(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "Sales", NetAmount: -1000, Category: model.CategoryRevenue},
		{Account: "Office Rent", NetAmount: 500, Category: model.CategoryOPEX},
		{Account: "Cash at Bank", NetAmount: 500, Category: model.CategoryUnclassified},
	}

	pl := buildProfitAndLoss(rows)
	if len(pl) != 5 {
		t.Fatalf("损益表应含 5 个损益类别, 实际 %d", len(pl))
	}
	if pl[0].Label != string(model.CategoryRevenue) || pl[0].NetAmount != -1000 {
		t.Fatalf("revenue 行错误: %+v", pl[0])
	}

	// 未分类科目不进损益表
	for _, row := range pl {
		if row.Label == string(model.CategoryUnclassified) {
			t.Fatal("损益表不应包含 unclassified")
		}
	}
}

func TestBuildBalanceSheetOnlyUnclassified(t *testing.T) {
	t.Parallel()

	rows := []model.LedgerRow{
		{Account: "Sales", NetAmount: -1000, Category: model.CategoryRevenue},
		{Account: "Trade Debtors", NetAmount: 200, Category: model.CategoryUnclassified},
		{Account: "Cash at Bank", NetAmount: 500, Category: model.CategoryUnclassified},
		{Account: "Cash at Bank", NetAmount: -100, Category: model.CategoryUnclassified},
	}

	bs := buildBalanceSheet(rows)
	if len(bs) != 2 {
		t.Fatalf("资产负债表应含 2 个科目, 实际 %d", len(bs))
	}
	if bs[0].Label != "Cash at Bank" || bs[0].NetAmount != 400 {
		t.Fatalf("Cash at Bank 汇总错误: %+v", bs[0])
	}
	if bs[1].Label != "Trade Debtors" || bs[1].NetAmount != 200 {
		t.Fatalf("Trade Debtors 汇总错误: %+v", bs[1])
	}
}

func TestMarginPctZeroRevenue(t *testing.T) {
	t.Parallel()

	// revenue 为 0 时约定返回 0, 不除零
	if got := marginPct(500, 0); got != 0 {
		t.Fatalf("零收入毛利率约定为 0, 实际 %v", got)
	}
	if got := marginPct(250, 1000); got != 25 {
		t.Fatalf("marginPct(250, 1000) 应为 25, 实际 %v", got)
	}
}
