package parser

import (
	"errors"
	"testing"

	"ledgerlens/internal/model"
)

func TestLocateHeaderSkipsDecorativeRows(t *testing.T) {
	t.Parallel()

	grid := model.RawGrid{
		{"Acme Trading Ltd"},
		{""},
		{"Period: 2024-03"},
		{"Posted DT", "Account Name", "Debit (GBP)", "Credit (GBP)"},
		{"2024-03-01", "Sales", "", "1000.00"},
	}

	locator := NewHeaderLocator(3)
	idx, err := locator.LocateHeader(grid)
	if err != nil {
		t.Fatalf("定位表头失败: %v", err)
	}
	if idx != 3 {
		t.Fatalf("表头行应为 3, 实际 %d", idx)
	}
}

func TestLocateHeaderNotFound(t *testing.T) {
	t.Parallel()

	grid := model.RawGrid{
		{"1", "2", "3"},
		{"alpha", "beta", "gamma"},
	}

	locator := NewHeaderLocator(3)
	_, err := locator.LocateHeader(grid)
	if err == nil {
		t.Fatal("无表头网格应报错而不是默认第 0 行")
	}

	var notFound *HeaderNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("错误类型应为 HeaderNotFoundError, 实际 %T", err)
	}
	if notFound.RowsScanned != 2 {
		t.Fatalf("RowsScanned 应为 2, 实际 %d", notFound.RowsScanned)
	}
	if notFound.Threshold != 3 {
		t.Fatalf("Threshold 应为 3, 实际 %d", notFound.Threshold)
	}
}

func TestLocateHeaderSingleKeywordTitleNotEnough(t *testing.T) {
	t.Parallel()

	// 标题行只命中一个词, 不应被误判为表头
	grid := model.RawGrid{
		{"Account Listing Report"},
		{"Date", "Account", "Debit", "Credit"},
	}

	locator := NewHeaderLocator(2)
	idx, err := locator.LocateHeader(grid)
	if err != nil {
		t.Fatalf("定位表头失败: %v", err)
	}
	if idx != 1 {
		t.Fatalf("表头行应为 1, 实际 %d", idx)
	}
}

func TestLocateHeaderThresholdFloor(t *testing.T) {
	t.Parallel()

	// 阈值低于 2 时按 2 处理: 单关键词行不能当表头
	grid := model.RawGrid{
		{"Balance"},
	}

	locator := NewHeaderLocator(0)
	if _, err := locator.LocateHeader(grid); err == nil {
		t.Fatal("阈值下限为 2, 单关键词行不应达标")
	}
}

func TestLocateHeaderEmptyGrid(t *testing.T) {
	t.Parallel()

	locator := NewHeaderLocator(2)
	if _, err := locator.LocateHeader(model.RawGrid{}); err == nil {
		t.Fatal("空网格应返回 HeaderNotFoundError")
	}
}
