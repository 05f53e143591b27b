package model

import "testing"

func TestTableFromGrid(t *testing.T) {
	t.Parallel()

	grid := RawGrid{
		{"Report Title"},
		{"Account", "Debit", "Credit"},
		{"Sales", "", "1000"},
		{"Rent", "500"}, // 短行右侧补空
	}

	table := TableFromGrid(grid, 1)
	if len(table.Headers) != 3 {
		t.Fatalf("表头应为 3 列, 实际 %d", len(table.Headers))
	}
	if len(table.Rows) != 2 {
		t.Fatalf("数据区应为 2 行, 实际 %d", len(table.Rows))
	}
	if len(table.Rows[1]) != 3 || table.Rows[1][2] != "" {
		t.Fatalf("短行应补齐到表头列数: %v", table.Rows[1])
	}
}

func TestTableFromGridOutOfRange(t *testing.T) {
	t.Parallel()

	table := TableFromGrid(RawGrid{{"a"}}, 5)
	if len(table.Headers) != 0 || len(table.Rows) != 0 {
		t.Fatalf("越界表头行应产出空表: %+v", table)
	}
}

func TestTableColumnIndexAndCell(t *testing.T) {
	t.Parallel()

	table := &Table{
		Headers: []string{"Account", " Debit "},
		Rows:    [][]string{{"Sales", "100"}},
	}

	if got := table.ColumnIndex("Debit"); got != 1 {
		t.Fatalf("列名匹配应忽略首尾空白, 实际 %d", got)
	}
	if got := table.ColumnIndex("missing"); got != -1 {
		t.Fatalf("未知列应返回 -1, 实际 %d", got)
	}

	if got := table.Cell(0, 1); got != "100" {
		t.Fatalf("Cell(0,1) = %q", got)
	}
	if got := table.Cell(9, 9); got != "" {
		t.Fatalf("越界取值应返回空串, 实际 %q", got)
	}
}
