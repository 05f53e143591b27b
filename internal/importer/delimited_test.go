package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写临时文件失败: %v", err)
	}
	return path
}

func TestSniffDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{"逗号", "a,b,c\n1,2,3\n", ','},
		{"分号", "a;b;c\n1;2;3\n", ';'},
		{"制表符", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"首行空白跳过", "\n\na;b;c\n", ';'},
		{"无分隔符默认逗号", "single\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "sample.csv", tt.content)
			got, err := sniffDelimiter(path)
			if err != nil {
				t.Fatalf("嗅探失败: %v", err)
			}
			if got != tt.want {
				t.Fatalf("分隔符应为 %q, 实际 %q", tt.want, got)
			}
		})
	}
}

func TestReadDelimitedGrid(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "ledger.csv",
		"Account Name;Debit (GBP);Credit (GBP)\nSales;;1000\nRent;500\n")

	grid, err := ReadDelimitedGrid(path)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("应读出 3 行, 实际 %d", len(grid))
	}
	if len(grid[0]) != 3 {
		t.Fatalf("表头应为 3 列, 实际 %d", len(grid[0]))
	}
	// 行长不齐不报错
	if len(grid[2]) != 2 {
		t.Fatalf("短行应保持原始列数, 实际 %d", len(grid[2]))
	}
}
