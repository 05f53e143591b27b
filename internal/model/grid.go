package model

import "strings"

// RawGrid 原始网格：按行、按列的未类型化单元格文本
// 由解码层（excelize / csv）产出，核心只扫描和切片，不修改
type RawGrid [][]string

// Table 已定位表头后的类型化表格
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// TableFromGrid 以 headerRow 为表头行切分网格
// 数据行补齐到表头列数，短行右侧视为空单元格
func TableFromGrid(grid RawGrid, headerRow int) *Table {
	if headerRow < 0 || headerRow >= len(grid) {
		return &Table{Headers: []string{}, Rows: [][]string{}}
	}

	headers := make([]string, len(grid[headerRow]))
	copy(headers, grid[headerRow])

	rows := make([][]string, 0, len(grid)-headerRow-1)
	for _, src := range grid[headerRow+1:] {
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(src) {
				row[i] = src[i]
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}
}

// ColumnIndex 按列名精确查找列下标，找不到返回 -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if strings.TrimSpace(h) == strings.TrimSpace(name) {
			return i
		}
	}
	return -1
}

// Cell 取第 row 行第 col 列单元格，越界返回空串
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
