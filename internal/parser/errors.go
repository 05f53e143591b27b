package parser

import "fmt"

// HeaderNotFoundError 表头定位失败：没有任何行达到关键词匹配阈值
// 不回退到第 0 行，静默假定首行为表头会导致下游映射全部错位
type HeaderNotFoundError struct {
	RowsScanned int // 扫描过的行数
	Threshold   int // 要求的最小命中数
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("未定位到表头行: 扫描 %d 行, 无一行命中 >=%d 个表头关键词", e.RowsScanned, e.Threshold)
}
