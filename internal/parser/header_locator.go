package parser

import (
	"strings"

	"ledgerlens/internal/model"
)

// defaultHeaderVocabulary 表头参考词表
// 覆盖金额/日期/科目/单据/摘要/部门/往来方/品类各族常见叫法（规范化形式）
var defaultHeaderVocabulary = []string{
	// 金额族
	"debit", "credit", "amount", "net_amount", "value", "balance", "currency",
	// 日期族
	"posted_dt", "posting_date", "doc_dt", "document_date", "date",
	// 科目族
	"account_name", "account", "gl_account", "nominal",
	// 单据族
	"doc", "document_number", "voucher_no", "reference", "jnl", "journal",
	// 摘要族
	"memo_description", "description", "memo", "narrative",
	// 部门族
	"department_name", "department", "cost_centre", "cost_center",
	// 往来方族
	"supplier_name", "supplier", "vendor", "customer_name", "customer", "payee",
	// 品类族
	"item_name", "item", "category", "product",
}

const minHeaderMatchThreshold = 2

// HeaderLocator 表头定位器
type HeaderLocator struct {
	vocabulary []string
	threshold  int
}

// NewHeaderLocator 创建定位器，threshold 低于 2 时按 2 处理
func NewHeaderLocator(threshold int) *HeaderLocator {
	if threshold < minHeaderMatchThreshold {
		threshold = minHeaderMatchThreshold
	}
	return &HeaderLocator{
		vocabulary: defaultHeaderVocabulary,
		threshold:  threshold,
	}
}

// LocateHeader 自上而下扫描网格，返回首个达到关键词匹配阈值的行下标
// 全空行跳过；没有任何行达标时返回 HeaderNotFoundError
func (l *HeaderLocator) LocateHeader(grid model.RawGrid) (int, error) {
	for i, row := range grid {
		if rowIsBlank(row) {
			continue
		}

		matches := 0
		for _, cell := range row {
			norm := NormalizeColumnName(cell)
			if norm == "" {
				continue
			}
			if l.matchesVocabulary(norm) {
				matches++
			}
		}

		if matches >= l.threshold {
			return i, nil
		}
	}

	return 0, &HeaderNotFoundError{RowsScanned: len(grid), Threshold: l.threshold}
}

// matchesVocabulary 规范化单元格与词表双向包含即视为命中
func (l *HeaderLocator) matchesVocabulary(norm string) bool {
	for _, term := range l.vocabulary {
		if strings.Contains(norm, term) || strings.Contains(term, norm) {
			return true
		}
	}
	return false
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
