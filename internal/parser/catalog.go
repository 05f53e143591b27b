package parser

import (
	"fmt"

	"ledgerlens/internal/model"
)

// AttributeCatalog 规范属性目录：有序、只读
// 进程启动时构造一次，注入到对齐器和分析器
type AttributeCatalog struct {
	specs []model.AttributeSpec
	index map[string]int
}

// NewAttributeCatalog 创建目录，属性名重复时报错
func NewAttributeCatalog(specs []model.AttributeSpec) (*AttributeCatalog, error) {
	index := make(map[string]int, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("第 %d 个属性缺少名称", i)
		}
		if _, ok := index[spec.Name]; ok {
			return nil, fmt.Errorf("属性名重复: %s", spec.Name)
		}
		index[spec.Name] = i
	}
	return &AttributeCatalog{specs: specs, index: index}, nil
}

// Get 按规范属性名取定义
func (c *AttributeCatalog) Get(name string) (model.AttributeSpec, bool) {
	i, ok := c.index[name]
	if !ok {
		return model.AttributeSpec{}, false
	}
	return c.specs[i], true
}

// All 按目录顺序返回全部属性定义（副本）
func (c *AttributeCatalog) All() []model.AttributeSpec {
	out := make([]model.AttributeSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Names 按目录顺序返回全部属性名
func (c *AttributeCatalog) Names() []string {
	out := make([]string, len(c.specs))
	for i, spec := range c.specs {
		out[i] = spec.Name
	}
	return out
}

// Mandatory 按目录顺序返回必备属性名
func (c *AttributeCatalog) Mandatory() []string {
	out := make([]string, 0, len(c.specs))
	for _, spec := range c.specs {
		if spec.Mandatory {
			out = append(out, spec.Name)
		}
	}
	return out
}

// Len 目录内属性数量
func (c *AttributeCatalog) Len() int {
	return len(c.specs)
}

// DefaultCatalog 默认总账属性目录
func DefaultCatalog() *AttributeCatalog {
	c, err := NewAttributeCatalog(defaultAttributeSpecs())
	if err != nil {
		// 默认目录是静态数据，键重复属编程错误
		panic(err)
	}
	return c
}

func defaultAttributeSpecs() []model.AttributeSpec {
	kpiMetrics := []string{"net_amount", "revenue", "cogs", "opex", "gross_profit", "ebitda", "net_profit", "trial_balance"}

	return []model.AttributeSpec{
		{
			Name:     "posted_dt",
			Synonyms: []string{"posting_date", "posted_date", "post_date", "gl_date", "date"},
			Affects:  []string{"trend_metrics"},
		},
		{
			Name:     "doc_dt",
			Synonyms: []string{"document_date", "doc_date", "voucher_date"},
		},
		{
			Name:     "doc",
			Synonyms: []string{"document_number", "document_no", "doc_no", "doc_number", "voucher_no"},
		},
		{
			Name:     "memo_description",
			Synonyms: []string{"description", "memo", "narrative", "line_description"},
			Affects:  []string{"account_classification"},
		},
		{
			Name:     "department_name",
			Synonyms: []string{"department", "dept", "cost_centre", "cost_center"},
		},
		{
			Name:     "supplier_name",
			Synonyms: []string{"vendor", "vendor_name", "payee"},
		},
		{
			Name:     "item_name",
			Synonyms: []string{"item", "product", "product_name"},
		},
		{
			Name:     "customer_name",
			Synonyms: []string{"customer", "client", "client_name"},
		},
		{
			Name:     "supplier",
			Synonyms: []string{"supplier_code", "vendor_code"},
		},
		{
			Name:     "jnl",
			Synonyms: []string{"journal", "journal_type", "jnl_type", "source_journal"},
		},
		{
			Name:     "account_name",
			Synonyms: []string{"account", "account_description", "gl_account", "nominal", "nominal_account"},
			Affects:  []string{"account_classification", "trial_balance", "profit_and_loss", "balance_sheet", "category_summary"},
		},
		{
			Name:      "debit_gbp",
			Mandatory: true,
			Synonyms:  []string{"debit", "debit_amount", "dr", "dr_amount"},
			Affects:   kpiMetrics,
		},
		{
			Name:      "credit_gbp",
			Mandatory: true,
			Synonyms:  []string{"credit", "credit_amount", "cr", "cr_amount"},
			Affects:   kpiMetrics,
		},
		{
			Name:     "currency",
			Synonyms: []string{"ccy", "currency_code"},
		},
		{
			Name:     "amount",
			Synonyms: []string{"net_amount", "value", "transaction_amount"},
			Affects:  kpiMetrics,
		},
	}
}
