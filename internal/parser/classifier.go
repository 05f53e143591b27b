package parser

import (
	"ledgerlens/internal/model"
)

// categoryRule 一个类别及其关键词表（关键词为规范化形式，不含空白）
type categoryRule struct {
	Category model.AccountCategory
	Keywords []string
}

// AccountClassifier 科目分类器
// 类别顺序即优先级：Revenue > COGS > OPEX > Other Income > Other Expense，
// 首个命中的类别即返回。一个名称同时含两类关键词时归入排前的类别，
// 这是固定约定而非按"更具体"取舍
type AccountClassifier struct {
	rules []categoryRule
}

// NewAccountClassifier 创建分类器（默认关键词表）
func NewAccountClassifier() *AccountClassifier {
	return &AccountClassifier{rules: defaultCategoryRules()}
}

// Classify 对科目/摘要文本分类，全函数：空输入与无命中均返回 Unclassified
func (c *AccountClassifier) Classify(text string) model.AccountCategory {
	norm := NormalizeAccountText(text)
	if norm == "" {
		return model.CategoryUnclassified
	}

	for _, rule := range c.rules {
		if ContainsAny(norm, rule.Keywords) {
			return rule.Category
		}
	}

	return model.CategoryUnclassified
}

func defaultCategoryRules() []categoryRule {
	return []categoryRule{
		{
			Category: model.CategoryRevenue,
			Keywords: []string{"sales", "revenue", "turnover", "feesearned", "serviceincome"},
		},
		{
			Category: model.CategoryCOGS,
			Keywords: []string{"cogs", "costofgoods", "costofsales", "purchase", "inventory", "rawmaterial", "freight", "carriage", "directlabour", "directlabor"},
		},
		{
			Category: model.CategoryOPEX,
			Keywords: []string{"rent", "salar", "wage", "payroll", "utilit", "insurance", "market", "advertis", "travel", "repair", "maintenance", "depreciation", "amortisation", "amortization", "telephone", "subscription", "training", "legalfee", "accountingfee", "officesupplies", "stationery"},
		},
		{
			Category: model.CategoryOtherIncome,
			Keywords: []string{"interestincome", "interestreceived", "dividend", "gainondisposal", "otherincome", "rebate", "grant", "sundryincome"},
		},
		{
			Category: model.CategoryOtherExpense,
			Keywords: []string{"interestexpense", "interestpaid", "bankcharge", "tax", "penalty", "fine", "lossondisposal", "otherexpense", "writeoff", "baddebt", "exchangeloss"},
		},
	}
}
