package analyzer

import (
	"fmt"
	"strings"
)

// MissingMandatoryAttributeError 必备属性未对齐，不做任何部分计算
// 调用方可补充覆盖后重新对齐再试
type MissingMandatoryAttributeError struct {
	Attributes []string // 缺失的必备属性名
}

func (e *MissingMandatoryAttributeError) Error() string {
	return fmt.Sprintf("必备属性未对齐: %s", strings.Join(e.Attributes, ", "))
}

// NoAccountColumnError 候选科目列全部未对齐，无法分组
type NoAccountColumnError struct {
	Tried []string // 按优先级尝试过的候选属性名
}

func (e *NoAccountColumnError) Error() string {
	return fmt.Sprintf("未找到可用的科目列, 已尝试: %s", strings.Join(e.Tried, ", "))
}

// NoAmountColumnError 借/贷列与单金额列均未对齐
type NoAmountColumnError struct{}

func (e *NoAmountColumnError) Error() string {
	return "未找到金额列: 借/贷双列与单签名金额列均未对齐"
}

// MalformedAmountError 清洗后仍无法解析为数值的金额单元格
// 不做静默归零：归零会在无任何记录的情况下污染 KPI 合计
type MalformedAmountError struct {
	Row    int    // 数据区 1 起始行号
	Column string // 实际列名
	Value  string // 原始单元格内容
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("第 %d 行列 %q 金额无法解析: %q", e.Row, e.Column, e.Value)
}
