package parser

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名：小写、去首尾空白、空白和连字符折叠为下划线
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = whitespaceRe.ReplaceAllString(name, "_")
	name = strings.ReplaceAll(name, "-", "_")
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return strings.Trim(name, "_")
}

// headerAliases 表头改写别名：规范化列名 → 规范属性名
// 覆盖导出工具常见的括号写法
var headerAliases = map[string]string{
	"debit_(gbp)":  "debit_gbp",
	"debit(gbp)":   "debit_gbp",
	"credit_(gbp)": "credit_gbp",
	"credit(gbp)":  "credit_gbp",
	"amount_(gbp)": "amount",
	"amount(gbp)":  "amount",
}

// ApplyHeaderAlias 返回规范化列名对应的改写别名，无别名返回原值
func ApplyHeaderAlias(normalized string) string {
	if alias, ok := headerAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// NormalizeAccountText 规范化科目/摘要文本：小写并去掉全部空白
func NormalizeAccountText(text string) string {
	text = strings.ToLower(text)
	return whitespaceRe.ReplaceAllString(text, "")
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// SimilarityRatio 两个字符串的相似度比率 (0-1)，基于编辑距离
func SimilarityRatio(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	return 1 - float64(dist)/float64(maxLen)
}

// HeaderFingerprint 表头集合指纹：规范化、排序后取 SHA-1
// 用于"记住的列覆盖"按文件结构复用
func HeaderFingerprint(columns []string) string {
	norm := make([]string, 0, len(columns))
	for _, c := range columns {
		if v := NormalizeColumnName(c); v != "" {
			norm = append(norm, v)
		}
	}
	sort.Strings(norm)
	sum := sha1.Sum([]byte(strings.Join(norm, ";")))
	return hex.EncodeToString(sum[:])
}
