package parser

import (
	"sort"
	"strings"

	"ledgerlens/internal/model"
)

// ResolverOptions 对齐器选项
type ResolverOptions struct {
	EnableFuzzy bool    // 是否启用模糊回退
	FuzzyCutoff float64 // 模糊匹配最低相似度 (0-1)
}

// AttributeResolver 属性对齐器
// 匹配优先级：精确/改写别名 > 用户覆盖 > 同义词 > 模糊回退
// 一列至多被一个属性占用，按目录顺序先到先得
type AttributeResolver struct {
	catalog *AttributeCatalog
	opts    ResolverOptions
}

// NewAttributeResolver 创建对齐器
func NewAttributeResolver(catalog *AttributeCatalog, opts ResolverOptions) *AttributeResolver {
	if opts.FuzzyCutoff <= 0 || opts.FuzzyCutoff > 1 {
		opts.FuzzyCutoff = 0.8
	}
	return &AttributeResolver{catalog: catalog, opts: opts}
}

// Resolve 对齐实际列名与规范属性，永不失败，总是返回（可能不完整的）结果
// overrides 的键为规范属性名、值为实际列名；人工覆盖视为基准事实，
// 即便自动匹配已给出结论也会被覆盖取代
func (r *AttributeResolver) Resolve(columnNames []string, overrides map[string]string) model.ResolutionResult {
	normCols := make([]string, len(columnNames))
	for i, col := range columnNames {
		normCols[i] = NormalizeColumnName(col)
	}

	// assigned: 属性名 → 列下标；claimed: 列下标 → 属性名
	assigned := make(map[string]int)
	claimed := make(map[int]string)

	assign := func(attr string, col int) {
		assigned[attr] = col
		claimed[col] = attr
	}
	release := func(attr string) {
		if col, ok := assigned[attr]; ok {
			delete(claimed, col)
			delete(assigned, attr)
		}
	}

	// 第一级：精确匹配（含表头改写别名）
	for _, spec := range r.catalog.All() {
		for idx, nc := range normCols {
			if nc == "" {
				continue
			}
			if _, taken := claimed[idx]; taken {
				continue
			}
			if nc == spec.Name || ApplyHeaderAlias(nc) == spec.Name {
				assign(spec.Name, idx)
				break
			}
		}
	}

	// 第二级：用户覆盖，按目录顺序处理保证确定性
	for _, spec := range r.catalog.All() {
		colName, ok := overrides[spec.Name]
		if !ok {
			continue
		}
		idx := findColumn(columnNames, normCols, colName)
		if idx < 0 {
			// 覆盖指向不存在的列，忽略
			continue
		}
		// 人工修正优先：抢占已被自动匹配占用的列
		if prev, taken := claimed[idx]; taken && prev != spec.Name {
			release(prev)
		}
		release(spec.Name)
		assign(spec.Name, idx)
	}

	// 第三级：同义词，按同义词表顺序首中即止
	for _, spec := range r.catalog.All() {
		if _, ok := assigned[spec.Name]; ok {
			continue
		}
		for _, syn := range spec.Synonyms {
			idx := -1
			for i, nc := range normCols {
				if _, taken := claimed[i]; taken {
					continue
				}
				if nc == syn {
					idx = i
					break
				}
			}
			if idx >= 0 {
				assign(spec.Name, idx)
				break
			}
		}
	}

	// 第四级（可选）：模糊回退，仅用于非必备属性
	// 必备属性猜错会无声污染 KPI，宁缺毋滥
	if r.opts.EnableFuzzy {
		for _, spec := range r.catalog.All() {
			if spec.Mandatory {
				continue
			}
			if _, ok := assigned[spec.Name]; ok {
				continue
			}
			if idx := r.fuzzyMatch(spec, normCols, claimed); idx >= 0 {
				assign(spec.Name, idx)
			}
		}
	}

	mapping := make(model.ColumnMapping, len(assigned))
	for attr, idx := range assigned {
		mapping[attr] = columnNames[idx]
	}

	present := make([]string, 0, len(mapping))
	for attr := range mapping {
		present = append(present, attr)
	}
	sort.Strings(present)

	missing := make([]string, 0)
	missingMandatory := make([]string, 0)
	for _, spec := range r.catalog.All() {
		if _, ok := mapping[spec.Name]; ok {
			continue
		}
		missing = append(missing, spec.Name)
		if spec.Mandatory {
			missingMandatory = append(missingMandatory, spec.Name)
		}
	}
	sort.Strings(missing)
	sort.Strings(missingMandatory)

	return model.ResolutionResult{
		Mapping:          mapping,
		Present:          present,
		Missing:          missing,
		MissingMandatory: missingMandatory,
	}
}

// fuzzyMatch 用属性的首选同义词与未占用列求相似度，取最高且达阈值者
func (r *AttributeResolver) fuzzyMatch(spec model.AttributeSpec, normCols []string, claimed map[int]string) int {
	primary := spec.Name
	if len(spec.Synonyms) > 0 {
		primary = spec.Synonyms[0]
	}

	bestIdx := -1
	bestRatio := 0.0
	for i, nc := range normCols {
		if nc == "" {
			continue
		}
		if _, taken := claimed[i]; taken {
			continue
		}
		ratio := SimilarityRatio(primary, nc)
		if strings.Contains(nc, primary) || strings.Contains(primary, nc) {
			ratio = 1
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestIdx = i
		}
	}

	if bestRatio >= r.opts.FuzzyCutoff {
		return bestIdx
	}
	return -1
}

// findColumn 先按原始列名精确找，找不到再按规范化形式找
func findColumn(columnNames, normCols []string, target string) int {
	for i, col := range columnNames {
		if col == target {
			return i
		}
	}
	normTarget := NormalizeColumnName(target)
	for i, nc := range normCols {
		if nc != "" && nc == normTarget {
			return i
		}
	}
	return -1
}

// MissingDetails 为缺失属性生成解释信息（mandatory 标志与受影响指标）
func (r *AttributeResolver) MissingDetails(res model.ResolutionResult) []model.MissingAttributeDetail {
	out := make([]model.MissingAttributeDetail, 0, len(res.Missing))
	for _, name := range res.Missing {
		spec, ok := r.catalog.Get(name)
		if !ok {
			continue
		}
		out = append(out, model.MissingAttributeDetail{
			Attribute: spec.Name,
			Mandatory: spec.Mandatory,
			Affects:   spec.Affects,
		})
	}
	return out
}
