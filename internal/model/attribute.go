package model

// AttributeSpec 规范属性定义
// 进程启动时静态构造，运行期只读
type AttributeSpec struct {
	Name      string   `json:"name"`      // 规范属性名（唯一）
	Mandatory bool     `json:"mandatory"` // 是否必备
	Synonyms  []string `json:"synonyms"`  // 规范化后的同义列名，按优先级排列
	Affects   []string `json:"affects"`   // 影响的下游指标，用于缺失说明
}

// ColumnMapping 规范属性名 → 实际源列名
type ColumnMapping map[string]string

// ResolutionResult 属性对齐结果
// Present 与 Missing 构成目录全集的一个划分；Present = Mapping 的键集
type ResolutionResult struct {
	Mapping          ColumnMapping `json:"mapping"`
	Present          []string      `json:"present"`
	Missing          []string      `json:"missing"`
	MissingMandatory []string      `json:"missingMandatory"`
}

// MissingAttributeDetail 缺失属性的解释信息（供 UI 提示）
type MissingAttributeDetail struct {
	Attribute string   `json:"attribute"`
	Mandatory bool     `json:"mandatory"`
	Affects   []string `json:"affects"`
}
