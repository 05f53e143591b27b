package importer

import (
	"testing"

	"ledgerlens/internal/config"
)

func collectEvents(t *testing.T, ch <-chan ProgressEvent) []ProgressEvent {
	t.Helper()
	events := make([]ProgressEvent, 0)
	for event := range ch {
		events = append(events, event)
	}
	if len(events) == 0 {
		t.Fatal("导入未产生任何事件")
	}
	return events
}

func TestCoordinatorImportCSV(t *testing.T) {
	t.Parallel()

	// store 为 nil: 无历史与记忆, 导入本身不受影响
	coordinator := NewCoordinator(nil, config.DefaultConfig())

	path := writeTempFile(t, "ledger.csv",
		"Acme Trading Ltd General Ledger\n"+
			"Posted DT,Account Name,Debit (GBP),Credit (GBP)\n"+
			"2024-03-01,Sales,,\"1,000.00\"\n"+
			"2024-03-05,Office Rent,500,\n"+
			",TOTAL,500,1000\n")

	events := collectEvents(t, coordinator.Import(ImportOptions{FilePath: path}))

	last := events[len(events)-1]
	if last.Type != "done" {
		t.Fatalf("最后一个事件应为 done, 实际 %s (%s)", last.Type, last.Message)
	}

	outcome, ok := last.Data.(*ImportOutcome)
	if !ok {
		t.Fatalf("done 事件应携带 *ImportOutcome, 实际 %T", last.Data)
	}
	if outcome.HeaderRow != 1 {
		t.Fatalf("表头行应为 1, 实际 %d", outcome.HeaderRow)
	}
	if outcome.Fingerprint == "" {
		t.Fatal("产出应携带表头指纹")
	}
	if outcome.Analysis == nil {
		t.Fatal("done 产出应携带分析结果")
	}
	if got := outcome.Analysis.KPIs["revenue"]; got != 1000 {
		t.Fatalf("revenue 应为 1000, 实际 %v", got)
	}
	if got := outcome.Analysis.KPIs["ebitda"]; got != 1500 {
		t.Fatalf("ebitda 应为 1500, 实际 %v", got)
	}
	if outcome.Analysis.DroppedRows != 1 {
		t.Fatalf("TOTAL 行应被剔除, 实际剔除 %d 行", outcome.Analysis.DroppedRows)
	}
}

func TestCoordinatorHeaderNotFound(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(nil, config.DefaultConfig())

	path := writeTempFile(t, "noise.csv", "1,2,3\n4,5,6\n")

	events := collectEvents(t, coordinator.Import(ImportOptions{FilePath: path}))

	last := events[len(events)-1]
	if last.Type != "error" {
		t.Fatalf("无表头文件应以 error 事件结束, 实际 %s", last.Type)
	}
	data, ok := last.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("error 事件的 Data 应为 map, 实际 %T", last.Data)
	}
	if data["kind"] != "header_not_found" {
		t.Fatalf("错误类别应为 header_not_found, 实际 %v", data["kind"])
	}
}

func TestCoordinatorMissingMandatoryCarriesOutcome(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(nil, config.DefaultConfig())

	// 缺贷方列: 表头能定位, 分析阶段报必备属性缺失
	path := writeTempFile(t, "partial.csv",
		"Posted DT,Account Name,Debit (GBP)\n"+
			"2024-03-01,Sales,100\n")

	events := collectEvents(t, coordinator.Import(ImportOptions{FilePath: path}))

	last := events[len(events)-1]
	if last.Type != "error" {
		t.Fatalf("应以 error 事件结束, 实际 %s", last.Type)
	}
	data, ok := last.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("error 事件的 Data 应为 map, 实际 %T", last.Data)
	}
	if data["kind"] != "missing_mandatory_attribute" {
		t.Fatalf("错误类别应为 missing_mandatory_attribute, 实际 %v", data["kind"])
	}

	// 分析失败也要携带产出, 调用方才能基于同一张表补覆盖重试
	outcome, ok := data["outcome"].(*ImportOutcome)
	if !ok {
		t.Fatalf("error 事件应携带 *ImportOutcome, 实际 %T", data["outcome"])
	}
	if outcome.Table == nil {
		t.Fatal("产出应保留解析后的表格")
	}
	found := false
	for _, name := range outcome.Resolution.MissingMandatory {
		if name == "credit_gbp" {
			found = true
		}
	}
	if !found {
		t.Fatalf("缺失必备属性应包含 credit_gbp: %v", outcome.Resolution.MissingMandatory)
	}
}

func TestCoordinatorOverrides(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(nil, config.DefaultConfig())

	// 贷方列叫法特殊, 靠覆盖对齐
	path := writeTempFile(t, "weird.csv",
		"Posted DT,Account Name,Debit (GBP),CR Col\n"+
			"2024-03-01,Sales,,1000\n")

	events := collectEvents(t, coordinator.Import(ImportOptions{
		FilePath:  path,
		Overrides: map[string]string{"credit_gbp": "CR Col"},
	}))

	last := events[len(events)-1]
	if last.Type != "done" {
		t.Fatalf("覆盖后应分析成功, 实际 %s (%s)", last.Type, last.Message)
	}
	outcome := last.Data.(*ImportOutcome)
	if got := outcome.Resolution.Mapping["credit_gbp"]; got != "CR Col" {
		t.Fatalf("credit_gbp 应对齐到 CR Col, 实际 %q", got)
	}
	if got := outcome.Analysis.KPIs["revenue"]; got != 1000 {
		t.Fatalf("revenue 应为 1000, 实际 %v", got)
	}
}
