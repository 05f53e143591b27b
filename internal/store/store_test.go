package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("初始化存储失败: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestDBExposesRawConnection(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	// 原始连接可用于 schema 之外的直接查询
	var n int
	err := st.DB().QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('import_logs', 'column_overrides')
	`).Scan(&n)
	if err != nil {
		t.Fatalf("直接查询失败: %v", err)
	}
	if n != 2 {
		t.Fatalf("schema 应建出 2 张表, 实际 %d", n)
	}
}

func TestImportLogRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	entries := []ImportLog{
		{Filename: "a.xlsx", SheetName: "Sheet1", HeaderRow: 2, RowsIn: 100, RowsDropped: 3, Status: "analyzed", DurationMS: 120},
		{Filename: "b.csv", Status: "failed", ErrorKind: "missing_mandatory_attribute", MissingAttrs: []string{"credit_gbp"}, DurationMS: 15},
	}
	for _, e := range entries {
		if err := st.InsertImportLog(e); err != nil {
			t.Fatalf("写入历史失败: %v", err)
		}
	}

	logs, err := st.ListImportLogs(10)
	if err != nil {
		t.Fatalf("查询历史失败: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("应查出 2 条记录, 实际 %d", len(logs))
	}

	// 倒序: 最后写入的在前
	if logs[0].Filename != "b.csv" {
		t.Fatalf("应按时间倒序, 首条实际为 %s", logs[0].Filename)
	}
	if len(logs[0].MissingAttrs) != 1 || logs[0].MissingAttrs[0] != "credit_gbp" {
		t.Fatalf("缺失属性应往返一致, 实际 %v", logs[0].MissingAttrs)
	}
	if logs[1].RowsDropped != 3 {
		t.Fatalf("RowsDropped 应为 3, 实际 %d", logs[1].RowsDropped)
	}
	if logs[0].CreatedAt.IsZero() {
		t.Fatal("CreatedAt 应由数据库填充")
	}
}

func TestListImportLogsLimit(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	for i := 0; i < 5; i++ {
		if err := st.InsertImportLog(ImportLog{Filename: "f.csv", Status: "analyzed"}); err != nil {
			t.Fatalf("写入历史失败: %v", err)
		}
	}

	logs, err := st.ListImportLogs(3)
	if err != nil {
		t.Fatalf("查询历史失败: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("limit=3 应返回 3 条, 实际 %d", len(logs))
	}
}

func TestOverridesRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	fp := "abc123"

	if err := st.SaveOverrides(fp, map[string]string{
		"credit_gbp": "CR Col",
		"posted_dt":  "Txn Date",
	}); err != nil {
		t.Fatalf("保存覆盖失败: %v", err)
	}

	got, err := st.GetOverrides(fp)
	if err != nil {
		t.Fatalf("读取覆盖失败: %v", err)
	}
	if len(got) != 2 || got["credit_gbp"] != "CR Col" {
		t.Fatalf("覆盖往返不一致: %v", got)
	}

	// upsert: 同指纹同属性更新列名
	if err := st.SaveOverrides(fp, map[string]string{"credit_gbp": "Credit Amount"}); err != nil {
		t.Fatalf("更新覆盖失败: %v", err)
	}
	got, _ = st.GetOverrides(fp)
	if got["credit_gbp"] != "Credit Amount" {
		t.Fatalf("upsert 后应读到新列名, 实际 %q", got["credit_gbp"])
	}

	// 不同指纹互不可见
	other, err := st.GetOverrides("other")
	if err != nil {
		t.Fatalf("读取覆盖失败: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("不同指纹不应读到覆盖: %v", other)
	}
}
