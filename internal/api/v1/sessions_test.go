package v1

import (
	"testing"

	"ledgerlens/internal/model"
)

func TestUploadSessionRoundTrip(t *testing.T) {
	t.Parallel()

	store := newUploadSessionStore()

	token := store.put(uploadSession{
		table:       &model.Table{Headers: []string{"Account Name"}},
		filename:    "ledger.xlsx",
		fingerprint: "abc",
	})
	if token == "" {
		t.Fatal("put 应返回非空 token")
	}

	session, ok := store.get(token)
	if !ok {
		t.Fatal("刚写入的会话应可读取")
	}
	if session.filename != "ledger.xlsx" || session.fingerprint != "abc" {
		t.Fatalf("会话内容不一致: %+v", session)
	}
	if session.table == nil || len(session.table.Headers) != 1 {
		t.Fatal("会话应保留表格")
	}

	if _, ok := store.get("unknown"); ok {
		t.Fatal("未知 token 不应命中")
	}

	// 两次 put 生成不同 token
	other := store.put(uploadSession{filename: "b.csv"})
	if other == token {
		t.Fatal("token 应唯一")
	}
}
