package store

import (
	"strings"
	"time"
)

// ImportLog 一次导入/分析的历史记录
type ImportLog struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	SheetName    string    `json:"sheetName"`
	HeaderRow    int       `json:"headerRow"`
	RowsIn       int       `json:"rowsIn"`
	RowsDropped  int       `json:"rowsDropped"`
	Status       string    `json:"status"` // analyzed / failed
	ErrorKind    string    `json:"errorKind,omitempty"`
	MissingAttrs []string  `json:"missingAttrs,omitempty"`
	DurationMS   int64     `json:"durationMs"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InsertImportLog 写入一条导入历史
func (s *Store) InsertImportLog(entry ImportLog) error {
	_, err := s.db.Exec(`
		INSERT INTO import_logs
			(filename, sheet_name, header_row, rows_in, rows_dropped, status, error_kind, missing_attrs, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Filename,
		entry.SheetName,
		entry.HeaderRow,
		entry.RowsIn,
		entry.RowsDropped,
		entry.Status,
		entry.ErrorKind,
		strings.Join(entry.MissingAttrs, ","),
		entry.DurationMS,
	)
	return err
}

// ListImportLogs 按时间倒序返回最近的导入历史
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, filename, sheet_name, header_row, rows_in, rows_dropped,
		       status, error_kind, missing_attrs, duration_ms, created_at
		FROM import_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ImportLog, 0, limit)
	for rows.Next() {
		var entry ImportLog
		var missing string
		if err := rows.Scan(
			&entry.ID,
			&entry.Filename,
			&entry.SheetName,
			&entry.HeaderRow,
			&entry.RowsIn,
			&entry.RowsDropped,
			&entry.Status,
			&entry.ErrorKind,
			&missing,
			&entry.DurationMS,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if missing != "" {
			entry.MissingAttrs = strings.Split(missing, ",")
		}
		out = append(out, entry)
	}

	return out, rows.Err()
}
