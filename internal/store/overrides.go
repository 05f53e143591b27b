package store

// SaveOverrides 按表头指纹保存用户确认的属性→列覆盖（逐条 upsert）
func (s *Store) SaveOverrides(fingerprint string, overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for attr, column := range overrides {
		if _, err := tx.Exec(`
			INSERT INTO column_overrides (fingerprint, attribute, column_name, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(fingerprint, attribute)
			DO UPDATE SET column_name = excluded.column_name, updated_at = CURRENT_TIMESTAMP
		`, fingerprint, attr, column); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetOverrides 取指定表头指纹下记住的覆盖，无记录返回空 map
func (s *Store) GetOverrides(fingerprint string) (map[string]string, error) {
	rows, err := s.db.Query(`
		SELECT attribute, column_name FROM column_overrides WHERE fingerprint = ?
	`, fingerprint)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var attr, column string
		if err := rows.Scan(&attr, &column); err != nil {
			return nil, err
		}
		out[attr] = column
	}

	return out, rows.Err()
}
