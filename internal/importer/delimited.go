package importer

import (
	"bufio"
	"encoding/csv"
	"os"
	"strings"

	"ledgerlens/internal/model"
)

// sniffDelimiter 从首个非空行中嗅探分隔符（逗号/分号/制表符），默认逗号
func sniffDelimiter(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		best := ','
		bestCount := strings.Count(line, ",")
		if n := strings.Count(line, ";"); n > bestCount {
			best = ';'
			bestCount = n
		}
		if n := strings.Count(line, "\t"); n > bestCount {
			best = '\t'
		}
		return best, nil
	}

	return ',', scanner.Err()
}

// ReadDelimitedGrid 读取分隔文本文件为原始网格
func ReadDelimitedGrid(path string) (model.RawGrid, error) {
	delim, err := sniffDelimiter(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delim
	reader.FieldsPerRecord = -1 // 行长不齐是常态
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return model.RawGrid(records), nil
}
