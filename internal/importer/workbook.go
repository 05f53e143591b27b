package importer

import (
	"github.com/xuri/excelize/v2"

	"ledgerlens/internal/model"
)

// NamedGrid 带 sheet 名的原始网格
type NamedGrid struct {
	Name string
	Grid model.RawGrid
}

// ReadWorkbookGrids 读取工作簿全部 sheet 的原始网格（按 sheet 顺序）
func ReadWorkbookGrids(path string) ([]NamedGrid, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	out := make([]NamedGrid, 0)
	for _, sheetName := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheetName)
		if err != nil {
			// 单个 sheet 读取失败不中断，后续 sheet 仍可用
			continue
		}
		out = append(out, NamedGrid{
			Name: sheetName,
			Grid: model.RawGrid(rows),
		})
	}

	return out, nil
}
