package analyzer

import (
	"fmt"

	"ledgerlens/internal/model"
)

// computeTrend 趋势窗口：以最大 posted_dt 为参考日，
// 对每个窗口求 [参考日-窗口, 参考日] 闭区间内的净额合计
// 日期解析失败的行只从趋势统计中剔除
func (a *Analyzer) computeTrend(rows []model.LedgerRow) model.TrendMetrics {
	dated := make([]model.LedgerRow, 0, len(rows))
	for _, row := range rows {
		if row.PostedAt != nil {
			dated = append(dated, row)
		}
	}
	if len(dated) == 0 {
		return nil
	}

	ref := *dated[0].PostedAt
	for _, row := range dated[1:] {
		if row.PostedAt.After(ref) {
			ref = *row.PostedAt
		}
	}

	out := make(model.TrendMetrics, len(a.trendWindows))
	for _, days := range a.trendWindows {
		start := ref.AddDate(0, 0, -days)
		sum := 0.0
		for _, row := range dated {
			t := *row.PostedAt
			if !t.Before(start) && !t.After(ref) {
				sum += row.NetAmount
			}
		}
		out[fmt.Sprintf("net_%dd", days)] = sum
	}
	return out
}
