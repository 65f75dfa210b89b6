package kpi

import (
	"fmt"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// CollectionMonthly is one month of data-collection improvements.
type CollectionMonthly struct {
	Month               string  `json:"month"`
	AvgInfoGainPct      float64 `json:"avg_info_gain_pct"`
	WeightedInfoGainPct float64 `json:"weighted_info_gain_pct"`
	AvgSpeedImprPct     float64 `json:"avg_speed_impr_pct"`
	AvgSpeedDeltaSec    float64 `json:"avg_speed_delta_sec"`
	TotalFieldsAdded    float64 `json:"total_fields_added"`
}

type collectionAccum struct {
	infoGainSum    float64
	infoGainCount  float64
	speedImprSum   float64
	speedImprCount float64
	speedDeltaSum  float64
	speedDeltaN    float64
	fieldsAdded    float64
	sumBefore      float64
	sumAfter       float64
}

// CollectionMonthlyStats aggregates per-procedure field counts and timings into
// monthly info-gain and speed metrics. The weighted info gain weights each
// procedure by its fields_before, so small procedures cannot dominate.
func CollectionMonthlyStats(rows []dataset.Row, rng DateRange) []CollectionMonthly {
	accums := make(map[string]*collectionAccum)

	for _, row := range rows {
		month, ok := rowMonth(row, "month")
		if !ok || !rng.ContainsMonth(month) {
			continue
		}
		acc := accums[month]
		if acc == nil {
			acc = &collectionAccum{}
			accums[month] = acc
		}

		before, okB := num(row, "fields_before")
		after, okA := num(row, "fields_after")
		if okB && okA {
			if before > 0 {
				acc.infoGainSum += (after/before - 1) * 100
				acc.infoGainCount++
			}
			acc.fieldsAdded += after - before
			acc.sumBefore += before
			acc.sumAfter += after
		}

		tBefore, okTB := num(row, "time_before_sec")
		tAfter, okTA := num(row, "time_after_sec")
		if okTB && okTA {
			if tBefore > 0 {
				acc.speedImprSum += (tBefore - tAfter) / tBefore * 100
				acc.speedImprCount++
			}
			acc.speedDeltaSum += tAfter - tBefore // negative == faster
			acc.speedDeltaN++
		}
	}

	out := make([]CollectionMonthly, 0, len(accums))
	for _, month := range sortedKeys(accums) {
		acc := accums[month]
		m := CollectionMonthly{Month: month, TotalFieldsAdded: acc.fieldsAdded}
		if acc.infoGainCount > 0 {
			m.AvgInfoGainPct = acc.infoGainSum / acc.infoGainCount
		}
		if acc.sumBefore > 0 {
			m.WeightedInfoGainPct = (acc.sumAfter/acc.sumBefore - 1) * 100
		}
		if acc.speedImprCount > 0 {
			m.AvgSpeedImprPct = acc.speedImprSum / acc.speedImprCount
		}
		if acc.speedDeltaN > 0 {
			m.AvgSpeedDeltaSec = acc.speedDeltaSum / acc.speedDeltaN
		}
		out = append(out, m)
	}
	return out
}

func summarizeCollection(rows []dataset.Row, rng DateRange) (*Card, error) {
	monthly := CollectionMonthlyStats(rows, rng)
	var sum float64
	for _, m := range monthly {
		sum += m.WeightedInfoGainPct
	}
	var avg float64
	if len(monthly) > 0 {
		avg = sum / float64(len(monthly))
	}
	return &Card{
		KPI:       "data_collection",
		Label:     "Information Gain (weighted)",
		Value:     avg,
		Unit:      "%",
		Formatted: fmt.Sprintf("%.2f %%", avg),
		Help:      "Weighted by fields_before; higher is better",
	}, nil
}

func trendCollection(rows []dataset.Row, rng DateRange) (*Series, error) {
	series := &Series{
		KPI: "data_collection",
		Columns: []string{
			"avg_info_gain_pct", "weighted_info_gain_pct",
			"avg_speed_impr_pct", "avg_speed_delta_sec", "total_fields_added",
		},
	}
	for _, m := range CollectionMonthlyStats(rows, rng) {
		series.Points = append(series.Points, Point{
			Period: m.Month,
			Values: map[string]float64{
				"avg_info_gain_pct":      m.AvgInfoGainPct,
				"weighted_info_gain_pct": m.WeightedInfoGainPct,
				"avg_speed_impr_pct":     m.AvgSpeedImprPct,
				"avg_speed_delta_sec":    m.AvgSpeedDeltaSec,
				"total_fields_added":     m.TotalFieldsAdded,
			},
		})
	}
	return series, nil
}
