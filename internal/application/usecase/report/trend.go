package report

import (
	"fmt"
	"math"
)

// TrendDirection is the direction a metric moved in.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// TrendResult describes how a metric compares with the previous period.
type TrendResult struct {
	Label     string         `json:"label"`
	Direction TrendDirection `json:"direction"`
}

// stableThreshold is the smallest change in percent reported as a move.
const stableThreshold = 0.5

// CompareTrend compares current with previous as a rounded percentage change.
func CompareTrend(current, previous float64) TrendResult {
	if previous == 0 {
		if current == 0 {
			return TrendResult{Label: "No change", Direction: TrendFlat}
		}
		return TrendResult{Label: "New this period", Direction: TrendUp}
	}

	delta := (current - previous) / previous * 100
	if math.Abs(delta) < stableThreshold {
		return TrendResult{Label: "Stable", Direction: TrendFlat}
	}

	// Halves round up, so -2.5 becomes -2.
	rounded := int(math.Floor(delta + 0.5))
	if delta > 0 {
		return TrendResult{Label: fmt.Sprintf("+%d%% vs last", rounded), Direction: TrendUp}
	}
	return TrendResult{Label: fmt.Sprintf("%d%% vs last", rounded), Direction: TrendDown}
}
