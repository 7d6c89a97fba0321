package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     TrendResult
	}{
		{"both zero", 0, 0, TrendResult{Label: "No change", Direction: TrendFlat}},
		{"new", 5, 0, TrendResult{Label: "New this period", Direction: TrendUp}},
		{"equal", 100, 100, TrendResult{Label: "Stable", Direction: TrendFlat}},
		{"under half a percent", 100.4, 100, TrendResult{Label: "Stable", Direction: TrendFlat}},
		{"up", 110, 100, TrendResult{Label: "+10% vs last", Direction: TrendUp}},
		{"down", 90, 100, TrendResult{Label: "-10% vs last", Direction: TrendDown}},
		{"half rounds up", 9, 8, TrendResult{Label: "+13% vs last", Direction: TrendUp}},
		{"negative half rounds up", 7, 8, TrendResult{Label: "-12% vs last", Direction: TrendDown}},
		{"drop to zero", 0, 40, TrendResult{Label: "-100% vs last", Direction: TrendDown}},
		{"triple", 3, 1, TrendResult{Label: "+200% vs last", Direction: TrendUp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareTrend(tt.current, tt.previous))
		})
	}
}
