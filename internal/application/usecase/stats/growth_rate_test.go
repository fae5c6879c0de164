// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		prior   int64
		want    string
	}{
		{"both zero is flat", 0, 0, "0"},
		{"zero baseline with growth reports +100", 50, 0, "100"},
		{"zero baseline with decline reports -100", -50, 0, "-100"},
		{"simple growth", 150, 100, "50"},
		{"simple decline", 75, 100, "-25"},
		{"drop to zero", 0, 80, "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrowthRate(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.prior))
			if got.String() != tt.want {
				t.Errorf("expected %s%%, got %s%%", tt.want, got)
			}
		})
	}

	t.Run("rounds to two decimal places", func(t *testing.T) {
		got := GrowthRate(decimal.NewFromInt(1), decimal.NewFromInt(3))
		if got.String() != "-66.67" {
			t.Errorf("expected -66.67%%, got %s%%", got)
		}
	})
}
