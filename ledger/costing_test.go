package ledger_test

import (
	"testing"

	"github.com/mmdatafocus/workshop_backend/ledger"
)

func TestBlendCost(t *testing.T) {
	tests := []struct {
		name        string
		oldQty      int
		oldAvg      string
		incomingQty int
		incomingAvg string
		want        string
	}{
		{"empty stock takes incoming cost", 0, "0", 10, "5", "5"},
		{"equal lots average", 10, "5", 10, "7", "6"},
		{"weighted by quantity", 30, "2", 10, "6", "3"},
		{"free lot dilutes cost", 5, "4", 5, "0", "2"},
		{"zero incoming keeps cost", 8, "3.25", 0, "9", "3.25"},
		{"no resulting stock uses incoming cost", 0, "4", 0, "9", "9"},
		{"repeating fraction", 1, "1", 2, "0", "0.3333333333333333"},
		{"fractional costs", 3, "1.10", 1, "2.30", "1.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.BlendCost(tt.oldQty, dec(tt.oldAvg), tt.incomingQty, dec(tt.incomingAvg))
			assertDecimal(t, "BlendCost", got, tt.want)
		})
	}
}
