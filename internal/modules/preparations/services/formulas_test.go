package services

import "testing"

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestComputeNombreGellules(t *testing.T) {
	if got := ComputeNombreGellules(intPtr(30), intPtr(2)); got == nil || *got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
	if got := ComputeNombreGellules(nil, intPtr(2)); got != nil {
		t.Fatalf("expected nil when qsp missing, got %v", *got)
	}
	if got := ComputeNombreGellules(intPtr(30), nil); got != nil {
		t.Fatalf("expected nil when modeEmploi missing, got %v", *got)
	}
}

func TestComputeComprimeEcrase(t *testing.T) {
	cases := []struct {
		name            string
		adapte, initial *float64
		qsp, modeEmploi *int
		want            *float64
	}{
		{"nominal", floatPtr(5), floatPtr(10), intPtr(2), intPtr(2), floatPtr(2)},
		{"rounded", floatPtr(2.5), floatPtr(10), intPtr(5), intPtr(2), floatPtr(2.5)},
		{"two decimals", floatPtr(1), floatPtr(3), intPtr(1), intPtr(1), floatPtr(0.33)},
		{"round half up", floatPtr(1), floatPtr(8), intPtr(1), intPtr(1), floatPtr(0.13)},
		{"zero initial", floatPtr(5), floatPtr(0), intPtr(2), intPtr(2), nil},
		{"zero qsp", floatPtr(5), floatPtr(10), intPtr(0), intPtr(2), nil},
		{"missing adapte", nil, floatPtr(10), intPtr(2), intPtr(2), nil},
		{"missing mode", floatPtr(5), floatPtr(10), intPtr(2), nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeComprimeEcrase(tc.adapte, tc.initial, tc.qsp, tc.modeEmploi)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil || *got != *tc.want {
				t.Fatalf("expected %v, got %v", *tc.want, got)
			}
		})
	}
}
