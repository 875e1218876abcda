package ranking

import "testing"

func TestComputeTrend(t *testing.T) {
	t.Parallel()

	intPtr := func(v int) *int { return &v }
	tests := []struct {
		name     string
		current  int
		previous *int
		want     Trend
	}{
		{name: "zero previous is new", current: 5, previous: intPtr(0), want: TrendNew},
		{name: "missing previous is new", current: 5, previous: nil, want: TrendNew},
		{name: "climbed", current: 7, previous: intPtr(10), want: TrendUp},
		{name: "dropped", current: 10, previous: intPtr(7), want: TrendDown},
		{name: "unchanged", current: 5, previous: intPtr(5), want: TrendSame},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ComputeTrend(tt.current, tt.previous); got != tt.want {
				t.Fatalf("unexpected trend: got=%s want=%s", got, tt.want)
			}
		})
	}
}
