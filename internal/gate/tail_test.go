package gate

import (
	"testing"

	domaingate "gatekeeper/domain/gate"
)

func TestTailK_ClampsToBounds(t *testing.T) {
	cfg := domaingate.DefaultConfig()

	cases := []struct {
		n    int
		want int
	}{
		{5, 2},   // ceil(5*0.10)=1, clamped up to min 2
		{20, 2},  // ceil(20*0.10)=2
		{50, 5},  // ceil(50*0.10)=5
		{100, 5}, // ceil(100*0.10)=10, clamped down to max 5
		{1, 1},   // clamp result capped at n itself
	}
	for _, c := range cases {
		if got := TailK(c.n, cfg); got != c.want {
			t.Errorf("TailK(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestTailStat_MeanOfKLargest(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	sample := domaingate.Sample{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got, err := TailStat(sample, cfg)
	if err != nil {
		t.Fatalf("TailStat: %v", err)
	}
	// k = clamp(ceil(10*0.10),2,5) = 2; two largest = {9,10}, mean = 9.5.
	if got != 9.5 {
		t.Errorf("TailStat = %v, want 9.5", got)
	}
}

func TestTailStat_EmptySampleErrors(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	if _, err := TailStat(domaingate.Sample{}, cfg); err == nil {
		t.Fatal("expected error for empty sample")
	}
}
