package checkout

import (
	"testing"
	"time"
)

func TestComputeProgress(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		active  int
		done    bool
	}{
		{-time.Second, 0, false},
		{0, 0, false},
		{2999 * time.Millisecond, 0, false},
		{3 * time.Second, 1, false},
		{11 * time.Second, 3, false},
		{12 * time.Second, -1, true},
		{time.Hour, -1, true},
	}
	for _, tc := range cases {
		pv := computeProgress(DefaultSteps, 3*time.Second, tc.elapsed)
		if pv.Active != tc.active || pv.Done != tc.done {
			t.Fatalf("elapsed %v: got active=%d done=%v", tc.elapsed, pv.Active, pv.Done)
		}
		if len(pv.Steps) != len(DefaultSteps) {
			t.Fatalf("steps len %d", len(pv.Steps))
		}
	}
}

func TestComputeProgress_ZeroInterval(t *testing.T) {
	pv := computeProgress(DefaultSteps, 0, 0)
	if !pv.Done || pv.Active != -1 {
		t.Fatalf("unexpected %+v", pv)
	}
}
