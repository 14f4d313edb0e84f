package progress

import (
	"testing"
	"time"
)

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		duration int
		want     int
	}{
		{"zero of 21", 0, 21, 0},
		{"one of 21 rounds to 5", 1, 21, 5},
		{"ten of 21", 10, 21, 48},
		{"eleven of 21 rounds up", 11, 21, 52},
		{"twenty of 21", 20, 21, 95},
		{"all of 21", 21, 21, 100},
		{"one of one", 1, 1, 100},
		{"half of 30", 15, 30, 50},
		{"one of 3 rounds to 33", 1, 3, 33},
		{"two of 3 rounds to 67", 2, 3, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.count, tt.duration); got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.count, tt.duration, got, tt.want)
			}
		})
	}
}

func TestPercentClamps(t *testing.T) {
	// Count above duration cannot happen with the per-task uniqueness
	// constraint in place, but the clamp keeps it from ever showing >100.
	if got := Percent(25, 21); got != 100 {
		t.Errorf("Percent(25, 21) = %d, want clamp to 100", got)
	}
}

func TestPercentDegenerateInputs(t *testing.T) {
	if got := Percent(5, 0); got != 0 {
		t.Errorf("Percent with zero duration = %d, want 0", got)
	}
	if got := Percent(-1, 21); got != 0 {
		t.Errorf("Percent with negative count = %d, want 0", got)
	}
}

func TestPercentMonotonic(t *testing.T) {
	prev := 0
	for count := 1; count <= 21; count++ {
		p := Percent(count, 21)
		if p < prev {
			t.Fatalf("progress decreased: count %d gave %d after %d", count, p, prev)
		}
		prev = p
	}
	if prev != 100 {
		t.Fatalf("final progress = %d, want 100", prev)
	}
}

func TestCurrentDay(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		now   time.Time
		total int
		want  int
	}{
		{"before start clamps to 1", start.Add(-48 * time.Hour), 100, 1},
		{"start day", start, 100, 1},
		{"mid challenge", start.Add(34*24*time.Hour + time.Hour), 100, 35},
		{"past end clamps to total", start.Add(365 * 24 * time.Hour), 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentDay(start, tt.now, tt.total); got != tt.want {
				t.Errorf("CurrentDay = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysLeft(t *testing.T) {
	end := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)

	if got := DaysLeft(end, end.Add(-7*24*time.Hour)); got != 7 {
		t.Errorf("DaysLeft a week out = %d, want 7", got)
	}
	if got := DaysLeft(end, end.Add(72*time.Hour)); got != 0 {
		t.Errorf("DaysLeft past end = %d, want 0", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 4, 4, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, 4, 4, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same calendar day")
	}
	if SameDay(b, c) {
		t.Error("expected different calendar days")
	}
}
