package master

import "testing"

func TestPeriodFromPath(t *testing.T) {
	cases := map[string]string{
		"attendance/Period 1.csv":          "Period 1",
		"quiz_data/Period3_Mitosis.csv":    "Period 3",
		"/srv/PERIOD  04/attendance.txt":   "Period 4",
		"/srv/classes/roster.txt":          "Period",
		"period 2/period 5 attendance.txt": "Period 5",
	}
	for path, want := range cases {
		if got := PeriodFromPath(path); got != want {
			t.Errorf("PeriodFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNormalizePeriodAndKey(t *testing.T) {
	cases := []struct {
		in, period, key string
	}{
		{"Period 2", "Period 2", "Period_2_MASTER"},
		{"  period   2 ", "Period 2", "Period_2_MASTER"},
		{"PERIOD3", "Period 3", "Period_3_MASTER"},
		{"7", "Period 7", "Period_7_MASTER"},
		{"", "Period", "Period_MASTER"},
		{"advanced bio", "Advanced Bio", "Advanced_Bio_MASTER"},
		{"lab?", "Lab?", "Lab_MASTER"},
	}
	for _, tc := range cases {
		if got := NormalizePeriod(tc.in); got != tc.period {
			t.Errorf("NormalizePeriod(%q) = %q, want %q", tc.in, got, tc.period)
		}
		if got := Key(tc.in); got != tc.key {
			t.Errorf("Key(%q) = %q, want %q", tc.in, got, tc.key)
		}
	}
	if got := PeriodFromKey("Period_2_MASTER"); got != "Period 2" {
		t.Errorf("PeriodFromKey = %q", got)
	}
}
