package proc

import "testing"

func TestParseCPUTime(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0:00:03", 3},
		{"1:02:03", 3723},
		{"12:34:56", 45296},
		{"2:05", 125},
		{"45", 45},
		{"0:01.50", 1.5},
		{"1-00:00:10", 86410},
		{"x:01:00", 60},
		{"1:zz:05", 3605},
		{"", 0},
		{"N/A", 0},
		{"NaN", 0},
		{"0:inf:00", 0},
		{"nan-00:00:05", 5},
	}
	for _, tt := range tests {
		if got := ParseCPUTime(tt.in); got != tt.want {
			t.Errorf("ParseCPUTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
