package platform

import (
	"runtime"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		goos string
		want Platform
	}{
		{"windows", Windows},
		{"linux", Linux},
		{"darwin", Mac},
		{"Darwin", Mac},
		{"freebsd", Unknown},
		{"plan9", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.goos); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.goos, got, tt.want)
		}
	}
}

func TestCurrentIsStable(t *testing.T) {
	first := Current()
	if first != Detect(runtime.GOOS) {
		t.Errorf("Current() = %v, want %v", first, Detect(runtime.GOOS))
	}
	if again := Current(); again != first {
		t.Errorf("Current() changed between calls: %v then %v", first, again)
	}
}

func TestUnix(t *testing.T) {
	if !Linux.Unix() || !Mac.Unix() {
		t.Error("Linux and Mac should be unix platforms")
	}
	if Windows.Unix() || Unknown.Unix() {
		t.Error("Windows and Unknown should not be unix platforms")
	}
}
