package proc

import (
	"math"
	"testing"

	"github.com/pranshuparmar/procmon/pkg/model"
)

const tasklistOut = `"Image Name","PID","Session Name","Session#","Mem Usage","Status","User Name","CPU Time","Window Title"
"System Idle Process","0","Services","0","8 K","Unknown","NT AUTHORITY\SYSTEM","12:34:56","N/A"
"chrome.exe","1234","Console","1","45,678 K","Running","user1","0:00:03","New Tab - Google Chrome"
"notepad.exe","4321","Console","1","12,000 K","Not Responding","DESKTOP\user1","0:01:10","Untitled - Notepad"
"svchost.exe","888","Services","0","9,216 K","Unknown","N/A","0:00:00","N/A"
"truncated.exe","99`

func TestParseTasklistCSV(t *testing.T) {
	rows := ParseTasklistCSV(Lines([]byte(tasklistOut)))

	if len(rows) != 4 {
		t.Fatalf("Got %d rows, want 4: %+v", len(rows), rows)
	}

	chrome := rows[1]
	if chrome.PID != 1234 || chrome.Name != "chrome.exe" || chrome.Command != "chrome.exe" {
		t.Errorf("chrome row mismatch: %+v", chrome)
	}
	if chrome.Status != model.StatusRunning {
		t.Errorf("chrome status = %q, want Running", chrome.Status)
	}
	mem, ok := chrome.Memory()
	if !ok || math.Abs(mem-45678.0/1024) > 1e-9 {
		t.Errorf("chrome memory = %v (%v), want %v", mem, ok, 45678.0/1024)
	}
	if chrome.User != "user1" {
		t.Errorf("chrome user = %q, want user1", chrome.User)
	}
	if chrome.CPUTime != "0:00:03" {
		t.Errorf("chrome cpu time = %q, want 0:00:03", chrome.CPUTime)
	}
	if chrome.CPUPercent != nil {
		t.Errorf("parser must not fill CPU percent, got %v", *chrome.CPUPercent)
	}

	if rows[0].Status != model.StatusUnknown {
		t.Errorf("idle status = %q, want Unknown", rows[0].Status)
	}
	if rows[2].Status != model.StatusNotResponding {
		t.Errorf("notepad status = %q, want Not Responding", rows[2].Status)
	}
	if rows[3].User != "" {
		t.Errorf("N/A user should be absent, got %q", rows[3].User)
	}
}

func TestParseTasklistCSVSkipsMalformed(t *testing.T) {
	lines := []string{
		"",
		`"only","three","cols"`,
		`"bad.exe","notapid","Console","1","1 K","Running","u","0:00:01"`,
		`"","55","Console","1","1 K","Running","u","0:00:01"`,
		`"ok.exe","7","Console","1","1 K","Running","u","0:00:01"`,
		`"dup.exe","7","Console","1","1 K","Running","u","0:00:01"`,
	}
	rows := ParseTasklistCSV(lines)
	if len(rows) != 1 || rows[0].PID != 7 || rows[0].Name != "ok.exe" {
		t.Errorf("Got %+v, want single ok.exe row", rows)
	}
}

func TestParseTasklistCSVMemoryWithoutDigits(t *testing.T) {
	rows := ParseTasklistCSV([]string{`"a.exe","10","Console","1","N/A","Running","u","0:00:01"`})
	if len(rows) != 1 {
		t.Fatalf("Got %d rows, want 1", len(rows))
	}
	if rows[0].MemoryMB != nil {
		t.Errorf("memory should be absent, got %v", *rows[0].MemoryMB)
	}
}

func TestTasklistStatus(t *testing.T) {
	tests := []struct {
		in   string
		want model.Status
	}{
		{"Running", model.StatusRunning},
		{"Not Responding", model.StatusNotResponding},
		{"Application Not Responding", model.StatusNotResponding},
		{"Unknown", model.StatusUnknown},
		{"Suspended", model.StatusUnknown},
		{"", model.StatusUnknown},
	}
	for _, tt := range tests {
		if got := tasklistStatus(tt.in); got != tt.want {
			t.Errorf("tasklistStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
