package proc

import (
	"math"
	"reflect"
	"testing"

	"github.com/pranshuparmar/procmon/pkg/model"
)

func TestParsePS(t *testing.T) {
	rows := ParsePS([]string{"  4821 root  2.3  1.1 S   nginx"})
	if len(rows) != 1 {
		t.Fatalf("Got %d rows, want 1", len(rows))
	}
	p := rows[0]
	if p.PID != 4821 {
		t.Errorf("PID = %d, want 4821", p.PID)
	}
	if p.User != "root" {
		t.Errorf("User = %q, want root", p.User)
	}
	if cpu, ok := p.CPU(); !ok || cpu != 2.3 {
		t.Errorf("CPU = %v (%v), want 2.3", cpu, ok)
	}
	if p.Status != model.StatusSleeping {
		t.Errorf("Status = %q, want Sleeping", p.Status)
	}
	if p.Command != "nginx" || p.Name != "nginx" {
		t.Errorf("Command/Name = %q/%q, want nginx", p.Command, p.Name)
	}
	if mem, ok := p.Memory(); !ok || math.Abs(mem-1.1/1024) > 1e-12 {
		t.Errorf("Memory = %v (%v), want %v", mem, ok, 1.1/1024)
	}
}

func TestParsePSMultipleRows(t *testing.T) {
	psOut := `    1 root      0.0 11264 Ss   /sbin/init
  812 www-data  5.5 204800 R+   php-fpm: pool www
  900 alice    abc  nope  Dl   worker
 1001 bob       0.1  2048 Z    defunct
bogus line
 1002 bob       0.1  2048`

	rows := ParsePS(Lines([]byte(psOut)))
	if len(rows) != 4 {
		t.Fatalf("Got %d rows, want 4: %+v", len(rows), rows)
	}

	if rows[0].Status != model.StatusSleeping || rows[0].Command != "/sbin/init" {
		t.Errorf("row 0 mismatch: %+v", rows[0])
	}
	if rows[1].Command != "php-fpm: pool www" {
		t.Errorf("command should keep inner spaces, got %q", rows[1].Command)
	}
	if mem, _ := rows[1].Memory(); mem != 200 {
		t.Errorf("memory = %v, want 200", mem)
	}
	if rows[2].CPUPercent != nil || rows[2].MemoryMB != nil {
		t.Errorf("unparseable numbers should be absent: %+v", rows[2])
	}
	if rows[2].Status != model.StatusDiskSleep {
		t.Errorf("status = %q, want Disk Sleep", rows[2].Status)
	}
	if rows[3].Status != model.StatusZombie {
		t.Errorf("status = %q, want Zombie", rows[3].Status)
	}
}

func TestParsePSRejectsNonFinite(t *testing.T) {
	rows := ParsePS([]string{
		" 5 root nan 100 R x",
		" 6 root +Inf inf S y",
		" 7 root 1e400 -Infinity S z",
	})
	if len(rows) != 3 {
		t.Fatalf("Got %d rows, want 3", len(rows))
	}
	for _, r := range rows {
		if r.CPUPercent != nil {
			t.Errorf("pid %d: CPU = %v, want absent", r.PID, *r.CPUPercent)
		}
	}
	if mem, ok := rows[0].Memory(); !ok || mem != 100.0/1024 {
		t.Errorf("pid 5: Memory = %v (%v), want finite rss kept", mem, ok)
	}
	for _, r := range rows[1:] {
		if r.MemoryMB != nil {
			t.Errorf("pid %d: Memory = %v, want absent", r.PID, *r.MemoryMB)
		}
	}
}

func TestPSStatus(t *testing.T) {
	tests := []struct {
		stat string
		want model.Status
	}{
		{"R", model.StatusRunning},
		{"S<s", model.StatusSleeping},
		{"D", model.StatusDiskSleep},
		{"Z+", model.StatusZombie},
		{"T", model.StatusStopped},
		{"I<", model.StatusIdle},
		{"W", model.StatusUnknown},
		{"", model.StatusUnknown},
	}
	for _, tt := range tests {
		if got := psStatus(tt.stat); got != tt.want {
			t.Errorf("psStatus(%q) = %q, want %q", tt.stat, got, tt.want)
		}
	}
}

func TestSplitFieldsN(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want []string
	}{
		{"  a  b\tc  ", 6, []string{"a", "b", "c"}},
		{"1 u 0.0 10 S my cmd  --flag", 6, []string{"1", "u", "0.0", "10", "S", "my cmd  --flag"}},
		{"", 6, nil},
		{"one", 1, []string{"one"}},
	}
	for _, tt := range tests {
		got := splitFieldsN(tt.in, tt.n)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitFieldsN(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
