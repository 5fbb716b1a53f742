package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/pkg/model"
)

const maxCommandWidth = 40

// TableRenderer writes a process snapshot as an aligned table.
type TableRenderer struct {
	out          io.Writer
	writer       *tabwriter.Writer
	colorEnabled bool
	rowCount     int
}

// NewTableRenderer creates a table renderer writing to w
func NewTableRenderer(w io.Writer, colorEnabled bool) *TableRenderer {
	return &TableRenderer{
		out:          w,
		writer:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		colorEnabled: colorEnabled,
	}
}

// PrintHeader outputs the table header
func (t *TableRenderer) PrintHeader() {
	header := " PID\tNAME\tUSER\tCPU\tMEM\tSTATUS\tCOMMAND"
	fmt.Fprintln(t.writer, paint(t.colorEnabled, colorBlue, header))

	// Separator line
	fmt.Fprintln(t.writer, " ───\t────\t────\t───\t───\t──────\t───────")
}

// AddRow writes one process. Rows are aligned when Flush is called.
func (t *TableRenderer) AddRow(p model.Process) {
	cpu := "-"
	if v, ok := p.CPU(); ok {
		cpu = fmt.Sprintf("%.1f%%", v)
		// Color high CPU/memory
		if v > 50 {
			cpu = paint(t.colorEnabled, colorRed, cpu)
		} else if v > 20 {
			cpu = paint(t.colorEnabled, colorYellow, cpu)
		}
	}

	mem := "-"
	if v, ok := p.Memory(); ok {
		mem = FormatMemory(v)
		if v > 1024 {
			mem = paint(t.colorEnabled, colorRed, mem)
		} else if v > 512 {
			mem = paint(t.colorEnabled, colorYellow, mem)
		}
	}

	user := p.User
	if user == "" {
		user = "-"
	}

	status := string(p.Status)
	switch p.Status {
	case model.StatusZombie, model.StatusNotResponding:
		status = paint(t.colorEnabled, colorRed, status)
	case model.StatusRunning:
		status = paint(t.colorEnabled, colorGreen, status)
	}

	fmt.Fprintf(t.writer, " %d\t%s\t%s\t%s\t%s\t%s\t%s\n",
		p.PID, batch.Truncate(p.Name, 24), batch.Truncate(user, 16), cpu, mem, status,
		batch.Truncate(batch.ShortenPath(p.Command), maxCommandWidth))
	t.rowCount++
}

// Flush aligns and writes every buffered row
func (t *TableRenderer) Flush() error {
	return t.writer.Flush()
}

// PrintFooter outputs the summary line
func (t *TableRenderer) PrintFooter(total int, elapsed time.Duration) {
	fmt.Fprintln(t.out)
	fmt.Fprint(t.out, paint(t.colorEnabled, colorGreen, fmt.Sprintf("Found %d processes", total)))
	if t.rowCount != total {
		fmt.Fprintf(t.out, " (%d shown)", t.rowCount)
	}
	fmt.Fprintf(t.out, " (%.1fs)\n", elapsed.Seconds())
}

// RenderTable writes a whole snapshot with header and footer.
func RenderTable(w io.Writer, procs []model.Process, total int, elapsed time.Duration, colorEnabled bool) error {
	t := NewTableRenderer(w, colorEnabled)
	t.PrintHeader()
	for _, p := range procs {
		t.AddRow(p)
	}
	if err := t.Flush(); err != nil {
		return err
	}
	t.PrintFooter(total, elapsed)
	return nil
}

// FormatMemory converts MB to human-readable format
func FormatMemory(mb float64) string {
	if mb >= 1024 {
		return fmt.Sprintf("%.1fG", mb/1024)
	}
	return fmt.Sprintf("%.0fM", mb)
}
