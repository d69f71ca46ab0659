// Package progress renders a single-line transfer progress bar on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jongio/httpget/cliout"
	"golang.org/x/term"
)

// Status is the state of a transfer.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

const (
	defaultTermWidth   = 80
	minTermWidthForBar = 60
	refreshInterval    = 250 * time.Millisecond
)

// Bar layout
const (
	maxDescWidth = 24
	minBarWidth  = 10
	maxBarWidth  = 30
	// icon, brackets, percent, size and time columns plus padding
	fixedWidth = 2 + 3 + 5 + 22 + 8
)

// Bar tracks bytes written through it against an optional total and redraws
// itself on out while running. A Bar is safe for concurrent use.
type Bar struct {
	out         io.Writer
	description string
	total       int64
	termWidth   int

	mu        sync.Mutex
	status    Status
	written   int64
	startTime time.Time
	endTime   time.Time
	errorMsg  string
	stopChan  chan struct{}
	done      chan struct{}
	stopped   bool
}

// NewBar creates a pending bar. A total of zero or less means the size is
// unknown and only the byte count is shown.
func NewBar(out io.Writer, description string, total int64) *Bar {
	return &Bar{
		out:         out,
		description: description,
		total:       total,
		termWidth:   terminalWidth(out),
		status:      StatusPending,
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// terminalWidth prefers COLUMNS, then the size of out when it is a terminal.
func terminalWidth(out io.Writer) int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultTermWidth
}

// Write counts p toward the transfer and discards it.
func (b *Bar) Write(p []byte) (int, error) {
	b.mu.Lock()
	b.written += int64(len(p))
	b.mu.Unlock()
	return len(p), nil
}

// Written returns the number of bytes counted so far.
func (b *Bar) Written() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.written
}

// Start marks the transfer running and begins redrawing.
func (b *Bar) Start() {
	b.mu.Lock()
	if b.status != StatusPending {
		b.mu.Unlock()
		return
	}
	b.status = StatusRunning
	b.startTime = time.Now()
	b.mu.Unlock()

	go func() {
		defer close(b.done)
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-b.stopChan:
				return
			case <-ticker.C:
				b.render()
			}
		}
	}()
}

// Complete marks the transfer successful and draws the final line.
func (b *Bar) Complete() {
	b.finish(StatusSuccess, "")
}

// Fail marks the transfer failed and draws the final line with errMsg.
func (b *Bar) Fail(errMsg string) {
	b.finish(StatusFailed, errMsg)
}

func (b *Bar) finish(status Status, errMsg string) {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	running := b.status == StatusRunning
	b.status = status
	b.errorMsg = errMsg
	b.endTime = time.Now()
	b.mu.Unlock()

	close(b.stopChan)
	if running {
		<-b.done
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprint(b.out, "\r\033[2K"+b.lineLocked(b.endTime)+"\n")
	if status == StatusFailed && errMsg != "" {
		fmt.Fprintf(b.out, "   %s%s%s\n", cliout.BrightRed, truncateString(errMsg, b.termWidth-6), cliout.Reset)
	}
}

func (b *Bar) render() {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprint(b.out, "\r\033[2K"+b.lineLocked(time.Now()))
}

// Percent returns the completed share in 0-100, or -1 when the total is
// unknown.
func (b *Bar) Percent() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.percentLocked()
}

func (b *Bar) percentLocked() float64 {
	if b.status == StatusSuccess {
		return 100
	}
	if b.total <= 0 {
		return -1
	}
	pct := float64(b.written) / float64(b.total) * 100
	return min(pct, 100)
}

// Line returns the current rendering of the bar without control sequences.
func (b *Bar) Line() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lineLocked(time.Now())
}

func (b *Bar) lineLocked(now time.Time) string {
	icon, color := statusIconAndColor(b.status, now)
	desc := truncateString(b.description, maxDescWidth)

	if b.status == StatusPending {
		return fmt.Sprintf("%s%s%s %s", color, icon, cliout.Reset, desc)
	}

	elapsed := now.Sub(b.startTime)
	if !b.endTime.IsZero() {
		elapsed = b.endTime.Sub(b.startTime)
	}
	timeStr := cliout.Dim + fmt.Sprintf("%.1fs", elapsed.Seconds()) + cliout.Reset
	size := FormatBytes(b.written)
	if b.total > 0 {
		size += "/" + FormatBytes(b.total)
	}

	pct := b.percentLocked()
	if b.termWidth < minTermWidthForBar || pct < 0 {
		return fmt.Sprintf("%s%s%s %s %s %s", color, icon, cliout.Reset, desc, size, timeStr)
	}

	barWidth := b.termWidth - maxDescWidth - fixedWidth
	barWidth = max(minBarWidth, min(barWidth, maxBarWidth))
	return fmt.Sprintf("%s%s%s %-*s [%s%s%s] %3.0f%% %s %s",
		color, icon, cliout.Reset,
		maxDescWidth, desc,
		color, barContent(b.status, barWidth, pct), cliout.Reset,
		pct, size, timeStr)
}

func statusIconAndColor(status Status, t time.Time) (string, string) {
	switch status {
	case StatusRunning:
		return spinnerFrame(t), cliout.Cyan
	case StatusSuccess:
		return cliout.SymbolCheck, cliout.BrightGreen
	case StatusFailed:
		return cliout.SymbolCross, cliout.BrightRed
	default:
		return "○", cliout.Dim
	}
}

func barContent(status Status, width int, pct float64) string {
	filled := min(int(float64(width)*pct/100.0), width)

	switch status {
	case StatusSuccess:
		return strings.Repeat("━", width)
	case StatusFailed:
		return strings.Repeat("╍", filled) + strings.Repeat("╌", width-filled)
	default:
		if filled > 0 {
			return strings.Repeat("━", filled-1) + "▶" + strings.Repeat("─", width-filled)
		}
		return strings.Repeat("─", width)
	}
}

func spinnerFrame(t time.Time) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return frames[(t.UnixNano()/80_000_000)%int64(len(frames))]
}

func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatBytes renders n with a binary unit, e.g. "1.5 KiB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
