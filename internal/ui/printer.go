package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	pkgtypes "github.com/vietdv277/asgcheck/pkg/types"
)

const checkPrefix = "Test Case A"

// Printer writes verification output, one line per result. Colors are only
// emitted when the writer is a terminal.
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter returns a Printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// Check prints a pass/fail line for a check
func (p *Printer) Check(passed bool, message string) {
	verdict := p.styles.fail.Render("Fail")
	if passed {
		verdict = p.styles.pass.Render("Pass")
	}
	fmt.Fprintf(p.w, "%s - %s: %s\n", checkPrefix, verdict, message)
}

// Line prints a plain informational line
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// LongestUptime prints the longest running instance followed by its full record
func (p *Printer) LongestUptime(inst pkgtypes.InstanceRecord, now time.Time) {
	fmt.Fprintf(p.w, "Longest uptime instance: %s\n", p.styles.id.Render(inst.ID))

	sgs := strings.Join(inst.SecurityGroups, ", ")
	if sgs == "" {
		sgs = "-"
	}

	details := []struct {
		label string
		value string
	}{
		{"Instance ID:", inst.ID},
		{"State:", inst.State},
		{"Availability Zone:", inst.AZ},
		{"Image ID:", inst.ImageID},
		{"VPC ID:", inst.VpcID},
		{"Security Groups:", sgs},
		{"Launch Time:", inst.LaunchTime.UTC().Format(time.RFC3339) + " (" + humanize.RelTime(inst.LaunchTime, now, "ago", "from now") + ")"},
	}

	labelWidth := 0
	for _, d := range details {
		labelWidth = max(labelWidth, runewidth.StringWidth(d.label))
	}

	for _, d := range details {
		fmt.Fprintf(p.w, "  %s %s\n", p.styles.label.Render(padRight(d.label, labelWidth)), d.value)
	}
}

// NextScheduledAction prints the signed time remaining until the action starts.
// A negative duration means the start time has already passed.
func (p *Printer) NextScheduledAction(action pkgtypes.ScheduledAction, now time.Time) {
	remaining := action.StartTime.Sub(now)
	fmt.Fprintf(p.w, "Time remaining for next scheduled action: %s (%s, %s)\n",
		remaining,
		p.styles.id.Render(actionName(action)),
		humanize.RelTime(action.StartTime, now, "ago", "from now"),
	)
}

func actionName(a pkgtypes.ScheduledAction) string {
	if a.Name == "" {
		return "unnamed"
	}
	return a.Name
}
